package objectstore

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// Config locates an S3-compatible endpoint and its credentials.
type Config struct {
	EndpointURL     string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	UseSSL          bool
}

// S3Store implements Store on top of minio-go.
type S3Store struct {
	client *minio.Client
	conf   *Config
}

// NewS3Store builds a store from the given config. The endpoint may be a bare
// host or a URL; an https scheme forces SSL regardless of UseSSL.
func NewS3Store(conf *Config) (*S3Store, error) {
	if conf == nil {
		return nil, wrapError(CodeEndpointUnreachable, true, errors.New("config is required"))
	}
	if conf.EndpointURL == "" {
		return nil, wrapError(CodeEndpointUnreachable, true, errors.New("endpoint url is required"))
	}
	if conf.AccessKeyID == "" || conf.SecretAccessKey == "" {
		return nil, wrapError(CodeAuthInvalid, false, errors.New("credentials are required"))
	}

	u, err := url.Parse(conf.EndpointURL)
	if err != nil {
		return nil, wrapError(CodeEndpointUnreachable, true, errors.Wrap(err, "invalid endpoint url"))
	}
	endpoint := u.Host
	if endpoint == "" {
		endpoint = conf.EndpointURL
	}
	useSSL := conf.UseSSL
	if u.Scheme == "https" {
		useSSL = true
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKeyID, conf.SecretAccessKey, ""),
		Secure: useSSL,
		Region: conf.Region,
	})
	if err != nil {
		return nil, wrapError(CodeEndpointUnreachable, true, err)
	}

	return &S3Store{client: client, conf: conf}, nil
}

// Ping lists buckets as a cheap connectivity and credential check.
func (s *S3Store) Ping(ctx context.Context) error {
	if _, err := s.client.ListBuckets(ctx); err != nil {
		return classifyMinioError(err)
	}
	return nil
}

func (s *S3Store) EnsureBucket(ctx context.Context, bucket string) error {
	if bucket == "" {
		return wrapError(CodeBucketNotFound, false, errors.New("bucket name is required"))
	}

	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return classifyMinioError(err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.conf.Region}); err != nil {
		return classifyMinioError(err)
	}
	return nil
}

func (s *S3Store) BucketExists(ctx context.Context, bucket string) (bool, error) {
	if bucket == "" {
		return false, nil
	}
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return false, classifyMinioError(err)
	}
	return exists, nil
}

func (s *S3Store) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	if bucket == "" {
		return wrapError(CodeBucketNotFound, false, errors.New("bucket is required"))
	}
	if key == "" {
		return wrapError(CodeWriteFailed, false, errors.New("object key is required"))
	}

	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return classifyMinioError(err)
	}
	return nil
}

func (s *S3Store) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if bucket == "" {
		return nil, wrapError(CodeBucketNotFound, false, errors.New("bucket is required"))
	}
	if key == "" {
		return nil, wrapError(CodeObjectNotFound, false, errors.New("object key is required"))
	}

	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classifyMinioError(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, classifyMinioError(err)
	}
	return data, nil
}

func (s *S3Store) ListPrefix(ctx context.Context, bucket, prefix string) ([]string, error) {
	if bucket == "" {
		return nil, wrapError(CodeBucketNotFound, false, errors.New("bucket is required"))
	}

	var keys []string
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, classifyMinioError(obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

func (s *S3Store) RemoveObject(ctx context.Context, bucket, key string) error {
	if bucket == "" || key == "" {
		return wrapError(CodeObjectNotFound, false, errors.New("bucket and key are required"))
	}
	if err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return classifyMinioError(err)
	}
	return nil
}

// classifyMinioError maps minio-go errors onto the package's Error type.
func classifyMinioError(err error) *Error {
	if err == nil {
		return nil
	}

	if resp, ok := err.(minio.ErrorResponse); ok {
		switch resp.Code {
		case "NoSuchBucket":
			return wrapError(CodeBucketNotFound, false, err)
		case "NoSuchKey":
			return wrapError(CodeObjectNotFound, false, err)
		case "AccessDenied":
			return wrapError(CodePermissionDenied, false, err)
		case "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return wrapError(CodeAuthInvalid, false, err)
		}
	}

	// The SDK does not wrap every failure in an ErrorResponse, so fall back
	// to matching on the message.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such bucket"):
		return wrapError(CodeBucketNotFound, false, err)
	case strings.Contains(msg, "no such key"), strings.Contains(msg, "not found"), strings.Contains(msg, "does not exist"):
		return wrapError(CodeObjectNotFound, false, err)
	case strings.Contains(msg, "access denied"), strings.Contains(msg, "permission"):
		return wrapError(CodePermissionDenied, false, err)
	case strings.Contains(msg, "invalid access key"), strings.Contains(msg, "signature"), strings.Contains(msg, "authentication"):
		return wrapError(CodeAuthInvalid, false, err)
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return wrapError(CodeTimeout, true, err)
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "unreachable"), strings.Contains(msg, "no such host"):
		return wrapError(CodeEndpointUnreachable, true, err)
	}

	return wrapError(CodeWriteFailed, true, err)
}
