// Package objectstore lands dataframes on S3-compatible storage as
// snappy-compressed parquet objects laid out in hive-style partition
// directories. The production store wraps minio-go, so it works against
// Alibaba Cloud OSS, AWS S3 and MinIO alike.
package objectstore

import "context"

// Store is the object storage surface the parquet sink needs. Implementations
// wrap a real SDK; tests swap in fakes.
type Store interface {
	// Ping verifies the endpoint and credentials are usable.
	Ping(ctx context.Context) error
	// EnsureBucket creates the bucket when it does not exist yet.
	EnsureBucket(ctx context.Context, bucket string) error
	// BucketExists reports whether the bucket exists.
	BucketExists(ctx context.Context, bucket string) (bool, error)
	// PutObject stores data under bucket/key, replacing any existing object.
	PutObject(ctx context.Context, bucket, key string, data []byte) error
	// GetObject reads the object at bucket/key.
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	// ListPrefix returns the keys of all objects under the prefix.
	ListPrefix(ctx context.Context, bucket, prefix string) ([]string, error)
	// RemoveObject deletes the object at bucket/key.
	RemoveObject(ctx context.Context, bucket, key string) error
}
