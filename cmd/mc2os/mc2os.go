package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goto/wrangler/internal/config"
	"github.com/goto/wrangler/maxcompute"
	"github.com/goto/wrangler/objectstore"
	"github.com/pkg/errors"
)

func mc2os() error {
	// load config
	cfg, err := config.NewConfig()
	if err != nil {
		return errors.WithStack(err)
	}

	// graceful shutdown
	ctx, cancelFn := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelFn()

	// initiate session
	sess, err := maxcompute.NewSession(
		ctx,
		maxcompute.SetupLogger(cfg.LogLevel),
		maxcompute.SetupOTelSDK(cfg.OtelCollectorGRPCEndpoint, map[string]string{
			"job_name":       cfg.JobName,
			"scheduled_time": cfg.ScheduledTime,
		}),
		maxcompute.SetupODPSClient(cfg.Config),
		maxcompute.SetupDBProvider(cfg.Config),
		maxcompute.SetupLoader(cfg.LoadMethod),
	)
	if err != nil {
		return errors.WithStack(err)
	}
	defer sess.Close()

	// read query
	raw, err := os.ReadFile(cfg.QueryFilePath)
	if err != nil {
		return errors.WithStack(err)
	}
	query := string(raw)

	// execute query against the configured sink
	switch strings.ToUpper(cfg.Sink.Type) {
	case config.SinkTypeTable:
		return errors.WithStack(maxcompute.InsertInto(ctx, sess, cfg.DestinationTableID, query))
	case config.SinkTypeObjectStore:
		return errors.WithStack(writeToObjectStore(ctx, sess, cfg, query))
	default:
		return errors.Errorf("sink type %s not supported", cfg.Sink.Type)
	}
}

func writeToObjectStore(ctx context.Context, sess *maxcompute.Session, cfg *config.Config, query string) error {
	df, err := maxcompute.ReadSQL(ctx, sess, query, cfg.SourceProject, cfg.Sink.QueryParams)
	if err != nil {
		return errors.WithStack(err)
	}

	store, err := objectstore.NewS3Store(&objectstore.Config{
		EndpointURL:     cfg.Sink.EndpointURL,
		AccessKeyID:     cfg.Sink.AccessKeyID,
		SecretAccessKey: cfg.Sink.SecretAccessKey,
		Region:          cfg.Sink.Region,
		UseSSL:          cfg.Sink.UseSSL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	res, err := objectstore.WriteParquet(ctx, store, df, cfg.Sink.Bucket, cfg.Sink.Prefix,
		objectstore.WithPartitionColumns(cfg.Sink.PartitionColumns...))
	if err != nil {
		return errors.WithStack(err)
	}

	sess.Logger().Info(fmt.Sprintf("wrote %d objects, %d rows, %d bytes to %s/%s",
		len(res.Objects), res.Rows, res.BytesWritten, cfg.Sink.Bucket, cfg.Sink.Prefix))
	return nil
}
