package config

import (
	"context"
	"fmt"

	"github.com/hupe1980/kmeans/blobstore"
	minioblob "github.com/hupe1980/kmeans/blobstore/minio"
	s3blob "github.com/hupe1980/kmeans/blobstore/s3"
	"github.com/hupe1980/kmeans/resource"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// OpenStore builds the snapshot store. It returns nil for type "none".
// Stores are throttled by rc when an IO limit is configured.
func OpenStore(ctx context.Context, cfg StoreConfig, rc *resource.Controller) (blobstore.Store, error) {
	var (
		store blobstore.Store
		err   error
	)

	switch cfg.Type {
	case "none":
		return nil, nil
	case "memory":
		store = blobstore.NewMemoryStore()
	case "local":
		store = blobstore.NewLocalStore(cfg.Path)
	case "minio":
		var client *minio.Client
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.Secure,
			Region: cfg.Region,
		})
		if err == nil {
			store = minioblob.NewStore(client, cfg.Bucket, cfg.Prefix)
		}
	case "s3":
		opts := []s3blob.Option{s3blob.WithPrefix(cfg.Prefix)}
		if cfg.Region != "" {
			opts = append(opts, s3blob.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, s3blob.WithEndpoint(cfg.Endpoint))
		}
		store, err = s3blob.New(ctx, cfg.Bucket, opts...)
	default:
		return nil, fmt.Errorf("%w: store.type %q", ErrInvalidConfig, cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Type, err)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		store = blobstore.NewThrottled(store, rc)
	}
	return store, nil
}

// Resources returns the shared worker and IO limits for the command.
func (c *Config) Resources() *resource.Controller {
	return resource.NewController(resource.Config{
		MaxWorkers:         int64(c.Sweep.Concurrency),
		IOLimitBytesPerSec: c.Store.IOLimitBytesPerSec,
	})
}
