// Package blobstore stores snapshot blobs.
//
// Store is the interface for writing and reading whole blobs by name.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral runs
//   - LocalStore: local filesystem with atomic rename writes
//   - minio.Store: MinIO and other S3-compatible services
//   - s3.Store: Amazon S3
//
// Throttled wraps any Store and limits its IO bandwidth through a
// resource.Controller.
//
// # Custom Implementations
//
//	type Store interface {
//	    Put(ctx, name, data) error
//	    Get(ctx, name) ([]byte, error)
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
