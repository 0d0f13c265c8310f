// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("kmeans/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = snapshot.SaveSweep(ctx, store, "sweep.snap", scores)
//
// Small blobs are written with a single PutObject carrying a CRC32C
// checksum. Blobs of at least PartSize bytes go through the multipart
// uploader.
package s3
