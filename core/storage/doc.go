// Package storage provides an abstraction layer for the object storage that
// holds lifecycle definitions and run reports.
//
// It wraps the MinIO Go client, which speaks to AWS S3 as well as self-hosted
// S3-compatible services.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the endpoint bucket.
//   - PutObject: Uploads content (reports, folder markers).
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// # Endpoint Layout
//
// An Endpoint names a bucket and prefix (s3://bucket/prefix). Below it live
// the folders current/, previous/, history/, definition/, data/ and log/.
// Definitions are read from definition/ and run reports are written to log/.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	ep, err := storage.ParseEndpoint("s3://lifecycle/prod")
//	for obj := range client.ListObjects(ctx, ep.Bucket, minio.ListObjectsOptions{Prefix: ep.Definition().Prefix, Recursive: true}) {
//	    ...
//	}
package storage
