// Package controlplane wraps the AWS SDK clients that read and write bucket
// lifecycle configurations.
//
// The S3API and IdentityAPI interfaces carry exactly the SDK calls the
// reconciler issues, so the rest of the module can be tested against the
// mocks in core/controlplane/mocks.
//
// # Operations
//
//   - ListBuckets: enumerates buckets, filtered to one region.
//   - GetBucketLifecycleConfiguration: reads the rules of one bucket.
//   - PutBucketLifecycleConfiguration: replaces the rules of one bucket.
//   - DeleteBucketLifecycle: removes the configuration entirely.
//   - GetCallerIdentity: confirms which account the credentials belong to.
//
// A bucket that never had lifecycle rules answers reads with the
// NoSuchLifecycleConfiguration error code; IsNotConfigured detects it.
//
// # Usage
//
//	clients, err := controlplane.NewClients(ctx, cfg.AWS)
//	if err := controlplane.CheckAccount(ctx, clients.Identity, cfg.AWS.Account); err != nil {
//	    return err
//	}
package controlplane
