package resource

import (
	"context"
	"fmt"

	"lakecircle/core/controlplane"
	"lakecircle/core/lifecycle"
	"lakecircle/core/reconcile"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Loader reads live lifecycle configurations.
type Loader struct {
	api    controlplane.S3API
	logger *zap.Logger
}

// NewLoader creates a resource loader.
func NewLoader(api controlplane.S3API, logger *zap.Logger) *Loader {
	return &Loader{api: api, logger: logger.Named("resource")}
}

// LoadFunc binds the loader to account and region.
func (l *Loader) LoadFunc(account, region string) reconcile.LoadFunc {
	return func(ctx context.Context) (*reconcile.Snapshot, error) {
		return l.Load(ctx, account, region)
	}
}

// Load builds the actual state of every bucket in region.
func (l *Loader) Load(ctx context.Context, account, region string) (*reconcile.Snapshot, error) {
	log := l.logger.With(zap.String("account", account), zap.String("region", region))

	buckets, err := l.listBuckets(ctx, region)
	if err != nil {
		return nil, err
	}

	snap := &reconcile.Snapshot{State: lifecycle.State{}}
	for _, bucket := range buckets {
		c, err := l.loadBucket(ctx, log, account, bucket)
		if err != nil {
			log.Warn("Excluding bucket", zap.String("bucket", bucket), zap.Error(err))
			snap.Warnings = append(snap.Warnings, reconcile.NewWarning(reconcile.WarningQuery, "", err))
			continue
		}
		snap.State[bucket] = c
	}

	log.Info("Live state loaded",
		zap.Int("buckets", len(snap.State)),
		zap.Int("rules", snap.State.RuleCount()),
		zap.Int("excluded", len(snap.Warnings)),
	)
	return snap, nil
}

func (l *Loader) listBuckets(ctx context.Context, region string) ([]string, error) {
	input := &s3.ListBucketsInput{}
	if region != "" {
		input.BucketRegion = aws.String(region)
	}

	var names []string
	p := s3.NewListBucketsPaginator(l.api, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list buckets: %w", err)
		}
		for _, b := range page.Buckets {
			// S3-compatible services may ignore the region filter.
			if region != "" && b.BucketRegion != nil && *b.BucketRegion != region {
				continue
			}
			names = append(names, aws.ToString(b.Name))
		}
	}
	return names, nil
}

func (l *Loader) loadBucket(ctx context.Context, log *zap.Logger, account, bucket string) (*lifecycle.RuleCollection, error) {
	out, err := l.api.GetBucketLifecycleConfiguration(ctx, &s3.GetBucketLifecycleConfigurationInput{
		Bucket:              aws.String(bucket),
		ExpectedBucketOwner: owner(account),
	})
	if err != nil {
		if controlplane.IsNotConfigured(err) {
			return lifecycle.NewRuleCollection(bucket), nil
		}
		return nil, &reconcile.QueryError{Bucket: bucket, Err: err}
	}

	c := lifecycle.NewRuleCollection(bucket)
	c.SetTransitionMinimumSize(string(out.TransitionDefaultMinimumObjectSize))
	for _, raw := range out.Rules {
		r, err := lifecycle.FromControlPlane(raw)
		if err != nil {
			return nil, &reconcile.QueryError{Bucket: bucket, Err: err}
		}
		if !r.HasAction() {
			log.Info("Rule declares no action", zap.String("bucket", bucket), zap.String("rule", r.ID()))
		}
		c.Add(r)
	}
	return c, nil
}

func owner(account string) *string {
	if account == "" {
		return nil
	}
	return aws.String(account)
}
