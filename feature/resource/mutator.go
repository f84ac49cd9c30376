package resource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lakecircle/core/controlplane"
	"lakecircle/core/lifecycle"
	"lakecircle/core/reconcile"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// ErrUnknownBucket is returned for buckets absent from the loaded state.
var ErrUnknownBucket = errors.New("bucket is not part of the loaded state")

// Mutator stages rule changes on a copy of the actual state and writes them
// to the control plane on Commit.
type Mutator struct {
	api     controlplane.S3API
	account string
	logger  *zap.Logger
	actual  lifecycle.State
	staged  map[string]*lifecycle.RuleCollection
}

// NewMutator creates a mutator over actual. actual itself is never modified.
func NewMutator(api controlplane.S3API, account string, actual lifecycle.State, logger *zap.Logger) *Mutator {
	return &Mutator{
		api:     api,
		account: account,
		logger:  logger.Named("mutator"),
		actual:  actual,
		staged:  make(map[string]*lifecycle.RuleCollection),
	}
}

// MutatorFactory returns a reconcile.MutatorFactory building Mutators on api.
func MutatorFactory(api controlplane.S3API, account string, logger *zap.Logger) reconcile.MutatorFactory {
	return func(actual lifecycle.State) reconcile.Mutator {
		return NewMutator(api, account, actual, logger)
	}
}

func (m *Mutator) collection(bucket string) (*lifecycle.RuleCollection, bool) {
	if c, ok := m.staged[bucket]; ok {
		return c, true
	}
	base, ok := m.actual[bucket]
	if !ok {
		return nil, false
	}
	c := base.Clone()
	m.staged[bucket] = c
	return c, true
}

// Staged returns the collection staged for bucket.
func (m *Mutator) Staged(bucket string) (*lifecycle.RuleCollection, bool) {
	c, ok := m.staged[bucket]
	return c, ok
}

func (m *Mutator) AddRule(_ context.Context, bucket string, rule *lifecycle.Rule) error {
	c, ok := m.collection(bucket)
	if !ok {
		return &reconcile.MutationError{Bucket: bucket, Rule: rule.ID(), Op: reconcile.OpAdd, Err: ErrUnknownBucket}
	}
	c.Add(rule)
	return nil
}

func (m *Mutator) RemoveRule(_ context.Context, bucket string, rule *lifecycle.Rule) error {
	c, ok := m.collection(bucket)
	if !ok {
		return &reconcile.MutationError{Bucket: bucket, Rule: rule.ID(), Op: reconcile.OpRemove, Err: ErrUnknownBucket}
	}
	c.RemoveRule(rule)
	return nil
}

func (m *Mutator) Commit(ctx context.Context, bucket string) (reconcile.CommitMode, error) {
	c, ok := m.collection(bucket)
	if !ok {
		return reconcile.CommitNone, &reconcile.MutationError{Bucket: bucket, Op: reconcile.OpCommit, Err: ErrUnknownBucket}
	}

	mode := reconcile.CommitModeFor(c)
	fail := func(err error) (reconcile.CommitMode, error) {
		return mode, &reconcile.MutationError{Bucket: bucket, Op: reconcile.OpCommit, Err: err}
	}

	if dup := c.DuplicateIDs(); len(dup) > 0 {
		return fail(fmt.Errorf("duplicate rule identifiers: %s", strings.Join(dup, ", ")))
	}

	switch mode {
	case reconcile.CommitDelete:
		_, err := m.api.DeleteBucketLifecycle(ctx, &s3.DeleteBucketLifecycleInput{
			Bucket:              aws.String(bucket),
			ExpectedBucketOwner: owner(m.account),
		})
		if err != nil && !controlplane.IsNotConfigured(err) {
			return fail(err)
		}
	default:
		input := &s3.PutBucketLifecycleConfigurationInput{
			Bucket:                 aws.String(bucket),
			LifecycleConfiguration: c.Payload(),
			ExpectedBucketOwner:    owner(m.account),
		}
		if v := c.TransitionMinimumSize(); v != "" {
			input.TransitionDefaultMinimumObjectSize = types.TransitionDefaultMinimumObjectSize(v)
		}
		_, err := m.api.PutBucketLifecycleConfiguration(ctx, input)
		if err != nil {
			return fail(err)
		}
	}

	m.logger.Debug("Lifecycle configuration written",
		zap.String("bucket", bucket),
		zap.String("mode", string(mode)),
		zap.Int("rules", c.Len()),
	)
	return mode, nil
}
