package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/mock"
)

// S3API is a mock implementation of controlplane.S3API
type S3API struct {
	mock.Mock
}

func (m *S3API) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.ListBucketsOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *S3API) GetBucketLifecycleConfiguration(ctx context.Context, params *s3.GetBucketLifecycleConfigurationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLifecycleConfigurationOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.GetBucketLifecycleConfigurationOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *S3API) PutBucketLifecycleConfiguration(ctx context.Context, params *s3.PutBucketLifecycleConfigurationInput, optFns ...func(*s3.Options)) (*s3.PutBucketLifecycleConfigurationOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.PutBucketLifecycleConfigurationOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *S3API) DeleteBucketLifecycle(ctx context.Context, params *s3.DeleteBucketLifecycleInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketLifecycleOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.DeleteBucketLifecycleOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

// IdentityAPI is a mock implementation of controlplane.IdentityAPI
type IdentityAPI struct {
	mock.Mock
}

func (m *IdentityAPI) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*sts.GetCallerIdentityOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

// ModelAPI is a mock implementation of controlplane.ModelAPI
type ModelAPI struct {
	mock.Mock
}

func (m *ModelAPI) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*bedrockruntime.InvokeModelOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}
