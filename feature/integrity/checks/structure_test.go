package checks

import (
	"context"
	"errors"
	"testing"

	"lakecircle/core/storage"
	"lakecircle/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var ep = storage.Endpoint{Bucket: "config", Prefix: "prod/"}

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "config").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, ep)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "config").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "config", mock.Anything).Return(mocks.Objects())

		missing, err := CheckStructure(context.Background(), mockClient, ep)
		assert.NoError(t, err)
		assert.Equal(t, storage.LayoutFolders, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "config").Return(true, nil)

		for _, folder := range storage.LayoutFolders {
			prefix := "prod/" + folder + "/"
			mockClient.On("ListObjects", mock.Anything, "config", minio.ListObjectsOptions{Prefix: prefix, MaxKeys: 1}).
				Return(mocks.Objects(minio.ObjectInfo{Key: prefix}))
		}

		missing, err := CheckStructure(context.Background(), mockClient, ep)
		assert.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("Listing Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "config").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "config", mock.Anything).
			Return(mocks.Objects(minio.ObjectInfo{Err: errors.New("access denied")}))

		_, err := CheckStructure(context.Background(), mockClient, ep)
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestFixStructure(t *testing.T) {
	t.Run("Creates Markers", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "config", "prod/log/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil).Once()
		mockClient.On("PutObject", mock.Anything, "config", "prod/data/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil).Once()

		err := FixStructure(context.Background(), mockClient, ep, zap.NewNop(), []string{"log", "data"})
		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Stops On Failure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "config", "prod/log/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, errors.New("denied"))

		err := FixStructure(context.Background(), mockClient, ep, zap.NewNop(), []string{"log", "data"})
		assert.Error(t, err)
		mockClient.AssertNumberOfCalls(t, "PutObject", 1)
	})
}
