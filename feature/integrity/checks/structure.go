package checks

import (
	"bytes"
	"context"
	"fmt"

	"lakecircle/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// CheckStructure returns the layout folders missing under ep.
func CheckStructure(ctx context.Context, client storage.Client, ep storage.Endpoint) ([]string, error) {
	exists, err := client.BucketExists(ctx, ep.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", ep.Bucket)
	}

	var missing []string
	for _, folder := range storage.LayoutFolders {
		opts := minio.ListObjectsOptions{
			Prefix:    ep.Sub(folder).Prefix,
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, ep.Bucket, opts) {
			if obj.Err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", folder, obj.Err)
			}
			found = true
			break
		}

		if !found {
			missing = append(missing, folder)
		}
	}

	return missing, nil
}

// FixStructure writes an empty marker object for every missing folder.
func FixStructure(ctx context.Context, client storage.Client, ep storage.Endpoint, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		key := ep.Sub(folder).Prefix
		_, err := client.PutObject(ctx, ep.Bucket, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", key), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", key))
	}
	return nil
}
