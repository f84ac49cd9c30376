package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"lakecircle/core/reconcile"
	"lakecircle/core/storage"

	"github.com/minio/minio-go/v7"
)

// Archive writes run reports to the log folder of the endpoint.
type Archive struct {
	client   storage.Client
	endpoint storage.Endpoint
}

// NewArchive creates an archive below endpoint.
func NewArchive(client storage.Client, endpoint storage.Endpoint) *Archive {
	return &Archive{client: client, endpoint: endpoint}
}

// Key returns the object key of report.
func (a *Archive) Key(report *reconcile.Report) string {
	t := report.StartedAt.UTC()
	return a.endpoint.Log().Key(
		fmt.Sprintf("%04d", t.Year()),
		fmt.Sprintf("%02d", int(t.Month())),
		fmt.Sprintf("%02d", t.Day()),
		report.RunID+".json",
	)
}

// Record uploads report as indented JSON.
func (a *Archive) Record(ctx context.Context, report *reconcile.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	key := a.Key(report)
	_, err = a.client.PutObject(ctx, a.endpoint.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("archive report to %s: %w", key, err)
	}
	return nil
}
