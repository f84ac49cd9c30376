package definition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"lakecircle/core/lifecycle"
	"lakecircle/core/reconcile"
	"lakecircle/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// maxFileSize bounds a single definition file.
const maxFileSize = 4 << 20

// Loader reads definition files from object storage.
type Loader struct {
	client storage.Client
	logger *zap.Logger
}

// NewLoader creates a definition loader.
func NewLoader(client storage.Client, logger *zap.Logger) *Loader {
	return &Loader{client: client, logger: logger.Named("definition")}
}

// LoadFunc binds the loader to prefix.
func (l *Loader) LoadFunc(prefix storage.Endpoint) reconcile.LoadFunc {
	return func(ctx context.Context) (*reconcile.Snapshot, error) {
		return l.Load(ctx, prefix)
	}
}

// Load builds the desired state from every definition file below prefix.
func (l *Loader) Load(ctx context.Context, prefix storage.Endpoint) (*reconcile.Snapshot, error) {
	log := l.logger.With(zap.String("prefix", prefix.String()))
	snap := &reconcile.Snapshot{State: lifecycle.State{}}

	opts := minio.ListObjectsOptions{
		Prefix:    prefix.Prefix,
		Recursive: true,
	}

	files := 0
	for obj := range l.client.ListObjects(ctx, prefix.Bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list definitions in %s: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		format, ok := FormatOf(obj.Key)
		if !ok {
			log.Debug("Ignoring object", zap.String("key", obj.Key))
			continue
		}

		def, err := l.loadFile(ctx, prefix.Bucket, obj.Key, format)
		if err != nil {
			log.Warn("Skipping definition file", zap.String("key", obj.Key), zap.Error(err))
			snap.Warnings = append(snap.Warnings, reconcile.NewWarning(reconcile.WarningDefinition, obj.Key, err))
			continue
		}
		files++

		for _, invalid := range def.Invalid {
			w := reconcile.NewWarning(reconcile.WarningRule, obj.Key, invalid)
			w.Bucket = def.Bucket
			snap.Warnings = append(snap.Warnings, w)
			log.Warn("Skipping invalid rule", zap.String("key", obj.Key), zap.String("bucket", def.Bucket), zap.Error(invalid))
		}
		for _, r := range def.Rules {
			if !r.HasAction() {
				log.Info("Rule declares no action", zap.String("bucket", def.Bucket), zap.String("rule", r.ID()))
			}
		}

		snap.State.Merge(lifecycle.NewRuleCollection(def.Bucket, def.Rules...))
	}

	for _, bucket := range snap.State.Buckets() {
		for _, id := range snap.State[bucket].DuplicateIDs() {
			snap.Warnings = append(snap.Warnings, reconcile.Warning{
				Kind:    reconcile.WarningRule,
				Bucket:  bucket,
				Rule:    id,
				Message: fmt.Sprintf("rule identifier %q is declared by more than one rule", id),
			})
			log.Warn("Duplicate rule identifier", zap.String("bucket", bucket), zap.String("rule", id))
		}
	}

	log.Info("Definitions loaded",
		zap.Int("files", files),
		zap.Int("buckets", len(snap.State)),
		zap.Int("rules", snap.State.RuleCount()),
		zap.Int("warnings", len(snap.Warnings)),
	)
	return snap, nil
}

func (l *Loader) loadFile(ctx context.Context, bucket, key string, format Format) (*lifecycle.Definition, error) {
	obj, err := l.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("read %s: file exceeds %d bytes", key, maxFileSize)
	}

	tree, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	def, err := lifecycle.DecodeDefinition(tree)
	if err != nil {
		var se *lifecycle.StructuralError
		if errors.As(err, &se) {
			se.Source = key
		}
		return nil, err
	}
	return def, nil
}
