package reference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"content-forge/core/errs"
	"content-forge/core/storage"

	"github.com/minio/minio-go/v7"
	"gopkg.in/yaml.v3"
)

// Source loads the authoritative content of a collection, keyed by record code.
// A collection without seed data is empty, not an error.
type Source interface {
	Load(ctx context.Context, collection string) (map[string]json.RawMessage, error)
}

// DirSource reads "<dir>/<collection>.yaml".
type DirSource struct {
	dir string
}

// NewDirSource creates a source over dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Load(_ context.Context, collection string) (map[string]json.RawMessage, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		data, err := os.ReadFile(filepath.Join(s.dir, collection+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read seed %s: %w", collection, err)
		}
		return decodeSeed(collection, data)
	}
	return map[string]json.RawMessage{}, nil
}

// BucketSource reads "<prefix><collection>.yaml" from object storage.
type BucketSource struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketSource creates a source over a storage bucket.
func NewBucketSource(client storage.Client, bucket, prefix string) *BucketSource {
	return &BucketSource{client: client, bucket: bucket, prefix: prefix}
}

func (s *BucketSource) Load(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	objectName := s.prefix + collection + ".yaml"

	reader, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("failed to get seed %s: %w", objectName, err)
	}
	defer reader.Close()

	// minio resolves the object lazily, so a missing key may only surface on read.
	data, err := io.ReadAll(reader)
	if err != nil {
		if isNoSuchKey(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("failed to read seed %s: %w", objectName, err)
	}
	return decodeSeed(collection, data)
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

// decodeSeed parses a YAML mapping of code -> record into raw JSON records.
func decodeSeed(collection string, data []byte) (map[string]json.RawMessage, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errs.Validation("seed %s: %v", collection, err)
	}

	out := make(map[string]json.RawMessage, len(doc))
	for code, record := range doc {
		raw, err := json.Marshal(normalizeYAML(record))
		if err != nil {
			return nil, errs.Validation("seed %s record %s: %v", collection, code, err)
		}
		out[code] = raw
	}
	return out, nil
}

// normalizeYAML converts maps with non-string keys so the value can be JSON encoded.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
