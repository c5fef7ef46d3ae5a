package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
)

// UploadDir uploads every .yaml/.yml file of dir to bucket under prefix and returns the
// object names written.
func UploadDir(ctx context.Context, client Client, bucket, prefix, dir string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	uploaded := make([]string, 0, len(names))
	for _, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return uploaded, err
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return uploaded, err
		}

		objectName := prefix + strings.TrimSuffix(name, filepath.Ext(name)) + ".yaml"
		_, err = client.PutObject(ctx, bucket, objectName, f, info.Size(), minio.PutObjectOptions{
			ContentType: "application/yaml",
		})
		f.Close()
		if err != nil {
			return uploaded, fmt.Errorf("failed to upload %s: %w", objectName, err)
		}
		uploaded = append(uploaded, objectName)
	}

	return uploaded, nil
}
