// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client and exposes the few operations needed to keep reference
// seed files (YAML collections) in a bucket: checking the bucket, uploading seeds and
// reading them back. It works with AWS S3 and self-hosted MinIO.
//
// The Client interface makes storage easy to mock (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
