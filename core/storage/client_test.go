package storage_test

import (
	"testing"

	"content-forge/core/storage"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		useSSL   bool
	}{
		{"Bare host", "localhost:9000", false},
		{"HTTP scheme stripped", "http://localhost:9000", false},
		{"HTTPS scheme stripped", "https://s3.amazonaws.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(storage.Config{
				Endpoint:  tt.endpoint,
				AccessKey: "testkey",
				SecretKey: "testsecret",
				UseSSL:    tt.useSSL,
				Bucket:    "game-data",
				Region:    "us-east-1",
			})
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}
