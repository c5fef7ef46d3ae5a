package server_test

import (
	"testing"
	"time"

	"content-forge/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Role(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		valid  bool
		api    bool
		worker bool
	}{
		{"All", server.RoleAll, true, true, true},
		{"API", server.RoleAPI, true, true, false},
		{"Worker", server.RoleWorker, true, false, true},
		{"Invalid", "invalid", false, false, false},
		{"Empty", "", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Role: tt.role}
			assert.Equal(t, tt.valid, c.IsValidRole())
			assert.Equal(t, tt.api, c.ServesAPI())
			assert.Equal(t, tt.worker, c.RunsWorker())
		})
	}
}

func TestConfig_ShutdownTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, server.Config{}.ShutdownTimeout())
	assert.Equal(t, 3*time.Second, server.Config{ShutdownTimeoutSeconds: 3}.ShutdownTimeout())
}
