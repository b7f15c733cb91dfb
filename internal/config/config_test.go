package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "STORE_DRIVER", "TASKS_TABLE", "TASKS_OWNER_INDEX", "SIGNED_URL_EXPIRATION", "AWS_REGION"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, "tasks", cfg.TasksTable)
	assert.Equal(t, "tasks_by_owner", cfg.OwnerIndex)
	assert.Equal(t, 300, cfg.SignedURLExpiration)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORE_DRIVER", DriverPostgres)
	t.Setenv("TASKS_TABLE", "todo_items")
	t.Setenv("SIGNED_URL_EXPIRATION", "600")
	t.Setenv("ATTACHMENTS_BUCKET", "my-bucket")

	cfg := Load()
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "todo_items", cfg.TasksTable)
	assert.Equal(t, 600, cfg.SignedURLExpiration)
	assert.Equal(t, "my-bucket", cfg.AttachmentsBucket)
}

func TestLoadFallsBackOnBadInt(t *testing.T) {
	t.Setenv("SIGNED_URL_EXPIRATION", "not-a-number")
	cfg := Load()
	assert.Equal(t, 300, cfg.SignedURLExpiration)
}
