package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/violet-vault/backend/internal/models"
)

// TmpFile returns the path to a unique file to be used in tests
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

// Connect connects models.DB to an empty database in a temporary file.
// The connection is closed when the test finishes.
func Connect(t *testing.T) {
	require.Nil(t, models.Connect(TmpFile(t)), "Database connection failed")

	t.Cleanup(func() {
		sqlDB, err := models.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
}
