package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calebmh/inkwell-be/internal/database"
)

// newTestDB opens a throwaway sqlite database with the real migrations
// applied, so service tests exercise the actual schema including the
// cascade-delete foreign key.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}
