package database

import (
	"path/filepath"
	"testing"

	"github.com/RSanjanaS/APP-development-C2G/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	t.Run("should open a sqlite file and apply migrations", func(t *testing.T) {
		// given
		cfg := config.Database{Path: filepath.Join(t.TempDir(), "test.db")}

		// when
		db, err := Open(cfg)
		require.NoError(t, err)
		defer db.Close()
		err = Migrate(db)

		// then
		require.NoError(t, err)
		_, err = db.Exec("INSERT INTO users (uid, username) VALUES (?, ?)", "uid-1", "alice")
		assert.NoError(t, err)
	})

	t.Run("should be a no-op when the schema is already current", func(t *testing.T) {
		// given
		cfg := config.Database{Path: filepath.Join(t.TempDir(), "test.db")}
		db, err := Open(cfg)
		require.NoError(t, err)
		defer db.Close()
		require.NoError(t, Migrate(db))

		// when
		err = Migrate(db)

		// then
		assert.NoError(t, err)
	})
}
