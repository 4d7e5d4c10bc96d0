package dataimporter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/docloader/pkg/database"
	"github.com/travigo/docloader/pkg/dataimporter/manager"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("all keys", func(t *testing.T) {
		path := writeFile(t, dir, "full.yaml", `file: exports/receipts.jsonl
uri: mongodb://db.internal:27017/
db: shop
collection: orders
drop: false
connect_timeout: 10s
`)

		config, err := LoadConfigFile(path)
		require.NoError(t, err)

		require.NotNil(t, config.Drop)
		assert.False(t, *config.Drop)
		config.Drop = nil

		assert.Equal(t, FileConfig{
			File:           "exports/receipts.jsonl",
			URI:            "mongodb://db.internal:27017/",
			Database:       "shop",
			Collection:     "orders",
			ConnectTimeout: "10s",
		}, config)
	})

	t.Run("empty file", func(t *testing.T) {
		config, err := LoadConfigFile(writeFile(t, dir, "empty.yaml", ""))
		require.NoError(t, err)
		assert.Equal(t, FileConfig{}, config)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadConfigFile(writeFile(t, dir, "unknown.yaml", "database: shop\n"))
		assert.ErrorContains(t, err, "database")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestValidateOptions(t *testing.T) {
	valid := manager.Options{
		File:           "receipts.ndjson",
		Collection:     database.DefaultCollection,
		Database:       database.DefaultDatabase,
		URI:            database.DefaultConnectionString,
		ConnectTimeout: database.DefaultConnectTimeout,
	}

	require.NoError(t, ValidateOptions(valid))

	tests := []struct {
		name    string
		modify  func(opts *manager.Options)
		message string
	}{
		{
			name:    "no file",
			modify:  func(opts *manager.Options) { opts.File = "" },
			message: "file must be set",
		},
		{
			name:    "dollar in collection",
			modify:  func(opts *manager.Options) { opts.Collection = "orders$" },
			message: "collection \"orders$\" failed the 'excludes' check",
		},
		{
			name:    "space in database",
			modify:  func(opts *manager.Options) { opts.Database = "coffee shop" },
			message: "db \"coffee shop\" failed the 'excludesall' check",
		},
		{
			name:    "slash in database",
			modify:  func(opts *manager.Options) { opts.Database = "coffee/shop" },
			message: "excludesall",
		},
		{
			name:    "not a mongodb uri",
			modify:  func(opts *manager.Options) { opts.URI = "localhost:27017" },
			message: "failed the 'startswith' check",
		},
		{
			name:    "negative timeout",
			modify:  func(opts *manager.Options) { opts.ConnectTimeout = -time.Second },
			message: "connect-timeout",
		},
		{
			name: "several problems",
			modify: func(opts *manager.Options) {
				opts.Collection = ""
				opts.Database = ""
			},
			message: "collection must be set; db must be set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.modify(&opts)

			err := ValidateOptions(opts)

			var usageErr *UsageError
			require.ErrorAs(t, err, &usageErr)
			assert.Contains(t, usageErr.Message, tt.message)
		})
	}

	t.Run("srv uri", func(t *testing.T) {
		opts := valid
		opts.URI = "mongodb+srv://cluster0.example.net/"
		assert.NoError(t, ValidateOptions(opts))
	})
}
