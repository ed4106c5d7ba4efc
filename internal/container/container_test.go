package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdash/domain/core"
	"hrdash/internal/config"
	"hrdash/internal/testkit"
)

func fileConfig(path string) *config.Config {
	return &config.Config{
		Data:    config.DataConfig{Source: config.SourceFile, File: path},
		Server:  config.ServerConfig{Port: "0"},
		Ranker:  config.RankerConfig{Trees: 5, Seed: 42, TopN: 10, CacheSize: 4},
		Logging: config.LoggingConfig{Level: "ERROR"},
	}
}

func TestNew_FileSourceLoadsLazily(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.csv")
	require.NoError(t, os.WriteFile(path, testkit.CSV(testkit.SmallEmployees()), 0o644))

	c, err := New(context.Background(), fileConfig(path))
	require.NoError(t, err)
	assert.Nil(t, c.DB)
	assert.Equal(t, 0, c.Loader.Reads())

	table, err := c.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, table.Len())
	assert.Equal(t, 1, c.Loader.Reads())

	opts, err := c.Dashboard.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Female", "Male"}, opts.Genders)
	assert.Equal(t, 1, c.Loader.Reads())

	assert.NoError(t, c.Shutdown(context.Background()))
}

func TestWarm_MissingFileIsDataUnavailable(t *testing.T) {
	c, err := New(context.Background(), fileConfig(filepath.Join(t.TempDir(), "missing.csv")))
	require.NoError(t, err)

	_, err = c.Warm(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsDataUnavailable(err))
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)
}
