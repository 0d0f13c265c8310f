package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/blobstore"
	"github.com/hupe1980/kmeans/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"Annual Income (k$)", "Spending Score (1-100)"}, cfg.Input.Columns)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, cfg.Sweep.Ks())
	assert.Equal(t, uint64(42), cfg.Sweep.Seed)
	assert.Equal(t, kmeans.DefaultMaxIterations, cfg.Cluster.MaxIterations)
	assert.Equal(t, kmeans.DefaultTolerance, cfg.Cluster.Tolerance)
	assert.Equal(t, "none", cfg.Store.Type)

	policy, err := cfg.Cluster.Policy()
	require.NoError(t, err)
	assert.Equal(t, kmeans.ReseedUniform, policy)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elbow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input:
  path: customers.csv
  columns: [Age]
sweep:
  min_k: 2
  max_k: 4
cluster:
  empty_cluster: from-data
store:
  type: local
  path: /tmp/snaps
  compression: lz4
`), 0o600))

	t.Setenv("KMEANS_SWEEP_SEED", "7")
	t.Setenv("KMEANS_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "customers.csv", cfg.Input.Path)
	assert.Equal(t, []string{"Age"}, cfg.Input.Columns)
	assert.Equal(t, []int{2, 3, 4}, cfg.Sweep.Ks())
	assert.Equal(t, uint64(7), cfg.Sweep.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "local", cfg.Store.Type)

	policy, err := cfg.Cluster.Policy()
	require.NoError(t, err)
	assert.Equal(t, kmeans.ReseedFromData, policy)
	assert.Len(t, cfg.Cluster.Options(), 3)
	assert.Len(t, cfg.Store.SnapshotOptions(), 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Sweep.MinK = 0
	cfg.Sweep.Concurrency = 0
	cfg.Cluster.EmptyCluster = "nearest"
	cfg.Store.Type = "ftp"
	cfg.Store.Compression = "brotli"
	cfg.Log.Format = "xml"

	err = cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	for _, want := range []string{"sweep.min_k", "sweep.concurrency", "nearest", "ftp", "brotli", "log.format"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elbow.log")

	logger, closer, err := NewLogger(LogConfig{Level: "info", Format: "json", File: path, MaxSize: 1})
	require.NoError(t, err)

	logger.Info("sweep finished", "count", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"sweep finished"`)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	cfg, err := Load("")
	require.NoError(t, err)

	store, err := OpenStore(ctx, cfg.Store, cfg.Resources())
	require.NoError(t, err)
	assert.Nil(t, store)

	cfg.Store.Type = "local"
	cfg.Store.Path = t.TempDir()
	store, err = OpenStore(ctx, cfg.Store, cfg.Resources())
	require.NoError(t, err)
	assert.IsType(t, &blobstore.LocalStore{}, store)

	cfg.Store.Type = "memory"
	cfg.Store.IOLimitBytesPerSec = 1 << 20
	store, err = OpenStore(ctx, cfg.Store, cfg.Resources())
	require.NoError(t, err)
	assert.IsType(t, &blobstore.Throttled{}, store)

	res := &kmeans.Result{K: 1, Groups: [][]int{{0}}, Centroids: []kmeans.Point{{1}}, Outcome: kmeans.OutcomeConverged}
	require.NoError(t, snapshot.SaveResult(ctx, store, "r.snap", res, cfg.Store.SnapshotOptions()...))
	got, err := snapshot.LoadResult(ctx, store, "r.snap")
	require.NoError(t, err)
	assert.Equal(t, res, got)
}
