package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hupe1980/kmeans/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "missing.bin")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PutGet", func(t *testing.T) {
		data := []byte("k=3 dispersion=30")
		require.NoError(t, store.Put(ctx, "runs/k3.snap", data))

		got, err := store.Get(ctx, "runs/k3.snap")
		require.NoError(t, err)
		assert.Equal(t, data, got)

		data[0] = 'x'
		got, err = store.Get(ctx, "runs/k3.snap")
		require.NoError(t, err)
		assert.Equal(t, byte('k'), got[0], "store must not alias caller buffers")
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "sweep.snap", []byte("v1")))
		require.NoError(t, store.Put(ctx, "sweep.snap", []byte("v2")))

		got, err := store.Get(ctx, "sweep.snap")
		require.NoError(t, err)
		assert.Equal(t, "v2", string(got))
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "runs/k1.snap", []byte("a")))
		require.NoError(t, store.Put(ctx, "runs/k2.snap", []byte("b")))

		names, err := store.List(ctx, "runs/")
		require.NoError(t, err)
		assert.Equal(t, []string{"runs/k1.snap", "runs/k2.snap", "runs/k3.snap"}, names)

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Contains(t, all, "sweep.snap")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "runs/k1.snap"))
		require.NoError(t, store.Delete(ctx, "runs/k1.snap"), "deleting twice is fine")

		_, err := store.Get(ctx, "runs/k1.snap")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, store.Put(cctx, "late.snap", []byte("x")), context.Canceled)
	})
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	testStoreContract(t, NewLocalStore(dir))

	_, err := os.Stat(filepath.Join(dir, "runs", "k3.snap"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "runs"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}

func TestLocalStore_InvalidName(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "../escape", "/abs/path"} {
		assert.Error(t, store.Put(ctx, name, []byte("x")), name)
	}
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestThrottled(t *testing.T) {
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	testStoreContract(t, NewThrottled(NewMemoryStore(), rc))
}

func TestThrottled_WaitsForBudget(t *testing.T) {
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 100})
	store := NewThrottled(NewMemoryStore(), rc)
	ctx := context.Background()

	// The first 100 bytes use the burst, the next 100 need about a second.
	start := time.Now()
	require.NoError(t, store.Put(ctx, "a", make([]byte, 100)))
	require.NoError(t, store.Put(ctx, "b", make([]byte, 50)))
	assert.GreaterOrEqual(t, time.Since(start), 400*time.Millisecond)

	tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	assert.Error(t, store.Put(tctx, "c", make([]byte, 100)))
}

func TestThrottled_NilController(t *testing.T) {
	testStoreContract(t, NewThrottled(NewMemoryStore(), nil))
}
