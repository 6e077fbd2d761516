package metadata

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func setupBolt(t *testing.T) *BoltRepository {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "meta.bolt"), 0o600, &bolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r, err := NewBoltRepository(db)
	require.NoError(t, err)
	return r
}

// Both backends must honour the same contract.
func backends(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"sqlite": NewSQLiteRepository(setupDB(t)),
		"bolt":   setupBolt(t),
	}
}

func TestRepositoryContract(t *testing.T) {
	for name, r := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			v, err := r.Get(ctx, "access_token")
			require.NoError(t, err)
			require.Nil(t, v)

			require.NoError(t, r.Set(ctx, "access_token", []byte("a.b.c")))
			require.NoError(t, r.Set(ctx, "access_token", []byte("d.e.f")))
			require.NoError(t, r.Set(ctx, "theme", []byte("light")))

			v, err = r.Get(ctx, "access_token")
			require.NoError(t, err)
			assert.Equal(t, []byte("d.e.f"), v)

			m, err := r.List(ctx)
			require.NoError(t, err)
			assert.Len(t, m, 2)

			require.NoError(t, r.Delete(ctx, "access_token", "missing"))
			v, err = r.Get(ctx, "access_token")
			require.NoError(t, err)
			require.Nil(t, v)

			require.NoError(t, r.Clear(ctx))
			m, err = r.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, m)
		})
	}
}

func TestBolt_ValueCopiedOutOfTransaction(t *testing.T) {
	r := setupBolt(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("value")))
	v, err := r.Get(ctx, "k")
	require.NoError(t, err)

	v[0] = 'X'
	again, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)
}

func TestBolt_CanceledContext(t *testing.T) {
	r := setupBolt(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, r.Set(ctx, "k", nil), context.Canceled)
}

func TestBolt_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.bolt")
	ctx := context.Background()

	db, err := bolt.Open(path, 0o600, nil)
	require.NoError(t, err)
	r, err := NewBoltRepository(db)
	require.NoError(t, err)
	require.NoError(t, r.Set(ctx, "access_token", []byte("tok")))
	require.NoError(t, db.Close())

	db, err = bolt.Open(path, 0o600, nil)
	require.NoError(t, err)
	defer db.Close()
	r, err = NewBoltRepository(db)
	require.NoError(t, err)

	v, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), v)
}
