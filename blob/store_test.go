package blob

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "blobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemStore(),
	}
}

func TestStorePutOpen(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			info, err := store.Put("docs/hello.txt", "text/plain", []byte("Hello world"))
			require.NoError(t, err)
			require.Equal(t, int64(11), info.Size)
			require.Len(t, info.ETag, 64)

			b, err := store.Open("docs/hello.txt")
			require.NoError(t, err)
			require.Equal(t, info, b.Info)

			_, err = b.Seek(6, io.SeekStart)
			require.NoError(t, err)
			rest, err := io.ReadAll(b)
			require.NoError(t, err)
			require.Equal(t, "world", string(rest))

			stat, err := store.Stat("docs/hello.txt")
			require.NoError(t, err)
			require.Equal(t, info, stat)
			require.Equal(t, `"`+info.ETag+`"`, stat.EntityTag().String())
		})
	}
}

func TestStoreReplace(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			first, err := store.Put("a", "text/plain", []byte("one"))
			require.NoError(t, err)
			second, err := store.Put("a", "application/json", []byte("two!"))
			require.NoError(t, err)
			require.NotEqual(t, first.ETag, second.ETag)

			stat, err := store.Stat("a")
			require.NoError(t, err)
			require.Equal(t, "application/json", stat.ContentType)
			require.Equal(t, int64(4), stat.Size)
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			_, err := store.Stat("missing")
			require.True(t, errors.Is(err, ErrNotFound))
			_, err = store.Open("missing")
			require.True(t, errors.Is(err, ErrNotFound))
			require.True(t, errors.Is(store.Delete("missing"), ErrNotFound))
		})
	}
}

func TestStoreDeleteAndKeys(t *testing.T) {
	for name, store := range stores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"img/b.png", "img/a.png", "docs/c.txt", "img_d"} {
				_, err := store.Put(key, "", []byte(key))
				require.NoError(t, err)
			}
			require.NoError(t, store.Delete("img/b.png"))

			var keys []string
			require.NoError(t, store.Keys("img/", func(key string) {
				keys = append(keys, key)
			}))
			require.Equal(t, []string{"img/a.png"}, keys)

			keys = nil
			require.NoError(t, store.Keys("", func(key string) {
				keys = append(keys, key)
			}))
			require.Equal(t, []string{"docs/c.txt", "img/a.png", "img_d"}, keys)
		})
	}
}
