package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("k", "v"))
	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("mNotifyThrottle", `{"resident:1:overdue":1700000000000}`))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	v, err := reopened.Get("mNotifyThrottle")
	require.NoError(t, err)
	assert.Equal(t, `{"resident:1:overdue":1700000000000}`, v)

	_, err = reopened.Get("other")
	assert.ErrorIs(t, err, ErrNotFound)
}
