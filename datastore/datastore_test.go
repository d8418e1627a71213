package datastore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guildRecord struct {
	Channels []string `json:"channels"`
	Enabled  bool     `json:"enabled"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := DefaultConfig(filepath.Join(t.TempDir(), "data.json"))
	cfg.AutoSaveInterval = 0 // no background loop in tests
	s, err := NewWithConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := guildRecord{Channels: []string{"123", "456"}, Enabled: true}
	require.NoError(t, s.Set("guild:1:antilinks", in))

	var out guildRecord
	ok, err := s.Get("guild:1:antilinks", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)

	ok, err = s.Get("guild:2:antilinks", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("k", 1))
	require.NoError(t, s.Delete("k"))

	var v int
	ok, err := s.Get("k", &v)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete("missing"))
}

func TestKeysPrefix(t *testing.T) {
	s := newTestStore(t)

	for _, k := range []string{"guild:2:statusrole", "guild:1:statusrole", "user:9:stats"} {
		require.NoError(t, s.Set(k, struct{}{}))
	}

	assert.Equal(t, []string{"guild:1:statusrole", "guild:2:statusrole"}, s.Keys("guild:"))
	assert.Len(t, s.Keys(""), 3)
	assert.Empty(t, s.Keys("channel:"))
}

func TestUpdateReadModifyWrite(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		err := Update(s, "user:1:wins", func(cur int, ok bool) (int, error) {
			return cur + 1, nil
		})
		require.NoError(t, err)
	}

	var wins int
	ok, err := s.Get("user:1:wins", &wins)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, wins)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	cfg := DefaultConfig(path)
	cfg.AutoSaveInterval = 0
	s, err := NewWithConfig(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Set("guild:1:rainbow", guildRecord{Enabled: true}))
	require.NoError(t, s.Close())

	cfg2 := DefaultConfig(path)
	cfg2.AutoSaveInterval = 0
	s2, err := NewWithConfig(cfg2)
	require.NoError(t, err)
	defer s2.Close()

	var rec guildRecord
	ok, err := s2.Get("guild:1:rainbow", &rec)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, rec.Enabled)
}

func TestClosedStoreRejectsWrites(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Set("k", 1), ErrClosed)
	assert.ErrorIs(t, s.Delete("k"), ErrClosed)
	assert.ErrorIs(t, s.Save(), ErrClosed)
	assert.ErrorIs(t, Update(s, "k", func(cur int, ok bool) (int, error) { return 0, nil }), ErrClosed)

	// double close is fine
	require.NoError(t, s.Close())
}

func TestSaveSkipsWhenUnchanged(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Save())

	first := s.Stats().LastSaved
	require.False(t, first.IsZero())

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.Save())
	assert.Equal(t, first, s.Stats().LastSaved)
}

func TestBackupRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	cfg := DefaultConfig(path)
	cfg.AutoSaveInterval = 0
	cfg.BackupCount = 2

	s, err := NewWithConfig(cfg)
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Set("counter", i))
		require.NoError(t, s.Save())
		time.Sleep(5 * time.Millisecond)
	}

	matches, err := filepath.Glob(path + ".backup.*")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(matches), 2)
}

func TestCorruptFileFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cfg := DefaultConfig(path)
	cfg.AutoSaveInterval = 0
	_, err := NewWithConfig(cfg)
	assert.Error(t, err)
}
