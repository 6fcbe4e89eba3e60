package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHolderMemory(t *testing.T) {
	h, err := NewHolder(nil)
	require.NoError(t, err)
	require.False(t, h.Snapshot().Authenticated())

	s := Session{Token: "abc", User: User{ID: "u1", Name: "Ada", Role: RoleAdmin}}
	require.NoError(t, h.Set(s))
	require.Equal(t, "abc", h.Token())
	require.True(t, h.Snapshot().IsAdmin())

	require.NoError(t, h.Clear())
	require.Equal(t, "", h.Token())
	require.False(t, h.Snapshot().IsAdmin())
}

func TestSnapshotSurvivesClear(t *testing.T) {
	h, _ := NewHolder(nil)
	require.NoError(t, h.Set(Session{Token: "abc", User: User{Role: RoleUser}}))

	snap := h.Snapshot()
	require.NoError(t, h.Clear())
	require.Equal(t, "abc", snap.Token)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := FileStore{Path: path}

	h, err := NewHolder(store)
	require.NoError(t, err)
	require.False(t, h.Snapshot().Authenticated())

	s := Session{Token: "tok", User: User{ID: "u1", Name: "Bo", Role: RoleUser}}
	require.NoError(t, h.Set(s))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded, err := NewHolder(store)
	require.NoError(t, err)
	require.Equal(t, s, reloaded.Snapshot())

	require.NoError(t, reloaded.Clear())
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewHolder(FileStore{Path: path})
	require.Error(t, err)
}

func TestHolderConcurrent(t *testing.T) {
	h, _ := NewHolder(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			h.Set(Session{Token: "t", User: User{Role: RoleUser}})
		}()
		go func() {
			defer wg.Done()
			if s := h.Snapshot(); s.Token != "" && s.Token != "t" {
				t.Errorf("torn snapshot %+v", s)
			}
		}()
	}
	wg.Wait()
}
