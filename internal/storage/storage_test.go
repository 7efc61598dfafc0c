package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestRoundTrip(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Set("auth-storage", payload{Name: "ada", Count: 3}))

	var got payload
	ok, err := st.Get("auth-storage", &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, payload{Name: "ada", Count: 3}, got)
}

func TestMissingKey(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	var got payload
	ok, err := st.Get("never-written", &got)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOverwriteReplacesValue(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Set("k", payload{Name: "first"}))
	require.NoError(t, st.Set("k", payload{Name: "second"}))

	var got payload
	ok, err := st.Get("k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", got.Name)
}

func TestDelete(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Set("k", payload{Name: "x"}))
	require.NoError(t, st.Delete("k"))

	var got payload
	ok, err := st.Get("k", &got)
	require.NoError(t, err)
	require.False(t, ok)

	// deleting again is fine
	require.NoError(t, st.Delete("k"))
}

func TestInvalidKeyRejected(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	require.Error(t, st.Set("../escape", payload{}))
	_, err = st.Get("a/b", &payload{})
	require.Error(t, err)
}

func TestNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, st.Set("k", payload{Name: "x"}))

	_, err = os.Stat(filepath.Join(dir, "k.json.tmp"))
	require.True(t, os.IsNotExist(err))
}
