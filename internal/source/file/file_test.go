package file

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FileSource(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, k.Load(confmap.Provider(map[string]any{"file.mode": 0o600}, "."), nil))
	c, err := NewConfig(k)
	require.NoError(t, err)
	src := NewFileSource(c)

	path := filepath.Join(t.TempDir(), "hosts.csv")
	w, err := src.Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "name\nr1\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	r, err := src.Open(path)
	require.NoError(t, err)
	defer r.Close()
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "name\nr1\n", string(content))

	_, err = src.Open(filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
