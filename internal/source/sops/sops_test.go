package sops

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"primamateria.systems/tabula/internal/source"
)

func Test_SopsSource(t *testing.T) {
	src, err := NewSopsSource(Config{Format: "binary"})
	require.NoError(t, err)
	assert.Equal(t, source.KindSops, src.Kind())

	_, err = src.Open(filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = src.Create(filepath.Join(t.TempDir(), "hosts.csv"))
	assert.ErrorIs(t, err, source.ErrReadOnly)
}

func Test_ConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Format: "yaml"}.Validate())
	assert.Error(t, Config{Format: "xml"}.Validate())
	_, err := NewSopsSource(Config{})
	assert.Error(t, err)
}
