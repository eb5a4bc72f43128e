package sops

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/getsops/sops/v3/decrypt"
	"primamateria.systems/tabula/internal/source"
)

// SopsSource decrypts SOPS encrypted tables. Tables are stored with the
// binary store by default so the CSV text comes back byte for byte.
type SopsSource struct {
	format string
}

func NewSopsSource(c Config) (*SopsSource, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &SopsSource{format: c.Format}, nil
}

func (s *SopsSource) Open(path string) (io.ReadCloser, error) {
	// decrypt.File hides the not-exist cause, check first
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	decrypted, err := decrypt.File(path, s.format)
	if err != nil {
		return nil, fmt.Errorf("error decrypting SOPS file %v: %w", path, err)
	}
	return io.NopCloser(bytes.NewReader(decrypted)), nil
}

func (s *SopsSource) Create(path string) (io.WriteCloser, error) {
	return nil, fmt.Errorf("can't write %v: %w", path, source.ErrReadOnly)
}

func (s *SopsSource) Kind() string { return source.KindSops }
