package file

import (
	"io"
	"os"

	"primamateria.systems/tabula/internal/source"
)

type FileSource struct {
	mode os.FileMode
}

func NewFileSource(c *Config) *FileSource {
	if c == nil || c.FileMode == 0 {
		return &FileSource{mode: 0o644}
	}
	return &FileSource{mode: c.FileMode}
}

func (f *FileSource) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (f *FileSource) Create(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.mode)
}

func (f *FileSource) Kind() string { return source.KindPlain }
