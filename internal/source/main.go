package source

import (
	"errors"
	"io"
)

var ErrReadOnly = errors.New("source does not support writing")

// Opener hands out byte streams for inventory tables. Implementations must
// report a missing table with an error matching fs.ErrNotExist.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
	Kind() string
}
