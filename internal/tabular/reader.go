package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/charmbracelet/log"
	"primamateria.systems/tabula/internal/source"
)

type Field struct {
	Name  string
	Value string
}

// Row holds one data record in header order.
type Row []Field

// SourceError reports a table that exists but could not be read or written.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("inventory table %v: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Read loads the table at path. A missing table is not an error: it yields a
// single empty row.
func Read(o source.Opener, path string) ([]Row, error) {
	f, err := o.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("table %v not found, treating as empty", path)
			return []Row{{}}, nil
		}
		return nil, &SourceError{Path: path, Err: err}
	}
	defer f.Close()

	rows, err := Decode(f)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	log.Debugf("read %v rows from %v", len(rows), path)
	return rows, nil
}

// Decode parses comma separated text with a header row.
func Decode(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	names, positions := columns(header)

	rows := []Row{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			log.Warn("dropping values beyond header", "line", line, "extra", len(record)-len(header))
		}
		row := make(Row, len(names))
		for i, name := range names {
			var value string
			if p := positions[name]; p < len(record) {
				value = record[p]
			}
			row[i] = Field{Name: name, Value: value}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columns returns the distinct header names in first-seen order and, for
// each, the position of its last occurrence.
func columns(header []string) ([]string, map[string]int) {
	names := make([]string, 0, len(header))
	positions := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := positions[h]; !ok {
			names = append(names, h)
		} else {
			log.Warn("duplicate column, last one wins", "column", h)
		}
		positions[h] = i
	}
	return names, positions
}
