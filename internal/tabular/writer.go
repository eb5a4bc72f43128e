package tabular

import (
	"encoding/csv"
	"io"

	"primamateria.systems/tabula/internal/source"
)

// Encode writes a header row and one row per record. Record keys outside the
// header are ignored and header names missing from a record are left blank.
func Encode(w io.Writer, header []string, records []map[string]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	line := make([]string, len(header))
	for _, rec := range records {
		for i, h := range header {
			line[i] = rec[h]
		}
		if err := writer.Write(line); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func Write(o source.Opener, path string, header []string, records []map[string]string) error {
	f, err := o.Create(path)
	if err != nil {
		return &SourceError{Path: path, Err: err}
	}
	if err := Encode(f, header, records); err != nil {
		f.Close()
		return &SourceError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &SourceError{Path: path, Err: err}
	}
	return nil
}
