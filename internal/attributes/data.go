package attributes

import (
	"maps"
	"slices"

	"primamateria.systems/tabula/internal/values"
)

// Data is the free-form extension map of an inventory element. Keys keep the
// order they were first set in, which is the column order of the source.
type Data struct {
	keys    []string
	entries map[string]values.Value
}

func NewData() *Data {
	return &Data{entries: make(map[string]values.Value)}
}

func (d *Data) Set(key string, v values.Value) {
	if _, ok := d.entries[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = v
}

func (d *Data) Get(key string) (values.Value, bool) {
	if d == nil {
		return values.Absent(), false
	}
	v, ok := d.entries[key]
	return v, ok
}

func (d *Data) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.keys)
}

func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Map converts the data for encoders; absent values become nil.
func (d *Data) Map() map[string]any {
	result := make(map[string]any, d.Len())
	if d == nil {
		return result
	}
	for _, k := range d.keys {
		result[k] = d.entries[k].Any()
	}
	return result
}

// Raw renders every value back into table text.
func (d *Data) Raw() map[string]string {
	result := make(map[string]string, d.Len())
	if d == nil {
		return result
	}
	for _, k := range d.keys {
		result[k] = d.entries[k].Raw()
	}
	return result
}

func (d *Data) Clone() *Data {
	if d == nil {
		return NewData()
	}
	return &Data{
		keys:    slices.Clone(d.keys),
		entries: maps.Clone(d.entries),
	}
}
