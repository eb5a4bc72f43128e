package attributes

import (
	"slices"

	"primamateria.systems/tabula/internal/values"
)

// FieldSet is a fixed, ordered set of recognized column names.
type FieldSet struct {
	names []string
	index map[string]struct{}
}

func NewFieldSet(names ...string) FieldSet {
	s := FieldSet{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		if _, ok := s.index[n]; ok {
			continue
		}
		s.names = append(s.names, n)
		s.index[n] = struct{}{}
	}
	return s
}

func (s FieldSet) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s FieldSet) Names() []string {
	return slices.Clone(s.names)
}

func (s FieldSet) Len() int { return len(s.names) }

const (
	FieldName     = "name"
	FieldHostname = "hostname"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldPlatform = "platform"
	FieldGroups   = "groups"
	FieldPort     = "port"
)

var (
	// ExtendedAttributes are the first-class host columns, in the order the
	// hosts table is written.
	ExtendedAttributes = NewFieldSet(FieldName, FieldHostname, FieldUsername, FieldPassword, FieldPlatform, FieldGroups, FieldPort)
	// BaseAttributes are the connection attributes shared by defaults,
	// groups and connection options.
	BaseAttributes = NewFieldSet(FieldHostname, FieldPort, FieldUsername, FieldPassword, FieldPlatform)
)

// Record is a row split into recognized fields and everything else.
type Record struct {
	Base  values.Row
	Extra *Data
}

// Classify splits row by membership in recognized. Every field of row ends up
// in exactly one half of the result, in its original order.
func Classify(row values.Row, recognized FieldSet) Record {
	rec := Record{
		Base:  make(values.Row, 0, recognized.Len()),
		Extra: NewData(),
	}
	for _, f := range row {
		if recognized.Contains(f.Name) {
			rec.Base = append(rec.Base, f)
			continue
		}
		rec.Extra.Set(f.Name, f.Value)
	}
	return rec
}
