package values

import (
	"fmt"

	"primamateria.systems/tabula/internal/tabular"
)

type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "absent"
	}
}

// Value is a normalized table cell. The zero Value is absent.
type Value struct {
	kind Kind
	str  string
	b    bool
}

func Absent() Value { return Value{} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Normalize applies the single coercion rule used for every cell: "True" and
// "False" become booleans, the empty string becomes absent and anything else
// is kept verbatim.
func Normalize(raw string) Value {
	switch raw {
	case "True":
		return Bool(true)
	case "False":
		return Bool(false)
	case "":
		return Absent()
	}
	return String(raw)
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Str returns the string payload and whether the value holds a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// BoolValue returns the boolean payload and whether the value holds a boolean.
func (v Value) BoolValue() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Raw renders the value back into table text.
func (v Value) Raw() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

// Any returns nil, a bool or a string for encoders that work on interfaces.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return v.b
	default:
		return nil
	}
}

func (v Value) String() string {
	if v.kind == KindAbsent {
		return "<absent>"
	}
	return fmt.Sprintf("%v", v.Any())
}

type Field struct {
	Name  string
	Value Value
}

// Row is a normalized table row in header order.
type Row []Field

func (r Row) Get(name string) (Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Absent(), false
}

func (r Row) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Without returns a copy of the row with the named fields removed.
func (r Row) Without(names ...string) Row {
	result := make(Row, 0, len(r))
outer:
	for _, f := range r {
		for _, n := range names {
			if f.Name == n {
				continue outer
			}
		}
		result = append(result, f)
	}
	return result
}

// Empty reports whether every field in the row is absent. A row like this is
// the reader's "no data declared" marker.
func (r Row) Empty() bool {
	for _, f := range r {
		if !f.Value.IsAbsent() {
			return false
		}
	}
	return true
}

func NormalizeRow(raw tabular.Row) Row {
	result := make(Row, len(raw))
	for i, f := range raw {
		result[i] = Field{Name: f.Name, Value: Normalize(f.Value)}
	}
	return result
}

// NormalizeRows normalizes every row and drops the ones that carry no data.
func NormalizeRows(raw []tabular.Row) []Row {
	result := make([]Row, 0, len(raw))
	for _, r := range raw {
		row := NormalizeRow(r)
		if row.Empty() {
			continue
		}
		result = append(result, row)
	}
	return result
}
