package inventory

import (
	"strconv"

	"primamateria.systems/tabula/internal/attributes"
	"primamateria.systems/tabula/internal/values"
)

// BaseAttributes are the connection attributes every inventory element can
// carry. Unset attributes are absent and left to the consuming engine to
// resolve through groups and defaults.
type BaseAttributes struct {
	Hostname values.Value
	Port     values.Value
	Username values.Value
	Password values.Value
	Platform values.Value
}

// Set assigns the attribute called name and reports whether name is a base
// attribute.
func (b *BaseAttributes) Set(name string, v values.Value) bool {
	switch name {
	case attributes.FieldHostname:
		b.Hostname = v
	case attributes.FieldPort:
		b.Port = v
	case attributes.FieldUsername:
		b.Username = v
	case attributes.FieldPassword:
		b.Password = v
	case attributes.FieldPlatform:
		b.Platform = v
	default:
		return false
	}
	return true
}

func (b BaseAttributes) Get(name string) (values.Value, bool) {
	switch name {
	case attributes.FieldHostname:
		return b.Hostname, true
	case attributes.FieldPort:
		return b.Port, true
	case attributes.FieldUsername:
		return b.Username, true
	case attributes.FieldPassword:
		return b.Password, true
	case attributes.FieldPlatform:
		return b.Platform, true
	}
	return values.Absent(), false
}

// Apply sets every base attribute present in row and ignores the rest.
func (b *BaseAttributes) Apply(row values.Row) {
	for _, f := range row {
		b.Set(f.Name, f.Value)
	}
}

// PortNumber parses the port attribute.
func (b BaseAttributes) PortNumber() (int, bool) {
	s, ok := b.Port.Str()
	if !ok {
		return 0, false
	}
	port, err := strconv.Atoi(s)
	if err != nil || port < 0 || port > 65535 {
		return 0, false
	}
	return port, true
}

// Raw renders the base attributes back into table text keyed by column name.
func (b BaseAttributes) Raw() map[string]string {
	result := make(map[string]string, attributes.BaseAttributes.Len())
	for _, n := range attributes.BaseAttributes.Names() {
		v, _ := b.Get(n)
		result[n] = v.Raw()
	}
	return result
}

// Map returns the attributes that are set, for encoders.
func (b BaseAttributes) Map() map[string]any {
	result := make(map[string]any)
	for _, n := range attributes.BaseAttributes.Names() {
		if v, _ := b.Get(n); !v.IsAbsent() {
			result[n] = v.Any()
		}
	}
	return result
}
