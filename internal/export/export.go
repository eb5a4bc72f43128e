package export

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"primamateria.systems/tabula/internal/attributes"
	"primamateria.systems/tabula/pkg/inventory"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Exporter renders an inventory in one output format.
type Exporter interface {
	Export(inv *inventory.Inventory, w io.Writer) error
	Format() string
}

var exporters = map[string]func() Exporter{
	"text":  func() Exporter { return NewTextExporter() },
	"json":  func() Exporter { return NewJSONExporter() },
	"yaml":  func() Exporter { return NewYAMLExporter() },
	"toml":  func() Exporter { return NewTOMLExporter() },
	"ini":   func() Exporter { return NewINIExporter() },
	"debug": func() Exporter { return NewDebugExporter() },
}

func ForFormat(name string) (Exporter, error) {
	e, ok := exporters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, name)
	}
	return e(), nil
}

func Formats() []string {
	result := make([]string, 0, len(exporters))
	for k := range exporters {
		result = append(result, k)
	}
	slices.Sort(result)
	return result
}

// baseMap returns the set base attributes. A numeric port is exported as a
// number.
func baseMap(b inventory.BaseAttributes) map[string]any {
	m := b.Map()
	if port, ok := b.PortNumber(); ok {
		m[attributes.FieldPort] = port
	}
	return m
}

func element(b inventory.BaseAttributes, groups inventory.ParentGroups, data *attributes.Data) map[string]any {
	m := baseMap(b)
	if groups != nil {
		m[attributes.FieldGroups] = groups.Names()
	}
	m["data"] = data.Map()
	return m
}

// document is the inventory as nested maps, shaped like a nornir simple
// inventory: hosts, groups, defaults and connection_options.
func document(inv *inventory.Inventory) map[string]any {
	hosts := make(map[string]any, inv.Hosts.Len())
	for _, h := range inv.Hosts.List() {
		groups := h.Groups
		if groups == nil {
			groups = inventory.ParentGroups{}
		}
		hosts[h.Name] = element(h.BaseAttributes, groups, h.Data)
	}
	groups := make(map[string]any, inv.Groups.Len())
	for _, g := range inv.Groups.List() {
		parents := g.Groups
		if parents == nil {
			parents = inventory.ParentGroups{}
		}
		groups[g.Name] = element(g.BaseAttributes, parents, g.Data)
	}
	options := make(map[string]any, len(inv.ConnectionOptions))
	for n, o := range inv.ConnectionOptions {
		m := baseMap(o.BaseAttributes)
		m["extras"] = o.Extras.Map()
		options[n] = m
	}
	return map[string]any{
		"hosts":              hosts,
		"groups":             groups,
		"defaults":           element(inv.Defaults.BaseAttributes, nil, inv.Defaults.Data),
		"connection_options": options,
	}
}

// compact drops nil values recursively, for formats without a null.
func compact(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			continue
		case map[string]any:
			result[k] = compact(t)
		default:
			result[k] = v
		}
	}
	return result
}
