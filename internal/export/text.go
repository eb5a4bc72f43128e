package export

import (
	"fmt"
	"io"
	"strings"

	"primamateria.systems/tabula/internal/attributes"
	"primamateria.systems/tabula/pkg/inventory"
)

// TextExporter prints a short listing in declaration order.
type TextExporter struct{}

func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

func (e *TextExporter) Format() string {
	return "text"
}

func writeAttributes(b *strings.Builder, base inventory.BaseAttributes, data *attributes.Data) {
	for _, n := range attributes.BaseAttributes.Names() {
		if v, _ := base.Get(n); !v.IsAbsent() {
			fmt.Fprintf(b, "  %v: %v\n", n, v)
		}
	}
	for _, k := range data.Keys() {
		v, _ := data.Get(k)
		fmt.Fprintf(b, "  %v: %v\n", k, v)
	}
}

func (e *TextExporter) Export(inv *inventory.Inventory, w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Defaults:\n")
	writeAttributes(&b, inv.Defaults.BaseAttributes, inv.Defaults.Data)
	for _, n := range inv.ConnectionOptions.Names() {
		o := inv.ConnectionOptions[n]
		fmt.Fprintf(&b, "Connection options %v:\n", n)
		writeAttributes(&b, o.BaseAttributes, o.Extras)
	}
	for _, g := range inv.Groups.List() {
		if g.Placeholder() {
			fmt.Fprintf(&b, "Group %v (undeclared)\n", g.Name)
			continue
		}
		fmt.Fprintf(&b, "Group %v:\n", g.Name)
		if len(g.Groups) > 0 {
			fmt.Fprintf(&b, "  groups: %v\n", strings.Join(g.Groups.Names(), " "))
		}
		writeAttributes(&b, g.BaseAttributes, g.Data)
	}
	for _, h := range inv.Hosts.List() {
		fmt.Fprintf(&b, "Host %v:\n", h.Name)
		if len(h.Groups) > 0 {
			fmt.Fprintf(&b, "  groups: %v\n", strings.Join(h.Groups.Names(), " "))
		}
		writeAttributes(&b, h.BaseAttributes, h.Data)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
