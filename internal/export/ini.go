package export

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/ini.v1"
	"primamateria.systems/tabula/internal/attributes"
	"primamateria.systems/tabula/pkg/inventory"
)

// INIExporter writes one section per element, named hosts.NAME,
// groups.NAME, defaults and connection_options.NAME. Values are written as
// table text and absent values are left out.
type INIExporter struct{}

func NewINIExporter() *INIExporter {
	return &INIExporter{}
}

func (e *INIExporter) Format() string {
	return "ini"
}

func addSection(cfg *ini.File, name string, b inventory.BaseAttributes, groups inventory.ParentGroups, data *attributes.Data) error {
	sec, err := cfg.NewSection(name)
	if err != nil {
		return err
	}
	for _, n := range attributes.BaseAttributes.Names() {
		v, _ := b.Get(n)
		if v.IsAbsent() {
			continue
		}
		if _, err := sec.NewKey(n, v.Raw()); err != nil {
			return err
		}
	}
	if len(groups) > 0 {
		if _, err := sec.NewKey(attributes.FieldGroups, strings.Join(groups.Names(), " ")); err != nil {
			return err
		}
	}
	for _, k := range data.Keys() {
		v, _ := data.Get(k)
		if v.IsAbsent() {
			continue
		}
		if _, err := sec.NewKey(k, v.Raw()); err != nil {
			return err
		}
	}
	return nil
}

func (e *INIExporter) Export(inv *inventory.Inventory, w io.Writer) error {
	cfg := ini.Empty()
	if err := addSection(cfg, "defaults", inv.Defaults.BaseAttributes, nil, inv.Defaults.Data); err != nil {
		return err
	}
	for _, n := range inv.ConnectionOptions.Names() {
		o := inv.ConnectionOptions[n]
		if err := addSection(cfg, "connection_options."+n, o.BaseAttributes, nil, o.Extras); err != nil {
			return err
		}
	}
	for _, g := range inv.Groups.List() {
		if err := addSection(cfg, "groups."+g.Name, g.BaseAttributes, g.Groups, g.Data); err != nil {
			return err
		}
	}
	for _, h := range inv.Hosts.List() {
		if err := addSection(cfg, "hosts."+h.Name, h.BaseAttributes, h.Groups, h.Data); err != nil {
			return err
		}
	}
	if _, err := cfg.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode INI: %w", err)
	}
	return nil
}
