package csvinventory

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"primamateria.systems/tabula/internal/attributes"
	"primamateria.systems/tabula/internal/tabular"
	"primamateria.systems/tabula/pkg/inventory"
)

// columns returns fixed followed by every data key in first-seen order.
func columns(fixed []string, data ...*attributes.Data) []string {
	set := linkedhashset.New()
	for _, f := range fixed {
		set.Add(f)
	}
	for _, d := range data {
		for _, k := range d.Keys() {
			set.Add(k)
		}
	}
	result := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		result = append(result, v.(string))
	}
	return result
}

func record(name string, base inventory.BaseAttributes, groups inventory.ParentGroups, data *attributes.Data) map[string]string {
	rec := data.Raw()
	for k, v := range base.Raw() {
		rec[k] = v
	}
	if name != "" {
		rec[attributes.FieldName] = name
	}
	if groups != nil {
		rec[attributes.FieldGroups] = strings.Join(groups.Names(), " ")
	}
	return rec
}

// HostsHeader lists the extended attributes and then every extra key used by
// any host, in the order first seen.
func HostsHeader(hosts *inventory.Hosts) []string {
	list := hosts.List()
	data := make([]*attributes.Data, len(list))
	for i, h := range list {
		data[i] = h.Data
	}
	return columns(attributes.ExtendedAttributes.Names(), data...)
}

func hostRecords(hosts *inventory.Hosts) []map[string]string {
	list := hosts.List()
	records := make([]map[string]string, len(list))
	for i, h := range list {
		groups := h.Groups
		if groups == nil {
			groups = inventory.ParentGroups{}
		}
		records[i] = record(h.Name, h.BaseAttributes, groups, h.Data)
	}
	return records
}

func EncodeHosts(w io.Writer, hosts *inventory.Hosts) error {
	return tabular.Encode(w, HostsHeader(hosts), hostRecords(hosts))
}

func declaredGroups(groups *inventory.Groups) []*inventory.Group {
	var result []*inventory.Group
	for _, g := range groups.List() {
		if !g.Placeholder() {
			result = append(result, g)
		}
	}
	return result
}

func groupsTable(groups *inventory.Groups) ([]string, []map[string]string) {
	list := declaredGroups(groups)
	data := make([]*attributes.Data, len(list))
	records := make([]map[string]string, len(list))
	for i, g := range list {
		data[i] = g.Data
		parents := g.Groups
		if parents == nil {
			parents = inventory.ParentGroups{}
		}
		records[i] = record(g.Name, g.BaseAttributes, parents, g.Data)
	}
	fixed := append([]string{attributes.FieldName}, attributes.BaseAttributes.Names()...)
	fixed = append(fixed, attributes.FieldGroups)
	return columns(fixed, data...), records
}

func EncodeGroups(w io.Writer, groups *inventory.Groups) error {
	header, records := groupsTable(groups)
	return tabular.Encode(w, header, records)
}

func defaultsTable(d *inventory.Defaults) ([]string, []map[string]string) {
	header := columns(attributes.BaseAttributes.Names(), d.Data)
	if len(d.Map()) == 0 && d.Data.Len() == 0 {
		return header, nil
	}
	return header, []map[string]string{record("", d.BaseAttributes, nil, d.Data)}
}

func EncodeDefaults(w io.Writer, d *inventory.Defaults) error {
	header, records := defaultsTable(d)
	return tabular.Encode(w, header, records)
}

func optionsTable(options inventory.ConnectionOptionsMap) ([]string, []map[string]string) {
	names := options.Names()
	data := make([]*attributes.Data, len(names))
	records := make([]map[string]string, len(names))
	for i, n := range names {
		o := options[n]
		data[i] = o.Extras
		records[i] = record(n, o.BaseAttributes, nil, o.Extras)
	}
	fixed := append([]string{attributes.FieldName}, attributes.BaseAttributes.Names()...)
	return columns(fixed, data...), records
}

func EncodeConnectionOptions(w io.Writer, options inventory.ConnectionOptionsMap) error {
	header, records := optionsTable(options)
	return tabular.Encode(w, header, records)
}

// Write writes the hosts table of inv to dest. Groups, defaults and
// connection options are not written, see WriteDir.
func (c *CsvInventory) Write(inv *inventory.Inventory, dest string) error {
	return tabular.Write(c.opener, dest, HostsHeader(inv.Hosts), hostRecords(inv.Hosts))
}

func (c *CsvInventory) WriteGroups(inv *inventory.Inventory, dest string) error {
	header, records := groupsTable(inv.Groups)
	return tabular.Write(c.opener, dest, header, records)
}

func (c *CsvInventory) WriteDefaults(inv *inventory.Inventory, dest string) error {
	header, records := defaultsTable(inv.Defaults)
	return tabular.Write(c.opener, dest, header, records)
}

func (c *CsvInventory) WriteConnectionOptions(inv *inventory.Inventory, dest string) error {
	header, records := optionsTable(inv.ConnectionOptions)
	return tabular.Write(c.opener, dest, header, records)
}

// WriteDir writes all four tables into dir using the configured file names.
// Placeholder groups are left out since loading synthesizes them again.
func (c *CsvInventory) WriteDir(inv *inventory.Inventory, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := c.Write(inv, filepath.Join(dir, c.config.HostsFile)); err != nil {
		return err
	}
	if err := c.WriteGroups(inv, filepath.Join(dir, c.config.GroupsFile)); err != nil {
		return err
	}
	if err := c.WriteDefaults(inv, filepath.Join(dir, c.config.DefaultsFile)); err != nil {
		return err
	}
	return c.WriteConnectionOptions(inv, filepath.Join(dir, c.config.ConnectionOptionsFile))
}
