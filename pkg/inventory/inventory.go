package inventory

import (
	"slices"

	"primamateria.systems/tabula/internal/attributes"
)

type Defaults struct {
	BaseAttributes
	Data *attributes.Data
}

func NewDefaults() *Defaults {
	return &Defaults{Data: attributes.NewData()}
}

type ConnectionOptions struct {
	Name string
	BaseAttributes
	Extras *attributes.Data
}

// ConnectionOptionsMap holds the named connection option sets. A single map
// is shared by every group and host of an inventory.
type ConnectionOptionsMap map[string]*ConnectionOptions

func (m ConnectionOptionsMap) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// ParentGroups is an ordered list of distinct group references.
type ParentGroups []*Group

func (p ParentGroups) Names() []string {
	names := make([]string, len(p))
	for i, g := range p {
		names[i] = g.Name
	}
	return names
}

func (p ParentGroups) Contains(name string) bool {
	return slices.ContainsFunc(p, func(g *Group) bool { return g.Name == name })
}

type Group struct {
	Name string
	BaseAttributes
	Data              *attributes.Data
	Groups            ParentGroups
	Defaults          *Defaults
	ConnectionOptions ConnectionOptionsMap

	placeholder bool
}

// NewPlaceholderGroup returns a group that is known only by name because it
// was referenced without being declared.
func NewPlaceholderGroup(name string) *Group {
	return &Group{Name: name, Data: attributes.NewData(), placeholder: true}
}

func (g *Group) Placeholder() bool { return g.placeholder }

// Clone copies the group definition. Defaults and connection options stay
// shared, parent groups are copied by reference.
func (g *Group) Clone() *Group {
	c := *g
	c.Data = g.Data.Clone()
	c.Groups = slices.Clone(g.Groups)
	return &c
}

type Host struct {
	Name string
	BaseAttributes
	Data              *attributes.Data
	Groups            ParentGroups
	Defaults          *Defaults
	ConnectionOptions ConnectionOptionsMap
}

func (h *Host) HasGroup(name string) bool {
	return h.Groups.Contains(name)
}

// Inventory is the assembled configuration graph handed to the automation
// engine.
type Inventory struct {
	Hosts             *Hosts
	Groups            *Groups
	Defaults          *Defaults
	ConnectionOptions ConnectionOptionsMap
}

func NewInventory(hosts *Hosts, groups *Groups, defaults *Defaults, options ConnectionOptionsMap) *Inventory {
	if hosts == nil {
		hosts = NewHosts()
	}
	if groups == nil {
		groups = NewGroups()
	}
	if defaults == nil {
		defaults = NewDefaults()
	}
	if options == nil {
		options = ConnectionOptionsMap{}
	}
	return &Inventory{
		Hosts:             hosts,
		Groups:            groups,
		Defaults:          defaults,
		ConnectionOptions: options,
	}
}
