package loader

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/emirpasic/gods/sets/linkedhashset"
	"primamateria.systems/tabula/internal/attributes"
	"primamateria.systems/tabula/internal/values"
	"primamateria.systems/tabula/pkg/inventory"
)

// ParseGroupNames splits a space separated group list. Order is kept and
// repeated names are dropped.
func ParseGroupNames(v values.Value) []string {
	set := linkedhashset.New()
	for _, n := range strings.Fields(v.Raw()) {
		set.Add(n)
	}
	result := make([]string, 0, set.Size())
	for _, n := range set.Values() {
		result = append(result, n.(string))
	}
	return result
}

func nameOf(row values.Row) (string, bool) {
	v, ok := row.Get(attributes.FieldName)
	if !ok || v.IsAbsent() {
		return "", false
	}
	return v.Raw(), true
}

// BuildDefaults uses the first data row only.
func BuildDefaults(rows []values.Row) *inventory.Defaults {
	d := inventory.NewDefaults()
	if len(rows) == 0 {
		return d
	}
	if len(rows) > 1 {
		log.Warn("defaults table has more than one row, using the first", "rows", len(rows))
	}
	rec := attributes.Classify(rows[0], attributes.BaseAttributes)
	d.Apply(rec.Base)
	d.Data = rec.Extra
	return d
}

// BuildConnectionOptions skips rows without a name. When a name repeats, the
// last row wins.
func BuildConnectionOptions(rows []values.Row) inventory.ConnectionOptionsMap {
	result := inventory.ConnectionOptionsMap{}
	for i, row := range rows {
		name, ok := nameOf(row)
		if !ok {
			log.Debugf("skipping connection options row %v without a name", i+1)
			continue
		}
		rec := attributes.Classify(row.Without(attributes.FieldName), attributes.BaseAttributes)
		opts := &inventory.ConnectionOptions{Name: name, Extras: rec.Extra}
		opts.Apply(rec.Base)
		if _, exists := result[name]; exists {
			log.Warn("duplicate connection options, last definition wins", "name", name)
		}
		result[name] = opts
	}
	return result
}

// BuildGroups builds the declared groups and returns, per group, the names of
// its parent groups. Parents are linked later by Resolve.
func BuildGroups(rows []values.Row, defaults *inventory.Defaults, options inventory.ConnectionOptionsMap) (*inventory.Groups, map[string][]string) {
	groups := inventory.NewGroups()
	refs := make(map[string][]string)
	for i, row := range rows {
		name, ok := nameOf(row)
		if !ok {
			log.Warn("skipping group row without a name", "row", i+1)
			continue
		}
		parents, _ := row.Get(attributes.FieldGroups)
		rec := attributes.Classify(row.Without(attributes.FieldName, attributes.FieldGroups), attributes.BaseAttributes)
		g := &inventory.Group{
			Name:              name,
			Data:              rec.Extra,
			Defaults:          defaults,
			ConnectionOptions: options,
		}
		g.Apply(rec.Base)
		if groups.Put(g) {
			log.Warn("duplicate group, last definition wins", "group", name)
		}
		refs[name] = ParseGroupNames(parents)
	}
	return groups, refs
}

// BuildHosts builds every host and returns, per host, the names of the groups
// it belongs to. The hosts table must have at least one data row.
func BuildHosts(rows []values.Row, defaults *inventory.Defaults, options inventory.ConnectionOptionsMap) (*inventory.Hosts, map[string][]string, error) {
	if len(rows) == 0 {
		return nil, nil, ErrNoHostsDefined
	}
	hosts := inventory.NewHosts()
	refs := make(map[string][]string)
	for i, row := range rows {
		rec := attributes.Classify(row, attributes.ExtendedAttributes)
		name, ok := nameOf(rec.Base)
		if !ok {
			return nil, nil, fmt.Errorf("%w: data row %v", ErrMalformedHost, i+1)
		}
		h := &inventory.Host{
			Name:              name,
			Data:              rec.Extra,
			Defaults:          defaults,
			ConnectionOptions: options,
		}
		h.Apply(rec.Base)
		if hosts.Put(h) {
			log.Warn("duplicate host, last definition wins", "host", name)
		}
		groups, _ := rec.Base.Get(attributes.FieldGroups)
		refs[name] = ParseGroupNames(groups)
	}
	return hosts, refs, nil
}
