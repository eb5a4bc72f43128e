package loader

import (
	"github.com/charmbracelet/log"
	"primamateria.systems/tabula/pkg/inventory"
)

// Resolve links group references once every declared group exists. Groups
// point at their parents directly, hosts get a copy of each declared group.
// A name that was never declared becomes a placeholder group, added to groups
// the first time it is seen.
func Resolve(groups *inventory.Groups, hosts *inventory.Hosts, groupRefs, hostRefs map[string][]string) {
	lookup := func(name string) (*inventory.Group, bool) {
		if g, ok := groups.Get(name); ok {
			return g, true
		}
		g := inventory.NewPlaceholderGroup(name)
		groups.Put(g)
		log.Debugf("synthesized placeholder group %v", name)
		return g, false
	}

	for _, g := range groups.List() {
		if g.Placeholder() {
			continue
		}
		for _, n := range groupRefs[g.Name] {
			if n == g.Name {
				log.Warn("ignoring group listed as its own parent", "group", n)
				continue
			}
			parent, _ := lookup(n)
			g.Groups = append(g.Groups, parent)
		}
	}

	for _, h := range hosts.List() {
		for _, n := range hostRefs[h.Name] {
			g, declared := lookup(n)
			if declared && !g.Placeholder() {
				g = g.Clone()
			}
			h.Groups = append(h.Groups, g)
		}
	}
}
