package inventory

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Hosts is keyed by host name and iterates in declaration order.
type Hosts struct {
	m *linkedhashmap.Map
}

func NewHosts() *Hosts {
	return &Hosts{m: linkedhashmap.New()}
}

// Put stores h and reports whether a host with the same name was replaced.
// A replaced host keeps its original position.
func (h *Hosts) Put(host *Host) bool {
	_, found := h.m.Get(host.Name)
	h.m.Put(host.Name, host)
	return found
}

func (h *Hosts) Get(name string) (*Host, bool) {
	v, ok := h.m.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Host), true
}

func (h *Hosts) Len() int { return h.m.Size() }

func (h *Hosts) Names() []string {
	result := make([]string, 0, h.m.Size())
	for _, k := range h.m.Keys() {
		result = append(result, k.(string))
	}
	return result
}

func (h *Hosts) List() []*Host {
	result := make([]*Host, 0, h.m.Size())
	for _, v := range h.m.Values() {
		result = append(result, v.(*Host))
	}
	return result
}

// Groups is keyed by group name and iterates in declaration order.
type Groups struct {
	m *linkedhashmap.Map
}

func NewGroups() *Groups {
	return &Groups{m: linkedhashmap.New()}
}

func (g *Groups) Put(group *Group) bool {
	_, found := g.m.Get(group.Name)
	g.m.Put(group.Name, group)
	return found
}

func (g *Groups) Get(name string) (*Group, bool) {
	v, ok := g.m.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Group), true
}

func (g *Groups) Len() int { return g.m.Size() }

func (g *Groups) Names() []string {
	result := make([]string, 0, g.m.Size())
	for _, k := range g.m.Keys() {
		result = append(result, k.(string))
	}
	return result
}

func (g *Groups) List() []*Group {
	result := make([]*Group, 0, g.m.Size())
	for _, v := range g.m.Values() {
		result = append(result, v.(*Group))
	}
	return result
}
