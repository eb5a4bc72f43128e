package loader

import (
	"context"
	"errors"
	"fmt"

	"primamateria.systems/tabula/internal/values"
	"primamateria.systems/tabula/pkg/inventory"
)

var (
	ErrNoHostsDefined = errors.New("no hosts defined")
	ErrMalformedHost  = errors.New("host row has no name")
	ErrDanglingGroup  = errors.New("reference to unknown group")
)

// Tables holds the normalized data rows of the four inventory tables.
type Tables struct {
	Hosts             []values.Row
	Groups            []values.Row
	Defaults          []values.Row
	ConnectionOptions []values.Row
}

// Build is the state passed between load stages.
type Build struct {
	Tables Tables

	Defaults          *inventory.Defaults
	ConnectionOptions inventory.ConnectionOptionsMap
	Groups            *inventory.Groups
	Hosts             *inventory.Hosts

	groupRefs map[string][]string
	hostRefs  map[string][]string
}

type InventoryLoadStage interface {
	Process(ctx context.Context, b *Build) error
}

type InventoryLoadPipeline struct {
	stages []InventoryLoadStage
}

func (p *InventoryLoadPipeline) AddStage(stage InventoryLoadStage) error {
	p.stages = append(p.stages, stage)
	return nil
}

// NewInventoryPipeline builds defaults and connection options first since
// every group and host shares them, then groups, then hosts, and finally
// resolves group references.
func NewInventoryPipeline() *InventoryLoadPipeline {
	return &InventoryLoadPipeline{
		stages: []InventoryLoadStage{
			&DefaultsStage{},
			&ConnectionOptionsStage{},
			&GroupsStage{},
			&HostsStage{},
			&ResolveStage{},
		},
	}
}

func (p *InventoryLoadPipeline) Load(ctx context.Context, tables Tables) (*inventory.Inventory, error) {
	b := &Build{Tables: tables}
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := stage.Process(ctx, b); err != nil {
			return nil, err
		}
	}
	inv := inventory.NewInventory(b.Hosts, b.Groups, b.Defaults, b.ConnectionOptions)
	if err := Validate(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Validate checks that every group referenced by a host or group is part of
// the inventory.
func Validate(inv *inventory.Inventory) error {
	for _, g := range inv.Groups.List() {
		for _, n := range g.Groups.Names() {
			if _, ok := inv.Groups.Get(n); !ok {
				return fmt.Errorf("group %v: %w %v", g.Name, ErrDanglingGroup, n)
			}
		}
	}
	for _, h := range inv.Hosts.List() {
		for _, n := range h.Groups.Names() {
			if _, ok := inv.Groups.Get(n); !ok {
				return fmt.Errorf("host %v: %w %v", h.Name, ErrDanglingGroup, n)
			}
		}
	}
	return nil
}
