package loader

import (
	"context"
)

type DefaultsStage struct{}

func (s *DefaultsStage) Process(_ context.Context, b *Build) error {
	b.Defaults = BuildDefaults(b.Tables.Defaults)
	return nil
}

type ConnectionOptionsStage struct{}

func (s *ConnectionOptionsStage) Process(_ context.Context, b *Build) error {
	b.ConnectionOptions = BuildConnectionOptions(b.Tables.ConnectionOptions)
	return nil
}

type GroupsStage struct{}

func (s *GroupsStage) Process(_ context.Context, b *Build) error {
	b.Groups, b.groupRefs = BuildGroups(b.Tables.Groups, b.Defaults, b.ConnectionOptions)
	return nil
}

type HostsStage struct{}

func (s *HostsStage) Process(_ context.Context, b *Build) error {
	hosts, refs, err := BuildHosts(b.Tables.Hosts, b.Defaults, b.ConnectionOptions)
	if err != nil {
		return err
	}
	b.Hosts, b.hostRefs = hosts, refs
	return nil
}

type ResolveStage struct{}

func (s *ResolveStage) Process(_ context.Context, b *Build) error {
	Resolve(b.Groups, b.Hosts, b.groupRefs, b.hostRefs)
	return nil
}
