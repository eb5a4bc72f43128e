package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"primamateria.systems/tabula/internal/config"
	"primamateria.systems/tabula/internal/source"
	"primamateria.systems/tabula/pkg/csvinventory"
)

func setupLogger(c *config.Config) {
	if c.UseStdout {
		log.Default().SetOutput(os.Stdout)
	}
	if c.Debug {
		log.Default().SetLevel(log.DebugLevel)
		log.Default().SetReportCaller(true)
	}
}

type session struct {
	config    *config.Config
	opener    source.Opener
	inventory *csvinventory.CsvInventory
}

func setup(ctx context.Context, configFile string, cliflags map[string]any) (*session, error) {
	k, err := config.LoadConfigs(ctx, configFile, cliflags)
	if err != nil {
		return nil, fmt.Errorf("error generating config blob: %w", err)
	}
	c, err := config.NewConfig(k)
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}
	setupLogger(c)

	opener, err := c.Opener()
	if err != nil {
		return nil, fmt.Errorf("error creating table source: %w", err)
	}
	return &session{
		config:    c,
		opener:    opener,
		inventory: csvinventory.New(c.Inventory, csvinventory.WithOpener(opener)),
	}, nil
}
