package csvinventory

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"primamateria.systems/tabula/internal/loader"
	"primamateria.systems/tabula/internal/source"
	"primamateria.systems/tabula/internal/source/file"
	"primamateria.systems/tabula/internal/tabular"
	"primamateria.systems/tabula/internal/values"
	"primamateria.systems/tabula/pkg/inventory"
)

var (
	ErrNoHostsDefined = loader.ErrNoHostsDefined
	ErrMalformedHost  = loader.ErrMalformedHost
)

type Config struct {
	Dir                   string
	HostsFile             string
	GroupsFile            string
	DefaultsFile          string
	ConnectionOptionsFile string
}

func DefaultConfig() Config {
	return Config{
		Dir:                   "./inventory",
		HostsFile:             "hosts.csv",
		GroupsFile:            "groups.csv",
		DefaultsFile:          "defaults.csv",
		ConnectionOptionsFile: "connection_options.csv",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Dir == "" {
		c.Dir = d.Dir
	}
	if c.HostsFile == "" {
		c.HostsFile = d.HostsFile
	}
	if c.GroupsFile == "" {
		c.GroupsFile = d.GroupsFile
	}
	if c.DefaultsFile == "" {
		c.DefaultsFile = d.DefaultsFile
	}
	if c.ConnectionOptionsFile == "" {
		c.ConnectionOptionsFile = d.ConnectionOptionsFile
	}
	return c
}

// CsvInventory loads an inventory from four tables in one directory and
// writes it back.
type CsvInventory struct {
	config Config
	opener source.Opener
}

type Option func(*CsvInventory)

func WithOpener(o source.Opener) Option {
	return func(c *CsvInventory) {
		c.opener = o
	}
}

func New(c Config, opts ...Option) *CsvInventory {
	inv := &CsvInventory{
		config: c.withDefaults(),
		opener: file.NewFileSource(nil),
	}
	for _, o := range opts {
		o(inv)
	}
	return inv
}

func (c *CsvInventory) Config() Config { return c.config }

func (c *CsvInventory) HostsPath() string {
	return filepath.Join(c.config.Dir, c.config.HostsFile)
}

func (c *CsvInventory) GroupsPath() string {
	return filepath.Join(c.config.Dir, c.config.GroupsFile)
}

func (c *CsvInventory) DefaultsPath() string {
	return filepath.Join(c.config.Dir, c.config.DefaultsFile)
}

func (c *CsvInventory) ConnectionOptionsPath() string {
	return filepath.Join(c.config.Dir, c.config.ConnectionOptionsFile)
}

func (c *CsvInventory) readTable(path string) ([]values.Row, error) {
	raw, err := tabular.Read(c.opener, path)
	if err != nil {
		return nil, err
	}
	return values.NormalizeRows(raw), nil
}

// ReadTables reads and normalizes the four tables.
func (c *CsvInventory) ReadTables() (loader.Tables, error) {
	var t loader.Tables
	var err error
	if t.Defaults, err = c.readTable(c.DefaultsPath()); err != nil {
		return t, err
	}
	if t.ConnectionOptions, err = c.readTable(c.ConnectionOptionsPath()); err != nil {
		return t, err
	}
	if t.Groups, err = c.readTable(c.GroupsPath()); err != nil {
		return t, err
	}
	if t.Hosts, err = c.readTable(c.HostsPath()); err != nil {
		return t, err
	}
	return t, nil
}

// Load builds a new inventory from the tables. No partial inventory is
// returned on error.
func (c *CsvInventory) Load(ctx context.Context) (*inventory.Inventory, error) {
	log.Debug("loading inventory", "dir", c.config.Dir, "source", c.opener.Kind())
	tables, err := c.ReadTables()
	if err != nil {
		return nil, err
	}
	inv, err := loader.NewInventoryPipeline().Load(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("error loading inventory from %v: %w", c.config.Dir, err)
	}
	log.Debug("inventory loaded", "hosts", inv.Hosts.Len(), "groups", inv.Groups.Len(), "connection_options", len(inv.ConnectionOptions))
	return inv, nil
}
