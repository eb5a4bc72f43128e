package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"primamateria.systems/tabula/internal/source"
	"primamateria.systems/tabula/internal/source/age"
	filesource "primamateria.systems/tabula/internal/source/file"
	"primamateria.systems/tabula/internal/source/sops"
	"primamateria.systems/tabula/pkg/csvinventory"
)

const envPrefix = "TABULA"

type Config struct {
	Debug      bool
	UseStdout  bool
	Format     string
	Inventory  csvinventory.Config
	Source     source.SourceConfig
	FileConfig *filesource.Config
	AgeConfig  *age.Config
	SopsConfig *sops.Config
}

// LoadConfigs layers the TOML config file, TABULA_ environment variables and
// cli flags, later layers winning. A double underscore in a variable name
// separates sections, so TABULA_AGE__KEYFILE sets age.keyfile.
func LoadConfigs(_ context.Context, configFile string, cliflags map[string]any) (*koanf.Koanf, error) {
	k := koanf.New(".")
	fileConf := koanf.New(".")
	envConf := koanf.New(".")
	cliConf := koanf.New(".")
	if configFile != "" {
		err := fileConf.Load(file.Provider(configFile), toml.Parser())
		if err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}
	err := envConf.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, envPrefix+"_")), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("error loading config from env: %w", err)
	}
	err = cliConf.Load(confmap.Provider(cliflags, "."), nil)
	if err != nil {
		return nil, err
	}
	for _, layer := range []*koanf.Koanf{fileConf, envConf, cliConf} {
		if err := k.Merge(layer); err != nil {
			return nil, fmt.Errorf("error building config: %w", err)
		}
	}
	return k, nil
}

func NewConfig(k *koanf.Koanf) (*Config, error) {
	var c Config
	var err error
	c.Debug = k.Bool("debug")
	c.UseStdout = k.Bool("stdout")
	c.Format = k.String("format")
	if c.Format == "" {
		c.Format = "text"
	}
	c.Inventory = csvinventory.Config{
		Dir:                   k.String("dir"),
		HostsFile:             k.String("hosts"),
		GroupsFile:            k.String("groups"),
		DefaultsFile:          k.String("defaults"),
		ConnectionOptionsFile: k.String("connection_options"),
	}
	d := csvinventory.DefaultConfig()
	if c.Inventory.Dir == "" {
		c.Inventory.Dir = d.Dir
	}
	if c.Inventory.HostsFile == "" {
		c.Inventory.HostsFile = d.HostsFile
	}
	if c.Inventory.GroupsFile == "" {
		c.Inventory.GroupsFile = d.GroupsFile
	}
	if c.Inventory.DefaultsFile == "" {
		c.Inventory.DefaultsFile = d.DefaultsFile
	}
	if c.Inventory.ConnectionOptionsFile == "" {
		c.Inventory.ConnectionOptionsFile = d.ConnectionOptionsFile
	}
	c.Source.Kind = k.String("encryption")
	if c.Source.Kind == "" {
		c.Source.Kind = source.KindPlain
	}
	c.FileConfig, err = filesource.NewConfig(k)
	if err != nil {
		return nil, err
	}
	if k.Exists("age") || c.Source.Kind == source.KindAge {
		c.AgeConfig, err = age.NewConfig(k)
		if err != nil {
			return nil, err
		}
	}
	if k.Exists("sops") || c.Source.Kind == source.KindSops {
		c.SopsConfig, err = sops.NewConfig(k)
		if err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.Inventory.Dir == "" {
		return errors.New("need inventory directory")
	}
	if c.Inventory.HostsFile == "" {
		return errors.New("need hosts table")
	}
	if err := c.Source.Validate(); err != nil {
		return err
	}
	switch c.Source.Kind {
	case source.KindAge:
		if c.AgeConfig == nil {
			return errors.New("age encryption needs an age section")
		}
		return c.AgeConfig.Validate()
	case source.KindSops:
		if c.SopsConfig == nil {
			return errors.New("sops encryption needs a sops section")
		}
		return c.SopsConfig.Validate()
	}
	return nil
}

// Opener returns the table opener for the configured encryption.
func (c *Config) Opener() (source.Opener, error) {
	switch c.Source.Kind {
	case source.KindAge:
		return age.NewAgeSource(*c.AgeConfig)
	case source.KindSops:
		return sops.NewSopsSource(*c.SopsConfig)
	case source.KindPlain, "":
		return filesource.NewFileSource(c.FileConfig), nil
	}
	return nil, fmt.Errorf("unknown table encryption %q", c.Source.Kind)
}

func (c *Config) String() string {
	var result string
	result += fmt.Sprintf("Debug mode: %v\n", c.Debug)
	result += fmt.Sprintf("STDOUT: %v\n", c.UseStdout)
	result += fmt.Sprintf("Output format: %v\n", c.Format)
	result += fmt.Sprintf("Inventory dir: %v\n", c.Inventory.Dir)
	result += fmt.Sprintf("Hosts table: %v\n", c.Inventory.HostsFile)
	result += fmt.Sprintf("Groups table: %v\n", c.Inventory.GroupsFile)
	result += fmt.Sprintf("Defaults table: %v\n", c.Inventory.DefaultsFile)
	result += fmt.Sprintf("Connection options table: %v\n", c.Inventory.ConnectionOptionsFile)
	result += c.Source.String()
	if c.AgeConfig != nil {
		result += c.AgeConfig.String()
	}
	if c.SopsConfig != nil {
		result += c.SopsConfig.String()
	}
	return result
}
