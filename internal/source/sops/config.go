package sops

import (
	"fmt"

	"github.com/knadh/koanf/v2"
)

type Config struct {
	Format string `toml:"format"`
}

func (c Config) Validate() error {
	switch c.Format {
	case "binary", "json", "yaml", "ini", "dotenv":
		return nil
	}
	return fmt.Errorf("unsupported sops store format %q", c.Format)
}

func (c Config) SourceType() string { return "sops" }

func NewConfig(k *koanf.Koanf) (*Config, error) {
	var c Config
	c.Format = k.String("sops.format")
	if c.Format == "" {
		c.Format = "binary"
	}
	return &c, nil
}

func (c Config) String() string {
	return fmt.Sprintf("Store format: %v\n", c.Format)
}
