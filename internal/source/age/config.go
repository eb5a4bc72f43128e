package age

import (
	"fmt"

	"github.com/knadh/koanf/v2"
)

type Config struct {
	IdentPath  string   `toml:"keyfile"`
	Recipients []string `toml:"recipients"`
}

func (c Config) Validate() error {
	if c.IdentPath == "" {
		return fmt.Errorf("empty identities location for age")
	}
	return nil
}

func (c Config) SourceType() string { return "age" }

func NewConfig(k *koanf.Koanf) (*Config, error) {
	var c Config
	c.IdentPath = k.String("age.keyfile")
	if c.IdentPath == "" {
		c.IdentPath = "/etc/tabula/key.txt"
	}
	c.Recipients = k.Strings("age.recipients")
	return &c, nil
}

func (c *Config) Merge(other *Config) {
	if other.IdentPath != "" {
		c.IdentPath = other.IdentPath
	}
	if len(other.Recipients) > 0 {
		c.Recipients = append(c.Recipients, other.Recipients...)
	}
}

func (c Config) String() string {
	return fmt.Sprintf("Keyfile Path: %v\nRecipients: %v\n", c.IdentPath, c.Recipients)
}
