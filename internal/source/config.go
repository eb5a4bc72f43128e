package source

import (
	"fmt"
)

const (
	KindPlain = "none"
	KindAge   = "age"
	KindSops  = "sops"
)

type SourceConfig struct {
	Kind string `toml:"encryption" json:"encryption" yaml:"encryption"`
}

func (c SourceConfig) String() string {
	return fmt.Sprintf("Encryption: %v\n", c.Kind)
}

func (c SourceConfig) Validate() error {
	switch c.Kind {
	case KindPlain, KindAge, KindSops:
		return nil
	case "":
		return nil
	}
	return fmt.Errorf("unknown table encryption %q", c.Kind)
}
