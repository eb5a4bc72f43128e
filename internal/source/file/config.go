package file

import (
	"os"

	"github.com/knadh/koanf/v2"
)

type Config struct {
	FileMode os.FileMode
}

func NewConfig(k *koanf.Koanf) (*Config, error) {
	c := Config{FileMode: 0o644}
	if k != nil && k.Exists("file.mode") {
		c.FileMode = os.FileMode(k.Int("file.mode"))
	}
	return &c, nil
}
