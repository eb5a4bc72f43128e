package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
	"primamateria.systems/tabula/pkg/inventory"
)

type YAMLExporter struct{}

func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

func (e *YAMLExporter) Format() string {
	return "yaml"
}

func (e *YAMLExporter) Export(inv *inventory.Inventory, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(document(inv)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}
