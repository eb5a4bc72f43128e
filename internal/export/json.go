package export

import (
	"encoding/json"
	"fmt"
	"io"

	"primamateria.systems/tabula/pkg/inventory"
)

type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Format() string {
	return "json"
}

func (e *JSONExporter) Export(inv *inventory.Inventory, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(document(inv)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
