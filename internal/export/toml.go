package export

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"primamateria.systems/tabula/pkg/inventory"
)

// TOMLExporter leaves absent values out since TOML has no null.
type TOMLExporter struct{}

func NewTOMLExporter() *TOMLExporter {
	return &TOMLExporter{}
}

func (e *TOMLExporter) Format() string {
	return "toml"
}

func (e *TOMLExporter) Export(inv *inventory.Inventory, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(compact(document(inv))); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}
	return nil
}
