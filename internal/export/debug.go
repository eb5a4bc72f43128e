package export

import (
	"io"

	"github.com/davecgh/go-spew/spew"
	"primamateria.systems/tabula/pkg/inventory"
)

// DebugExporter dumps the inventory document with go-spew.
type DebugExporter struct {
	config *spew.ConfigState
}

func NewDebugExporter() *DebugExporter {
	return &DebugExporter{config: &spew.ConfigState{
		Indent:                  "  ",
		SortKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}}
}

func (e *DebugExporter) Format() string {
	return "debug"
}

func (e *DebugExporter) Export(inv *inventory.Inventory, w io.Writer) error {
	e.config.Fdump(w, document(inv))
	return nil
}
