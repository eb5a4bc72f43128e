package roundtrip

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/sergi/go-diff/diffmatchpatch"
	"primamateria.systems/tabula/internal/loader"
	"primamateria.systems/tabula/internal/source"
	"primamateria.systems/tabula/internal/tabular"
	"primamateria.systems/tabula/internal/values"
	"primamateria.systems/tabula/pkg/csvinventory"
	"primamateria.systems/tabula/pkg/inventory"
)

// Report compares a hosts table with the table written back from it.
type Report struct {
	Original  string
	Rewritten string
	Diffs     []diffmatchpatch.Diff
	// Mismatches lists hosts whose reloaded data differs from the original.
	Mismatches []string
}

// Changed reports whether the rewritten text differs at all.
func (r *Report) Changed() bool {
	for _, d := range r.Diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			return true
		}
	}
	return false
}

// Equivalent reports whether both tables load to the same hosts.
func (r *Report) Equivalent() bool {
	return len(r.Mismatches) == 0
}

func (r *Report) PrettyDiff() string {
	return diffmatchpatch.New().DiffPrettyText(r.Diffs)
}

func readAll(o source.Opener, path string) (string, error) {
	f, err := o.Open(path)
	if err != nil {
		return "", &tabular.SourceError{Path: path, Err: err}
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", &tabular.SourceError{Path: path, Err: err}
	}
	return string(data), nil
}

// Check loads the inventory, writes its hosts table to memory and loads the
// inventory again with that table in place of the original.
func Check(ctx context.Context, c *csvinventory.CsvInventory, o source.Opener) (*Report, error) {
	first, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	original, err := readAll(o, c.HostsPath())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := csvinventory.EncodeHosts(&buf, first.Hosts); err != nil {
		return nil, err
	}

	tables, err := c.ReadTables()
	if err != nil {
		return nil, err
	}
	rows, err := tabular.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("error decoding rewritten hosts table: %w", err)
	}
	tables.Hosts = values.NormalizeRows(rows)
	second, err := loader.NewInventoryPipeline().Load(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("error reloading rewritten hosts table: %w", err)
	}

	report := &Report{
		Original:   original,
		Rewritten:  buf.String(),
		Diffs:      diffmatchpatch.New().DiffMain(original, buf.String(), false),
		Mismatches: Compare(first, second),
	}
	log.Debug("round trip checked", "changed", report.Changed(), "mismatches", len(report.Mismatches))
	return report, nil
}

// Compare lists the hosts of a that are missing from b or carry different
// attributes, extras or groups.
func Compare(a, b *inventory.Inventory) []string {
	var result []string
	for _, h := range a.Hosts.List() {
		other, ok := b.Hosts.Get(h.Name)
		if !ok {
			result = append(result, fmt.Sprintf("%v: missing", h.Name))
			continue
		}
		if h.BaseAttributes != other.BaseAttributes {
			result = append(result, fmt.Sprintf("%v: base attributes differ", h.Name))
		}
		if !maps.Equal(h.Data.Raw(), other.Data.Raw()) {
			result = append(result, fmt.Sprintf("%v: data differs", h.Name))
		}
		if !slices.Equal(h.Groups.Names(), other.Groups.Names()) {
			result = append(result, fmt.Sprintf("%v: groups differ", h.Name))
		}
	}
	for _, n := range b.Hosts.Names() {
		if _, ok := a.Hosts.Get(n); !ok {
			result = append(result, fmt.Sprintf("%v: unexpected", n))
		}
	}
	return result
}
