package roundtrip

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"primamateria.systems/tabula/internal/attributes"
	"primamateria.systems/tabula/internal/source/file"
	"primamateria.systems/tabula/internal/values"
	"primamateria.systems/tabula/pkg/csvinventory"
	"primamateria.systems/tabula/pkg/inventory"
)

func check(t *testing.T, hosts string) *Report {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hosts.csv"), []byte(hosts), 0o644))
	o := file.NewFileSource(nil)
	report, err := Check(context.Background(), csvinventory.New(csvinventory.Config{Dir: dir}, csvinventory.WithOpener(o)), o)
	require.NoError(t, err)
	return report
}

func Test_CheckCanonicalTable(t *testing.T) {
	report := check(t, "name,hostname,username,password,platform,groups,port,site\nr1,10.0.0.1,,,,core,,north\n")
	assert.False(t, report.Changed())
	assert.True(t, report.Equivalent())
}

func Test_CheckReorderedTable(t *testing.T) {
	report := check(t, "site,name,groups\nnorth,r1,core core\n")
	assert.True(t, report.Changed())
	assert.True(t, report.Equivalent())
	assert.Equal(t, "name,hostname,username,password,platform,groups,port,site\nr1,,,,,core,,north\n", report.Rewritten)
	assert.NotEmpty(t, report.PrettyDiff())
}

func Test_CheckMissingHosts(t *testing.T) {
	o := file.NewFileSource(nil)
	_, err := Check(context.Background(), csvinventory.New(csvinventory.Config{Dir: t.TempDir()}), o)
	assert.ErrorIs(t, err, csvinventory.ErrNoHostsDefined)
}

func Test_Compare(t *testing.T) {
	build := func(platform string, extra string) *inventory.Inventory {
		hosts := inventory.NewHosts()
		h := &inventory.Host{Name: "r1", Data: attributes.NewData()}
		h.Platform = values.Normalize(platform)
		h.Data.Set("site", values.Normalize(extra))
		hosts.Put(h)
		return inventory.NewInventory(hosts, nil, nil, nil)
	}
	assert.Empty(t, Compare(build("ios", "north"), build("ios", "north")))
	assert.Equal(t, []string{"r1: base attributes differ"}, Compare(build("ios", "north"), build("eos", "north")))
	assert.Equal(t, []string{"r1: data differs"}, Compare(build("ios", "north"), build("ios", "south")))

	empty := inventory.NewInventory(nil, nil, nil, nil)
	assert.Equal(t, []string{"r1: missing"}, Compare(build("ios", ""), empty))
	assert.Equal(t, []string{"r1: unexpected"}, Compare(empty, build("ios", "")))
}
