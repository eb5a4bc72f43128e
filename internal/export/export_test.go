package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
	"primamateria.systems/tabula/internal/attributes"
	"primamateria.systems/tabula/internal/values"
	"primamateria.systems/tabula/pkg/inventory"
)

func testInventory() *inventory.Inventory {
	defaults := inventory.NewDefaults()
	defaults.Username = values.String("admin")
	defaults.Data.Set("region", values.String("us"))

	options := inventory.ConnectionOptionsMap{
		"netconf": {Name: "netconf", BaseAttributes: inventory.BaseAttributes{Port: values.String("830")}, Extras: attributes.NewData()},
	}

	groups := inventory.NewGroups()
	core := &inventory.Group{Name: "core", Data: attributes.NewData(), Defaults: defaults, ConnectionOptions: options}
	core.Platform = values.String("ios")
	groups.Put(core)
	edge := inventory.NewPlaceholderGroup("edge")
	groups.Put(edge)

	hosts := inventory.NewHosts()
	r1 := &inventory.Host{Name: "r1", Data: attributes.NewData(), Defaults: defaults, ConnectionOptions: options}
	r1.Hostname = values.String("10.0.0.1")
	r1.Port = values.String("22")
	r1.Groups = inventory.ParentGroups{core.Clone(), edge}
	r1.Data.Set("site", values.String("north"))
	r1.Data.Set("managed", values.Bool(true))
	r1.Data.Set("rack", values.Absent())
	hosts.Put(r1)

	return inventory.NewInventory(hosts, groups, defaults, options)
}

func Test_ForFormat(t *testing.T) {
	for _, f := range Formats() {
		e, err := ForFormat(f)
		require.NoError(t, err)
		assert.Equal(t, f, e.Format())
	}
	_, err := ForFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, []string{"debug", "ini", "json", "text", "toml", "yaml"}, Formats())
}

func Test_JSONExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONExporter().Export(testInventory(), &buf))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	r1 := doc["hosts"].(map[string]any)["r1"].(map[string]any)
	assert.Equal(t, "10.0.0.1", r1["hostname"])
	assert.Equal(t, float64(22), r1["port"])
	assert.Equal(t, []any{"core", "edge"}, r1["groups"])
	assert.Equal(t, map[string]any{"site": "north", "managed": true, "rack": nil}, r1["data"])

	defaults := doc["defaults"].(map[string]any)
	assert.Equal(t, "admin", defaults["username"])
	assert.NotContains(t, defaults, "groups")
	assert.Contains(t, doc["groups"], "edge")
	assert.Contains(t, doc["connection_options"], "netconf")
}

func Test_YAMLExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLExporter().Export(testInventory(), &buf))

	var doc struct {
		Hosts map[string]struct {
			Hostname string         `yaml:"hostname"`
			Port     int            `yaml:"port"`
			Groups   []string       `yaml:"groups"`
			Data     map[string]any `yaml:"data"`
		} `yaml:"hosts"`
		Defaults struct {
			Username string         `yaml:"username"`
			Data     map[string]any `yaml:"data"`
		} `yaml:"defaults"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 22, doc.Hosts["r1"].Port)
	assert.Equal(t, []string{"core", "edge"}, doc.Hosts["r1"].Groups)
	assert.Equal(t, true, doc.Hosts["r1"].Data["managed"])
	assert.Equal(t, "admin", doc.Defaults.Username)
	assert.Equal(t, map[string]any{"region": "us"}, doc.Defaults.Data)
}

func Test_TOMLExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTOMLExporter().Export(testInventory(), &buf))

	var doc map[string]any
	_, err := toml.Decode(buf.String(), &doc)
	require.NoError(t, err)
	r1 := doc["hosts"].(map[string]any)["r1"].(map[string]any)
	assert.Equal(t, int64(22), r1["port"])
	data := r1["data"].(map[string]any)
	assert.Equal(t, "north", data["site"])
	assert.NotContains(t, data, "rack")
}

func Test_INIExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewINIExporter().Export(testInventory(), &buf))

	cfg, err := ini.Load(buf.Bytes())
	require.NoError(t, err)
	host := cfg.Section("hosts.r1")
	assert.Equal(t, "10.0.0.1", host.Key("hostname").String())
	assert.Equal(t, "core edge", host.Key("groups").String())
	assert.Equal(t, "True", host.Key("managed").String())
	assert.False(t, host.HasKey("rack"))
	assert.Equal(t, "admin", cfg.Section("defaults").Key("username").String())
	assert.Equal(t, "830", cfg.Section("connection_options.netconf").Key("port").String())
	assert.Equal(t, "ios", cfg.Section("groups.core").Key("platform").String())
}

func Test_DebugExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDebugExporter().Export(testInventory(), &buf))
	assert.Contains(t, buf.String(), `"10.0.0.1"`)
	assert.NotContains(t, buf.String(), "0xc")
}

func Test_TextExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextExporter().Export(testInventory(), &buf))
	assert.Equal(t, `Defaults:
  username: admin
  region: us
Connection options netconf:
  port: 830
Group core:
  platform: ios
Group edge (undeclared)
Host r1:
  groups: core edge
  hostname: 10.0.0.1
  port: 22
  site: north
  managed: true
  rack: <absent>
`, buf.String())
}
