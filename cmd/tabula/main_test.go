package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"primamateria.systems/tabula/internal/store/sqlite"
)

func testInventoryDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	tables := map[string]string{
		"hosts.csv":              "name,hostname,groups,site\nr1,10.0.0.1,core edge,north\nr2,10.0.0.2,core,south\n",
		"groups.csv":             "name,platform\ncore,ios\n",
		"defaults.csv":           "username,region\nadmin,us\n",
		"connection_options.csv": "name,port\nnetconf,830\n",
	}
	for name, content := range tables {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newCommand(&out).Run(context.Background(), append([]string{"tabula"}, args...))
	return out.String(), err
}

func Test_LoadCommand(t *testing.T) {
	dir := testInventoryDir(t)
	out, err := run(t, "--dir", dir, "load", "--format", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc["hosts"], "r1")
	assert.Contains(t, doc["groups"], "edge")

	out, err = run(t, "--dir", dir, "load")
	require.NoError(t, err)
	assert.Contains(t, out, "Host r2:\n")

	_, err = run(t, "--dir", dir, "load", "--format", "xml")
	assert.Error(t, err)
}

func Test_LoadCommandNoHosts(t *testing.T) {
	_, err := run(t, "--dir", t.TempDir(), "load")
	assert.Error(t, err)
}

func Test_WriteCommand(t *testing.T) {
	dir := testInventoryDir(t)
	dest := filepath.Join(t.TempDir(), "hosts.csv")
	all := filepath.Join(t.TempDir(), "all")

	_, err := run(t, "--dir", dir, "write")
	assert.Error(t, err)

	_, err = run(t, "--dir", dir, "write", "--dest", dest, "--all", all)
	require.NoError(t, err)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "name,hostname,username,password,platform,groups,port,site\nr1,10.0.0.1,,,,core edge,,north\nr2,10.0.0.2,,,,core,,south\n", string(content))

	for _, name := range []string{"hosts.csv", "groups.csv", "defaults.csv", "connection_options.csv"} {
		assert.FileExists(t, filepath.Join(all, name))
	}
	out, err := run(t, "--dir", all, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
}

func Test_CheckCommand(t *testing.T) {
	out, err := run(t, "--dir", testInventoryDir(t), "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Diffs:")
	assert.Contains(t, out, "OK")
}

func Test_SnapshotCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "snapshot.db")
	_, err := run(t, "--dir", testInventoryDir(t), "snapshot", "--db", db)
	require.NoError(t, err)

	ctx := context.Background()
	store, err := sqlite.Open(ctx, db)
	require.NoError(t, err)
	defer store.Close()
	hosts, err := store.HostNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, hosts)
	groups, err := store.GroupsOf(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"core", "edge"}, groups)
}

func Test_ConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("dir = \"/srv/inventory\"\nhosts = \"devices.csv\"\n"), 0o644))

	out, err := run(t, "--config", path, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Inventory dir: /srv/inventory\n")
	assert.Contains(t, out, "Hosts table: devices.csv\n")

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "config")
	assert.Error(t, err)
}

func Test_VersionCommand(t *testing.T) {
	Version = "test"
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tabula version test\n", out)
}
