package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"primamateria.systems/tabula/internal/attributes"
	"primamateria.systems/tabula/internal/values"
	"primamateria.systems/tabula/pkg/inventory"

	_ "modernc.org/sqlite"
)

const (
	OwnerHost              = "host"
	OwnerGroup             = "group"
	OwnerDefaults          = "defaults"
	OwnerConnectionOptions = "connection_options"
)

// Store keeps a snapshot of the last saved inventory.
type Store struct {
	db *sql.DB
}

func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS hosts (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS "groups" (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		placeholder INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS memberships (
		member_kind TEXT NOT NULL,
		member TEXT NOT NULL,
		group_name TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (member_kind, member, group_name)
	);

	CREATE TABLE IF NOT EXISTS attributes (
		owner_kind TEXT NOT NULL,
		owner TEXT NOT NULL,
		key TEXT NOT NULL,
		base INTEGER NOT NULL,
		kind TEXT NOT NULL,
		value TEXT,
		position INTEGER NOT NULL,
		PRIMARY KEY (owner_kind, owner, key)
	);

	CREATE INDEX IF NOT EXISTS idx_memberships_group ON memberships(group_name);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

type snapshot struct {
	membership *sql.Stmt
	attribute  *sql.Stmt
}

func (sn *snapshot) members(ctx context.Context, kind, member string, groups inventory.ParentGroups) error {
	for i, g := range groups {
		if _, err := sn.membership.ExecContext(ctx, kind, member, g.Name, i); err != nil {
			return fmt.Errorf("failed to insert membership %v/%v: %w", member, g.Name, err)
		}
	}
	return nil
}

func (sn *snapshot) attributes(ctx context.Context, kind, owner string, base inventory.BaseAttributes, data *attributes.Data) error {
	position := 0
	insert := func(key string, v values.Value, isBase bool) error {
		var value sql.NullString
		if !v.IsAbsent() {
			value = sql.NullString{String: v.Raw(), Valid: true}
		}
		if _, err := sn.attribute.ExecContext(ctx, kind, owner, key, isBase, v.Kind().String(), value, position); err != nil {
			return fmt.Errorf("failed to insert attribute %v of %v %v: %w", key, kind, owner, err)
		}
		position++
		return nil
	}
	for _, n := range attributes.BaseAttributes.Names() {
		v, _ := base.Get(n)
		if v.IsAbsent() {
			continue
		}
		if err := insert(n, v, true); err != nil {
			return err
		}
	}
	for _, k := range data.Keys() {
		v, _ := data.Get(k)
		if err := insert(k, v, false); err != nil {
			return err
		}
	}
	return nil
}

// Save replaces the stored snapshot with inv in a single transaction.
func (s *Store) Save(ctx context.Context, inv *inventory.Inventory) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"memberships", "attributes", "groups", "hosts"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %q", table)); err != nil {
			return fmt.Errorf("failed to clear %v: %w", table, err)
		}
	}

	membership, err := tx.PrepareContext(ctx, `INSERT INTO memberships (member_kind, member, group_name, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer membership.Close()
	attribute, err := tx.PrepareContext(ctx, `INSERT INTO attributes (owner_kind, owner, key, base, kind, value, position) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer attribute.Close()
	sn := &snapshot{membership: membership, attribute: attribute}

	if err := sn.attributes(ctx, OwnerDefaults, "", inv.Defaults.BaseAttributes, inv.Defaults.Data); err != nil {
		return err
	}
	for _, n := range inv.ConnectionOptions.Names() {
		o := inv.ConnectionOptions[n]
		if err := sn.attributes(ctx, OwnerConnectionOptions, n, o.BaseAttributes, o.Extras); err != nil {
			return err
		}
	}
	for i, g := range inv.Groups.List() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO "groups" (name, position, placeholder) VALUES (?, ?, ?)`, g.Name, i, g.Placeholder()); err != nil {
			return fmt.Errorf("failed to insert group %v: %w", g.Name, err)
		}
		if err := sn.members(ctx, OwnerGroup, g.Name, g.Groups); err != nil {
			return err
		}
		if err := sn.attributes(ctx, OwnerGroup, g.Name, g.BaseAttributes, g.Data); err != nil {
			return err
		}
	}
	for i, h := range inv.Hosts.List() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO hosts (name, position) VALUES (?, ?)`, h.Name, i); err != nil {
			return fmt.Errorf("failed to insert host %v: %w", h.Name, err)
		}
		if err := sn.members(ctx, OwnerHost, h.Name, h.Groups); err != nil {
			return err
		}
		if err := sn.attributes(ctx, OwnerHost, h.Name, h.BaseAttributes, h.Data); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	log.Debug("saved inventory snapshot", "hosts", inv.Hosts.Len(), "groups", inv.Groups.Len())
	return nil
}

func (s *Store) strings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// HostNames lists the stored hosts in declaration order.
func (s *Store) HostNames(ctx context.Context) ([]string, error) {
	return s.strings(ctx, `SELECT name FROM hosts ORDER BY position`)
}

func (s *Store) GroupNames(ctx context.Context) ([]string, error) {
	return s.strings(ctx, `SELECT name FROM "groups" ORDER BY position`)
}

// GroupsOf lists the groups a host belongs to, in the order they were
// declared.
func (s *Store) GroupsOf(ctx context.Context, host string) ([]string, error) {
	return s.strings(ctx, `SELECT group_name FROM memberships WHERE member_kind = ? AND member = ? ORDER BY position`, OwnerHost, host)
}

// MembersOf lists the hosts that belong to group.
func (s *Store) MembersOf(ctx context.Context, group string) ([]string, error) {
	return s.strings(ctx, `
		SELECT m.member FROM memberships m
		JOIN hosts h ON h.name = m.member
		WHERE m.member_kind = ? AND m.group_name = ?
		ORDER BY h.position`, OwnerHost, group)
}

// Attribute is one stored attribute of an inventory element.
type Attribute struct {
	Key   string
	Base  bool
	Value values.Value
}

func (s *Store) Attributes(ctx context.Context, ownerKind, owner string) ([]Attribute, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, base, kind, value FROM attributes
		WHERE owner_kind = ? AND owner = ?
		ORDER BY position`, ownerKind, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query attributes: %w", err)
	}
	defer rows.Close()

	var result []Attribute
	for rows.Next() {
		var (
			a     Attribute
			kind  string
			value sql.NullString
		)
		if err := rows.Scan(&a.Key, &a.Base, &kind, &value); err != nil {
			return nil, fmt.Errorf("failed to scan attribute: %w", err)
		}
		if value.Valid {
			a.Value = values.Normalize(value.String)
			if kind == values.KindString.String() {
				a.Value = values.String(value.String)
			}
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
