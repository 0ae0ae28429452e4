// Package export persists a loaded device database into external
// artifacts for inspection.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/satishbabariya/chipdb/database"
	"github.com/satishbabariya/chipdb/internal/debug"
)

// Link edges that are not structural parent-child relations still land
// in the relations table, under synthetic kinds.
const (
	linkEnum = "link.enum"
	linkMode = "link.mode"
)

const schemaSQL = `
	DROP TABLE IF EXISTS entities;
	DROP TABLE IF EXISTS attributes;
	DROP TABLE IF EXISTS relations;
	DROP TABLE IF EXISTS instances;

	CREATE TABLE entities (
		id   INTEGER PRIMARY KEY,
		kind TEXT NOT NULL
	);
	CREATE TABLE attributes (
		entity INTEGER NOT NULL,
		key    TEXT NOT NULL,
		value  TEXT NOT NULL
	);
	CREATE TABLE relations (
		parent INTEGER NOT NULL,
		kind   TEXT NOT NULL,
		child  INTEGER NOT NULL
	);
	CREATE TABLE instances (
		instance INTEGER PRIMARY KEY,
		type     INTEGER NOT NULL
	);
`

// ToSQLite dumps the entire entity graph into a SQLite file at path,
// in one transaction. Tables left by a previous export are replaced.
func ToSQLite(ctx context.Context, db *database.Database, path string) error {
	out, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer out.Close()

	tx, err := out.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to create tables: %w", err)
	}

	rows := 0
	for _, kind := range database.KindTags() {
		for _, id := range db.Entities(kind) {
			n, err := exportEntity(ctx, tx, db, kind, id)
			rows += n
			if err != nil {
				_ = tx.Rollback()
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export: %w", err)
	}

	debug.Info("Graph exported", "path", path, "rows", rows)
	return nil
}

// exportEntity writes one entity with its attributes, relations and
// instance link. It returns the number of rows inserted.
func exportEntity(ctx context.Context, tx *sql.Tx, db *database.Database, kind database.Tag, id database.EntityId) (int, error) {
	rows := 1
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO entities (id, kind) VALUES (?, ?)`,
		id, string(kind)); err != nil {
		return rows, fmt.Errorf("failed to insert entity %d: %w", id, err)
	}

	for _, attr := range entityAttributes(db, id) {
		rows++
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO attributes (entity, key, value) VALUES (?, ?, ?)`,
			id, attr[0], attr[1]); err != nil {
			return rows, fmt.Errorf("failed to insert attribute %q of entity %d: %w", attr[0], id, err)
		}
	}

	for _, childKind := range database.KindTags() {
		for _, child := range db.Children(id, childKind) {
			rows++
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO relations (parent, kind, child) VALUES (?, ?, ?)`,
				id, string(childKind), child); err != nil {
				return rows, fmt.Errorf("failed to insert relation of entity %d: %w", id, err)
			}
		}
	}

	for _, mode := range db.Modes(id) {
		rows++
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO relations (parent, kind, child) VALUES (?, ?, ?)`,
			id, linkMode, mode); err != nil {
			return rows, fmt.Errorf("failed to insert mode link of entity %d: %w", id, err)
		}
	}

	if enum, ok := db.Enum(id); ok {
		rows++
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO relations (parent, kind, child) VALUES (?, ?, ?)`,
			id, linkEnum, enum); err != nil {
			return rows, fmt.Errorf("failed to insert enum link of entity %d: %w", id, err)
		}
	}

	if typ, ok := db.InstanceType(id); ok {
		rows++
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO instances (instance, type) VALUES (?, ?)`,
			id, typ); err != nil {
			return rows, fmt.Errorf("failed to insert instance link of entity %d: %w", id, err)
		}
	}

	return rows, nil
}

// entityAttributes collects the attributes present on an entity as
// key value pairs. Numbers are rendered in decimal, access modes by
// their canonical spelling. The implicit read-write default is omitted.
func entityAttributes(db *database.Database, id database.EntityId) [][2]string {
	var attrs [][2]string

	if name, ok := db.Name(id); ok {
		attrs = append(attrs, [2]string{"name", name})
	}
	if description, ok := db.Description(id); ok {
		attrs = append(attrs, [2]string{"description", description})
	}
	if offset, ok := db.Offset(id); ok {
		attrs = append(attrs, [2]string{"offset", strconv.FormatUint(offset, 10)})
	}
	if size, ok := db.Size(id); ok {
		attrs = append(attrs, [2]string{"size", strconv.FormatUint(size, 10)})
	}
	if access := db.Access(id); access != database.AccessReadWrite {
		attrs = append(attrs, [2]string{"access", access.String()})
	}
	if reset, ok := db.ResetValue(id); ok {
		attrs = append(attrs, [2]string{"reset", strconv.FormatUint(reset, 10)})
	}
	if value, ok := db.Value(id); ok {
		attrs = append(attrs, [2]string{"value", strconv.FormatUint(value, 10)})
	}
	if architecture, ok := db.Architecture(id); ok {
		attrs = append(attrs, [2]string{"architecture", architecture})
	}
	if family, ok := db.Family(id); ok {
		attrs = append(attrs, [2]string{"family", family})
	}
	if series, ok := db.Series(id); ok {
		attrs = append(attrs, [2]string{"series", series})
	}

	return attrs
}
