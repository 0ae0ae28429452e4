package e2e

import (
	"context"
	"database/sql"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/chipdb/generator/export"
)

// TestExportSQLite dumps the graph into a SQLite file, reopens it with
// database/sql and checks the rows against the fixture.
func (suite *TestSuite) TestExportSQLite() {
	path := filepath.Join(suite.tempDir, "device.sqlite")
	require.NoError(suite.T(), export.ToSQLite(context.Background(), suite.db, path))

	out, err := sql.Open("sqlite3", path)
	require.NoError(suite.T(), err)
	defer out.Close()

	assert.Equal(suite.T(), 42, suite.countRows(out, `SELECT COUNT(*) FROM entities`))

	kindCounts := map[string]int{
		"type.peripheral":     3,
		"type.register_group": 2,
		"type.register":       10,
		"type.field":          6,
		"type.enum":           2,
		"type.enum_field":     8,
		"type.mode":           2,
		"instance.device":     1,
		"instance.peripheral": 4,
		"instance.interrupt":  4,
	}
	for kind, want := range kindCounts {
		got := suite.countRows(out, `SELECT COUNT(*) FROM entities WHERE kind = ?`, kind)
		assert.Equal(suite.T(), want, got, kind)
	}

	// Every peripheral placement carries its type link.
	assert.Equal(suite.T(), 4, suite.countRows(out, `SELECT COUNT(*) FROM instances`))

	// Two fields reference enums, three mode restrictions exist.
	assert.Equal(suite.T(), 2, suite.countRows(out,
		`SELECT COUNT(*) FROM relations WHERE kind = 'link.enum'`))
	assert.Equal(suite.T(), 3, suite.countRows(out,
		`SELECT COUNT(*) FROM relations WHERE kind = 'link.mode'`))

	// The read-write default is omitted; only IN and RES restrict access.
	assert.Equal(suite.T(), 2, suite.countRows(out,
		`SELECT COUNT(*) FROM attributes WHERE key = 'access' AND value = 'read-only'`))
	assert.Equal(suite.T(), 0, suite.countRows(out,
		`SELECT COUNT(*) FROM attributes WHERE key = 'access' AND value = 'read-write'`))
}

// TestExportedAttributes spot-checks attribute rows through joins: the
// device identity and a normalized register offset.
func (suite *TestSuite) TestExportedAttributes() {
	path := filepath.Join(suite.tempDir, "attributes.sqlite")
	require.NoError(suite.T(), export.ToSQLite(context.Background(), suite.db, path))

	out, err := sql.Open("sqlite3", path)
	require.NoError(suite.T(), err)
	defer out.Close()

	var architecture string
	err = out.QueryRow(`
		SELECT a.value FROM attributes a
		JOIN entities e ON e.id = a.entity
		WHERE e.kind = 'instance.device' AND a.key = 'architecture'`).Scan(&architecture)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "AVR8X", architecture)

	// CTRLA sits at offset 0 after normalization rebased the ADC block.
	var offset string
	err = out.QueryRow(`
		SELECT o.value FROM attributes o
		JOIN entities e ON e.id = o.entity
		JOIN attributes n ON n.entity = e.id AND n.key = 'name' AND n.value = 'CTRLA'
		WHERE e.kind = 'type.register' AND o.key = 'offset'`).Scan(&offset)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "0", offset)

	// The lone declared reset value belongs to DIR.
	var name string
	err = out.QueryRow(`
		SELECT n.value FROM attributes n
		JOIN attributes r ON r.entity = n.entity AND r.key = 'reset'
		WHERE n.key = 'name'`).Scan(&name)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "DIR", name)
}

// countRows runs a COUNT(*) query and returns the result.
func (suite *TestSuite) countRows(out *sql.DB, query string, args ...any) int {
	var n int
	require.NoError(suite.T(), out.QueryRow(query, args...).Scan(&n))
	return n
}
