// Package cache persists aggregated glyph sets per origin between scan runs,
// so repeated scans of the same site can merge earlier discoveries instead of
// starting cold.
package cache

import (
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `
CREATE TABLE IF NOT EXISTS glyphs (
	origin    TEXT    NOT NULL,
	family    TEXT    NOT NULL,
	codepoint INTEGER NOT NULL,
	PRIMARY KEY (origin, family, codepoint)
) WITHOUT ROWID;
`

// Cache is a SQLite-backed glyph store. Not safe for concurrent use, same as
// the scanning session that owns it.
type Cache struct {
	conn *sqlite.Conn
}

// Open creates or opens the cache database at path.
func Open(path string) (*Cache, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("unable to open glyph cache %s: %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare glyph cache schema: %w", err)
	}
	return &Cache{conn: conn}, nil
}

func (c *Cache) Close() error {
	return c.conn.Close()
}

// Load returns all cached per-family codepoints for an origin, in the shape
// glyphs.Sets.Merge consumes.
func (c *Cache) Load(origin string) (map[string][]uint32, error) {
	sets := make(map[string][]uint32)
	err := sqlitex.Execute(c.conn,
		`SELECT family, codepoint FROM glyphs WHERE origin = ? ORDER BY family, codepoint`,
		&sqlitex.ExecOptions{
			Args: []any{origin},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				family := stmt.ColumnText(0)
				sets[family] = append(sets[family], uint32(stmt.ColumnInt64(1)))
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("unable to load cached glyphs for %s: %w", origin, err)
	}
	return sets, nil
}

// Store merges per-family codepoints for an origin into the cache. INSERT OR
// IGNORE keeps it idempotent, mirroring aggregate merge semantics.
func (c *Cache) Store(origin string, sets map[string][]uint32) (err error) {
	defer sqlitex.Save(c.conn)(&err)

	for family, codes := range sets {
		for _, code := range codes {
			err = sqlitex.Execute(c.conn,
				`INSERT OR IGNORE INTO glyphs (origin, family, codepoint) VALUES (?, ?, ?)`,
				&sqlitex.ExecOptions{Args: []any{origin, family, int64(code)}})
			if err != nil {
				return fmt.Errorf("unable to cache glyphs for %s/%s: %w", origin, family, err)
			}
		}
	}
	return nil
}
