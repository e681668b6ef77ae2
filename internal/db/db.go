// internal/db/db.go
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Open connects to a SQL backend ("postgres" or "sqlite") and makes sure the
// clientes table exists.
func Open(driver, dsn string) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// one writer at a time; also keeps the create transaction serialized
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
			conn.Close()
			return nil, err
		}
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	if err := Migrate(conn, driver); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	logrus.WithField("driver", driver).Info("✅ Connected to database")
	return conn, nil
}

// Migrate creates the clientes table. Each row keeps the full document as JSON
// text; position preserves insertion order.
func Migrate(conn *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case "postgres":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS clientes (
				position BIGSERIAL PRIMARY KEY,
				id       BIGINT NOT NULL,
				doc      TEXT   NOT NULL
			);`,
			`CREATE INDEX IF NOT EXISTS idx_clientes_id ON clientes(id);`,
		}
	case "sqlite":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS clientes (
				position INTEGER PRIMARY KEY AUTOINCREMENT,
				id       INTEGER NOT NULL,
				doc      TEXT    NOT NULL
			);`,
			`CREATE INDEX IF NOT EXISTS idx_clientes_id ON clientes(id);`,
		}
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}

	for _, s := range stmts {
		if _, err := conn.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
