package repository

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	appErrors "github.com/unclebandit/clientes-service/internal/errors"
	"github.com/unclebandit/clientes-service/internal/model"
)

// SQLCustomerRepository stores one row per cliente (id + JSON document) in
// PostgreSQL or SQLite. Create and Delete run in a transaction.
type SQLCustomerRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLCustomerRepository(conn *sql.DB, driver string) *SQLCustomerRepository {
	return &SQLCustomerRepository{DB: conn, Driver: driver}
}

func (r *SQLCustomerRepository) ph(n int) string {
	if r.Driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func decodeDoc(doc string) (model.Customer, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(doc)))
	dec.UseNumber()

	var c model.Customer
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListAll returns all clientes in insertion order
func (r *SQLCustomerRepository) ListAll(ctx context.Context) (model.Collection, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT doc FROM clientes ORDER BY position`)
	if err != nil {
		return nil, appErrors.NewIOError("load", err)
	}
	defer rows.Close()

	clientes := model.Collection{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, appErrors.NewIOError("load", err)
		}
		c, err := decodeDoc(doc)
		if err != nil {
			return nil, appErrors.NewParseError("load", err)
		}
		clientes = append(clientes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewIOError("load", err)
	}
	return clientes, nil
}

// Create assigns max(id)+1 inside a transaction and inserts the document
func (r *SQLCustomerRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, appErrors.NewIOError("save", err)
	}
	defer tx.Rollback()

	if r.Driver == "postgres" {
		if _, err := tx.ExecContext(ctx, `LOCK TABLE clientes IN EXCLUSIVE MODE`); err != nil {
			return nil, appErrors.NewIOError("save", err)
		}
	}

	var maxID int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM clientes`).Scan(&maxID); err != nil {
		return nil, appErrors.NewIOError("save", err)
	}
	if maxID >= math.MaxInt {
		return nil, model.ErrIDSpaceExhausted
	}

	created := c.WithID(int(maxID) + 1)
	doc, err := json.Marshal(created)
	if err != nil {
		return nil, appErrors.NewIOError("save", err)
	}

	query := fmt.Sprintf(`INSERT INTO clientes (id, doc) VALUES (%s, %s)`, r.ph(1), r.ph(2))
	if _, err := tx.ExecContext(ctx, query, maxID+1, string(doc)); err != nil {
		return nil, appErrors.NewIOError("save", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, appErrors.NewIOError("save", err)
	}
	return created, nil
}

// selectForDeleteQuery locks the row on Postgres so a second delete of the
// same id waits and then finds nothing. SQLite runs on a single connection
// and has no FOR UPDATE.
func (r *SQLCustomerRepository) selectForDeleteQuery() string {
	query := fmt.Sprintf(`SELECT position, doc FROM clientes WHERE id = %s ORDER BY position LIMIT 1`, r.ph(1))
	if r.Driver == "postgres" {
		query += ` FOR UPDATE`
	}
	return query
}

// Delete removes the earliest row carrying id
func (r *SQLCustomerRepository) Delete(ctx context.Context, id int) (model.Customer, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, appErrors.NewIOError("save", err)
	}
	defer tx.Rollback()

	var (
		position int64
		doc      string
	)
	if err := tx.QueryRowContext(ctx, r.selectForDeleteQuery(), id).Scan(&position, &doc); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewNotFound(id)
		}
		return nil, appErrors.NewIOError("load", err)
	}

	removed, err := decodeDoc(doc)
	if err != nil {
		return nil, appErrors.NewParseError("load", err)
	}

	res, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM clientes WHERE position = %s`, r.ph(1)), position)
	if err != nil {
		return nil, appErrors.NewIOError("save", err)
	}
	// a concurrent delete of the same row got there first
	if n, err := res.RowsAffected(); err != nil {
		return nil, appErrors.NewIOError("save", err)
	} else if n == 0 {
		return nil, appErrors.NewNotFound(id)
	}

	if err := tx.Commit(); err != nil {
		return nil, appErrors.NewIOError("save", err)
	}
	return removed, nil
}

var _ CustomerRepositoryInterface = (*SQLCustomerRepository)(nil)
