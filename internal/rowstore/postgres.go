package rowstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store on a jsonb document table per logical table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a connection pool as a Store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the document tables when they do not exist yet.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	for table := range allowedTables {
		ddl := fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (
				id text PRIMARY KEY,
				data jsonb NOT NULL,
				updated_at timestamptz NOT NULL DEFAULT now()
			)`, table)
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return &BackendError{Op: "ensure schema", Table: table, Err: err}
		}
	}
	return nil
}

func (s *Postgres) FetchAll(ctx context.Context, table string) ([]json.RawMessage, error) {
	if err := checkTable("fetch", table); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT data FROM %s ORDER BY updated_at DESC", table)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, &BackendError{Op: "fetch", Table: table, Err: err}
	}
	defer rows.Close()

	records := make([]json.RawMessage, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, &BackendError{Op: "fetch", Table: table, Err: err}
		}
		records = append(records, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, &BackendError{Op: "fetch", Table: table, Err: err}
	}
	return records, nil
}

func (s *Postgres) Upsert(ctx context.Context, table string, record any) error {
	if err := checkTable("upsert", table); err != nil {
		return err
	}

	id, data, err := Encode(record)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, table)
	if _, err := s.pool.Exec(ctx, query, id, data); err != nil {
		return &BackendError{Op: "upsert", Table: table, Err: err}
	}
	return nil
}

func (s *Postgres) Remove(ctx context.Context, table, id string) error {
	if err := checkTable("remove", table); err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return &BackendError{Op: "remove", Table: table, Err: err}
	}
	if tag.RowsAffected() == 0 {
		return &BackendError{Op: "remove", Table: table, Err: errors.New("no row with id " + id)}
	}
	return nil
}
