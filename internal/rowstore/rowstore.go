// Package rowstore exposes the generic table-scoped persistence surface the
// application is written against: read-all, upsert-by-id and delete-by-id,
// with no filters, pagination or cross-table transactions.
package rowstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Logical tables the application may touch. Anything else is refused
// before a query is built.
const (
	TableMaterials     = "materials"
	TableProducts      = "products"
	TableClients       = "clients"
	TableBudgets       = "budgets"
	TableTransactions  = "transactions"
	TableBrandSettings = "brand_settings"
)

var allowedTables = map[string]struct{}{
	TableMaterials:     {},
	TableProducts:      {},
	TableClients:       {},
	TableBudgets:       {},
	TableTransactions:  {},
	TableBrandSettings: {},
}

var (
	// ErrNotConfigured means the backend DSN was never provided. It signals
	// a deployment problem, not a transient fault, and is reported apart
	// from backend errors.
	ErrNotConfigured = errors.New("rowstore: backend is not configured")

	// ErrInvalidRecord means a record failed boundary validation and no
	// network call was made.
	ErrInvalidRecord = errors.New("rowstore: invalid record")
)

// BackendError wraps any failure surfaced by the backing store. It is
// always reported verbatim to the caller and never retried here.
type BackendError struct {
	Op    string
	Table string
	Err   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("rowstore: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Store is the row-store client consumed by every repository.
type Store interface {
	// FetchAll returns every row of a table; an empty table yields an
	// empty slice, not an error.
	FetchAll(ctx context.Context, table string) ([]json.RawMessage, error)

	// Upsert inserts or replaces one record keyed by its id field.
	Upsert(ctx context.Context, table string, record any) error

	// Remove deletes one row by id. A missing row is an error, the same
	// as any other backend failure.
	Remove(ctx context.Context, table, id string) error
}

func checkTable(op, table string) error {
	if _, ok := allowedTables[table]; !ok {
		return &BackendError{Op: op, Table: table, Err: errors.New("unknown table")}
	}
	return nil
}

// Encode marshals a record and validates it at the boundary: it must be a
// JSON object carrying a non-empty string "id". Malformed records fail here,
// before any network call.
func Encode(record any) (id string, data []byte, err error) {
	data, err = json.Marshal(record)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	var envelope struct {
		ID *string `json:"id"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", nil, fmt.Errorf("%w: record is not a JSON object", ErrInvalidRecord)
	}
	if envelope.ID == nil || *envelope.ID == "" {
		return "", nil, fmt.Errorf("%w: record has no id", ErrInvalidRecord)
	}
	return *envelope.ID, data, nil
}

// Decode unmarshals rows fetched from a table into typed records, skipping
// nothing: a row that does not decode is a backend fault, since only
// validated records are ever written.
func Decode[T any](table string, rows []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var rec T
		if err := json.Unmarshal(row, &rec); err != nil {
			return nil, &BackendError{Op: "decode", Table: table, Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

// Unconfigured is the Store used when no backend DSN is present. Every
// operation fails fast with ErrNotConfigured.
type Unconfigured struct{}

// NewUnconfigured returns a Store that refuses all operations.
func NewUnconfigured() Unconfigured { return Unconfigured{} }

func (Unconfigured) FetchAll(context.Context, string) ([]json.RawMessage, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) Upsert(context.Context, string, any) error { return ErrNotConfigured }

func (Unconfigured) Remove(context.Context, string, string) error { return ErrNotConfigured }
