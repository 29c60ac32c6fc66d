package rowstore

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
)

// Memory is an in-process Store used by tests and the seeder's dry-run mode.
// It applies the same boundary validation as the Postgres implementation.
type Memory struct {
	mu     sync.Mutex
	tables map[string]map[string]json.RawMessage
}

// NewMemory returns an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string]map[string]json.RawMessage)}
}

func (s *Memory) FetchAll(_ context.Context, table string) ([]json.RawMessage, error) {
	if err := checkTable("fetch", table); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tables[table]
	ids := make([]string, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]json.RawMessage, 0, len(rows))
	for _, id := range ids {
		records = append(records, rows[id])
	}
	return records, nil
}

func (s *Memory) Upsert(_ context.Context, table string, record any) error {
	if err := checkTable("upsert", table); err != nil {
		return err
	}
	id, data, err := Encode(record)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tables[table] == nil {
		s.tables[table] = make(map[string]json.RawMessage)
	}
	s.tables[table][id] = json.RawMessage(data)
	return nil
}

func (s *Memory) Remove(_ context.Context, table, id string) error {
	if err := checkTable("remove", table); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[table][id]; !ok {
		return &BackendError{Op: "remove", Table: table, Err: errors.New("no row with id " + id)}
	}
	delete(s.tables[table], id)
	return nil
}

// Count reports the number of rows in a table. Test helper.
func (s *Memory) Count(table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables[table])
}
