package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory keeps records in process. It backs local runs and tests.
type Memory struct {
	mu     sync.RWMutex
	tables map[string]map[string]Record
}

func NewMemory() *Memory {
	return &Memory{tables: make(map[string]map[string]Record)}
}

func copyRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func (m *Memory) Insert(_ context.Context, table string, record Record) (Record, error) {
	if err := validTable(table); err != nil {
		return nil, err
	}
	rec, err := prepareInsert(record)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tables[table]
	if !ok {
		rows = make(map[string]Record)
		m.tables[table] = rows
	}
	if _, exists := rows[rec.ID()]; exists {
		return nil, fmt.Errorf("%w: %s/%s", ErrConflict, table, rec.ID())
	}
	rows[rec.ID()] = rec
	return copyRecord(rec), nil
}

func (m *Memory) Select(_ context.Context, table string, filter Filter) ([]Record, error) {
	if err := validTable(table); err != nil {
		return nil, err
	}
	f, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0)
	for _, rec := range m.tables[table] {
		if matches(rec, f) {
			out = append(out, copyRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *Memory) Get(_ context.Context, table, id string) (Record, error) {
	if err := validTable(table); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.tables[table][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, table, id)
	}
	return copyRecord(rec), nil
}

func (m *Memory) Update(_ context.Context, table, id string, patch Record) (Record, error) {
	if err := validTable(table); err != nil {
		return nil, err
	}
	p, err := preparePatch(patch)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.tables[table][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, table, id)
	}
	updated := copyRecord(rec)
	for k, v := range p {
		updated[k] = v
	}
	m.tables[table][id] = updated
	return copyRecord(updated), nil
}

func (m *Memory) Delete(_ context.Context, table, id string) error {
	if err := validTable(table); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[table][id]; !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, table, id)
	}
	delete(m.tables[table], id)
	return nil
}
