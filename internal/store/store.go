// Package store is the persistence collaborator behind the site's content
// and lead data. Records are flat JSON objects keyed by a string "id".
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
)

const IDField = "id"

var (
	ErrNotFound     = errors.New("store: record not found")
	ErrConflict     = errors.New("store: record already exists")
	ErrInvalidTable = errors.New("store: invalid table name")
)

// Record is one stored row. Numbers decode as float64.
type Record map[string]any

// Filter selects records whose top-level fields equal the given values.
type Filter map[string]any

type Store interface {
	Insert(ctx context.Context, table string, record Record) (Record, error)
	Select(ctx context.Context, table string, filter Filter) ([]Record, error)
	Get(ctx context.Context, table, id string) (Record, error)
	Update(ctx context.Context, table, id string, patch Record) (Record, error)
	Delete(ctx context.Context, table, id string) error
}

func (r Record) ID() string {
	id, _ := r[IDField].(string)
	return id
}

// Encode turns a JSON-tagged struct into a Record.
func Encode(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return rec, nil
}

// Decode fills the JSON-tagged struct out from rec.
func Decode(rec Record, out any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

func validTable(table string) error {
	if table == "" {
		return ErrInvalidTable
	}
	for _, r := range table {
		if !(r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return fmt.Errorf("%w: %q", ErrInvalidTable, table)
		}
	}
	return nil
}

// prepareInsert normalizes record and assigns an id when it has none.
func prepareInsert(record Record) (Record, error) {
	if record == nil {
		return nil, errors.New("store: record must not be nil")
	}
	out, err := Encode(record)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.ID()) == "" {
		out[IDField] = uuid.NewString()
	}
	return out, nil
}

func preparePatch(patch Record) (Record, error) {
	out, err := Encode(patch)
	if err != nil {
		return nil, err
	}
	delete(out, IDField)
	return out, nil
}

func matches(rec Record, filter Filter) bool {
	for k, want := range filter {
		got, ok := rec[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func normalizeFilter(filter Filter) (Filter, error) {
	if len(filter) == 0 {
		return Filter{}, nil
	}
	rec, err := Encode(filter)
	if err != nil {
		return nil, err
	}
	return Filter(rec), nil
}
