package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// Postgres keeps each table as (id TEXT PRIMARY KEY, data JSONB).
type Postgres struct {
	db     *sql.DB
	mu     sync.Mutex
	tables map[string]bool
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, tables: make(map[string]bool)}
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// ensureTable creates table on first use and returns its quoted name.
func (p *Postgres) ensureTable(ctx context.Context, table string) (string, error) {
	if err := validTable(table); err != nil {
		return "", err
	}
	quoted := pq.QuoteIdentifier(table)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tables[table] {
		return quoted, nil
	}

	_, err := p.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id   TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`, quoted))
	if err != nil {
		return "", fmt.Errorf("create table %s: %w", table, err)
	}
	p.tables[table] = true
	return quoted, nil
}

func scanRecord(row interface{ Scan(...any) error }) (Record, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

func (p *Postgres) Insert(ctx context.Context, table string, record Record) (Record, error) {
	quoted, err := p.ensureTable(ctx, table)
	if err != nil {
		return nil, err
	}
	rec, err := prepareInsert(record)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	_, err = p.db.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (id, data) VALUES ($1, $2)`, quoted), rec.ID(), data)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return nil, fmt.Errorf("%w: %s/%s", ErrConflict, table, rec.ID())
	}
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	return rec, nil
}

func (p *Postgres) Select(ctx context.Context, table string, filter Filter) ([]Record, error) {
	quoted, err := p.ensureTable(ctx, table)
	if err != nil {
		return nil, err
	}
	f, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	containment, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, fmt.Sprintf(`SELECT data FROM %s WHERE data @> $1 ORDER BY id`, quoted), containment)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("select %s: %w", table, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (p *Postgres) Get(ctx context.Context, table, id string) (Record, error) {
	quoted, err := p.ensureTable(ctx, table)
	if err != nil {
		return nil, err
	}

	rec, err := scanRecord(p.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT data FROM %s WHERE id = $1`, quoted), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, table, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", table, id, err)
	}
	return rec, nil
}

func (p *Postgres) Update(ctx context.Context, table, id string, patch Record) (Record, error) {
	quoted, err := p.ensureTable(ctx, table)
	if err != nil {
		return nil, err
	}
	pt, err := preparePatch(patch)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(pt)
	if err != nil {
		return nil, fmt.Errorf("encode patch: %w", err)
	}

	query := fmt.Sprintf(`UPDATE %s SET data = data || $2 WHERE id = $1 RETURNING data`, quoted)
	rec, err := scanRecord(p.db.QueryRowContext(ctx, query, id, data))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, table, id)
	}
	if err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", table, id, err)
	}
	return rec, nil
}

func (p *Postgres) Delete(ctx context.Context, table, id string) error {
	quoted, err := p.ensureTable(ctx, table)
	if err != nil {
		return err
	}

	res, err := p.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, quoted), id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", table, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, table, id)
	}
	return nil
}
