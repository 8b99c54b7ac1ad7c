package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryInsertAssignsID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	rec, err := m.Insert(ctx, "leads", Record{"email": "a@example.com", "score": 3})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID())
	require.Equal(t, float64(3), rec["score"])

	got, err := m.Get(ctx, "leads", rec.ID())
	require.NoError(t, err)
	require.Equal(t, rec, got)

	_, err = m.Insert(ctx, "leads", Record{"id": rec.ID()})
	require.True(t, errors.Is(err, ErrConflict))
}

func TestMemorySelectFilters(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for _, r := range []Record{
		{"id": "1", "status": "new", "published": true},
		{"id": "2", "status": "won", "published": true},
		{"id": "3", "status": "new", "published": false},
	} {
		_, err := m.Insert(ctx, "leads", r)
		require.NoError(t, err)
	}

	all, err := m.Select(ctx, "leads", nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	got, err := m.Select(ctx, "leads", Filter{"status": "new", "published": true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "1", got[0].ID())

	none, err := m.Select(ctx, "posts", Filter{"status": "new"})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestMemoryUpdateKeepsID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.Insert(ctx, "leads", Record{"id": "1", "status": "new", "name": "Ann"})
	require.NoError(t, err)

	rec, err := m.Update(ctx, "leads", "1", Record{"id": "other", "status": "contacted"})
	require.NoError(t, err)
	require.Equal(t, "1", rec.ID())
	require.Equal(t, "contacted", rec["status"])
	require.Equal(t, "Ann", rec["name"])

	_, err = m.Update(ctx, "leads", "missing", Record{"status": "won"})
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.Insert(ctx, "leads", Record{"id": "1"})
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, "leads", "1"))
	require.True(t, errors.Is(m.Delete(ctx, "leads", "1"), ErrNotFound))

	_, err = m.Get(ctx, "leads", "1")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestInvalidTableName(t *testing.T) {
	_, err := NewMemory().Insert(context.Background(), "leads; drop", Record{})
	require.True(t, errors.Is(err, ErrInvalidTable))
}

func TestEncodeDecode(t *testing.T) {
	type item struct {
		ID   string   `json:"id"`
		Tags []string `json:"tags"`
	}
	rec, err := Encode(item{ID: "x", Tags: []string{"a"}})
	require.NoError(t, err)
	require.Equal(t, []any{"a"}, rec["tags"])

	var out item
	require.NoError(t, Decode(rec, &out))
	require.Equal(t, item{ID: "x", Tags: []string{"a"}}, out)
}
