package store

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sqliteRecord struct {
	TaskID     string  `json:"task_id"`
	Efficiency float64 `json:"efficiency"`
}

func TestSQLitePutGet(t *testing.T) {
	s, err := NewSQLite[sqliteRecord](":memory:", "performance_records", 0)
	require.NoError(t, err)
	defer s.Close()

	rec := sqliteRecord{TaskID: "ol-1", Efficiency: 0.8}
	require.NoError(t, s.Put("ol-1", rec))

	got, ok := s.Get("ol-1")
	require.True(t, ok)
	assert.Equal(t, rec, got)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestSQLiteUpsert(t *testing.T) {
	s, err := NewSQLite[sqliteRecord](":memory:", "performance_records", 0)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("t", sqliteRecord{TaskID: "t", Efficiency: 0.4}))
	require.NoError(t, s.Put("t", sqliteRecord{TaskID: "t", Efficiency: 0.9}))

	got, ok := s.Get("t")
	require.True(t, ok)
	assert.Equal(t, 0.9, got.Efficiency)
	assert.Equal(t, 1, s.Len())
}

func TestSQLiteCapacityPruning(t *testing.T) {
	s, err := NewSQLite[sqliteRecord](":memory:", "events", 3)
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("e%d", i)
		require.NoError(t, s.Put(key, sqliteRecord{TaskID: key}))
	}

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"e2", "e3", "e4"}, s.Keys(), "oldest rows pruned first")
}

func TestSQLiteSharedDB(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	tasks, err := NewSQLiteWithDB[sqliteRecord](db, "tasks", 0)
	require.NoError(t, err)
	events, err := NewSQLiteWithDB[sqliteRecord](db, "events", 0)
	require.NoError(t, err)

	require.NoError(t, tasks.Put("t1", sqliteRecord{TaskID: "t1"}))
	require.NoError(t, events.Put("e1", sqliteRecord{TaskID: "t1"}))

	assert.Equal(t, 1, tasks.Len())
	assert.Equal(t, 1, events.Len())

	// Stores over a shared handle do not close it
	require.NoError(t, tasks.Close())
	assert.NoError(t, db.Ping())
}

func TestSQLiteRejectsBadTableName(t *testing.T) {
	_, err := NewSQLite[sqliteRecord](":memory:", "events; DROP TABLE tasks", 0)
	require.Error(t, err)
}

func TestSQLiteClear(t *testing.T) {
	s, err := NewSQLite[sqliteRecord](":memory:", "tasks", 0)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("a", sqliteRecord{TaskID: "a"}))
	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())
}
