package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, Open(filepath.Join(t.TempDir(), "nested", "booksearch.db")))
	t.Cleanup(func() { Close() })
}

func TestAddAndListSearchHistory(t *testing.T) {
	openTestDB(t)

	first := &SearchHistory{Query: "dune", RequestURL: "https://example.com/v?q=dune", ResultCount: 3, Outcome: "books"}
	require.NoError(t, AddSearchHistory(first))
	assert.NotZero(t, first.ID)

	require.NoError(t, AddSearchHistory(&SearchHistory{
		Query:        "mort",
		RequestURL:   "https://example.com/v?q=mort",
		Outcome:      "absent",
		ErrorMessage: "unexpected http status: 503 Service Unavailable",
	}))
	require.NoError(t, AddSearchHistory(&SearchHistory{Query: "dune", RequestURL: "https://example.com/v?q=dune", ResultCount: 4, Outcome: "books"}))

	all, err := GetSearchHistory(10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "dune", all[0].Query)
	assert.Equal(t, 4, all[0].ResultCount)
	assert.Equal(t, "mort", all[1].Query)
	assert.Equal(t, "absent", all[1].Outcome)
	assert.Equal(t, "unexpected http status: 503 Service Unavailable", all[1].ErrorMessage)
	assert.Empty(t, all[2].ErrorMessage)
	assert.WithinDuration(t, time.Now(), all[0].CreatedAt, time.Minute)

	unique, err := GetUniqueSearchHistory(10)
	require.NoError(t, err)
	require.Len(t, unique, 2)
	assert.Equal(t, "dune", unique[0].Query)
	assert.Equal(t, 4, unique[0].ResultCount)

	limited, err := GetSearchHistory(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestClearSearchHistory(t *testing.T) {
	openTestDB(t)

	require.NoError(t, AddSearchHistory(&SearchHistory{Query: "dune", RequestURL: "https://example.com", Outcome: "empty"}))
	require.NoError(t, ClearSearchHistory())

	history, err := GetSearchHistory(0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteSearchHistoryOlderThan(t *testing.T) {
	openTestDB(t)

	require.NoError(t, AddSearchHistory(&SearchHistory{Query: "recent", RequestURL: "https://example.com", Outcome: "books"}))
	_, err := DB().Exec(`
		INSERT INTO search_history (query, request_url, outcome, created_at)
		VALUES ('old', 'https://example.com', 'books', '2001-01-01 00:00:00')`)
	require.NoError(t, err)

	require.NoError(t, DeleteSearchHistoryOlderThan(24*time.Hour))

	history, err := GetSearchHistory(0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "recent", history[0].Query)
}
