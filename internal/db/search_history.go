package db

import (
	"database/sql"
	"time"
)

// SearchHistory represents a saved search
type SearchHistory struct {
	ID           int64
	Query        string
	RequestURL   string
	ResultCount  int
	Outcome      string
	ErrorMessage string
	CreatedAt    time.Time
}

const historyColumns = `id, query, request_url, result_count, outcome, error_message, created_at`

// AddSearchHistory adds a search to history
func AddSearchHistory(h *SearchHistory) error {
	var errMsg sql.NullString
	if h.ErrorMessage != "" {
		errMsg = sql.NullString{String: h.ErrorMessage, Valid: true}
	}

	result, err := database.Exec(`
		INSERT INTO search_history (query, request_url, result_count, outcome, error_message)
		VALUES (?, ?, ?, ?, ?)`,
		h.Query, h.RequestURL, h.ResultCount, h.Outcome, errMsg,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = id
	return nil
}

// GetSearchHistory retrieves recent search history
func GetSearchHistory(limit int) ([]*SearchHistory, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := database.Query(`
		SELECT `+historyColumns+`
		FROM search_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHistory(rows)
}

// GetUniqueSearchHistory retrieves unique recent searches (no duplicates)
func GetUniqueSearchHistory(limit int) ([]*SearchHistory, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := database.Query(`
		SELECT `+historyColumns+`
		FROM search_history
		WHERE id IN (
			SELECT MAX(id) FROM search_history GROUP BY query
		)
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHistory(rows)
}

func scanHistory(rows *sql.Rows) ([]*SearchHistory, error) {
	var history []*SearchHistory
	for rows.Next() {
		h := &SearchHistory{}
		var errMsg sql.NullString
		err := rows.Scan(&h.ID, &h.Query, &h.RequestURL, &h.ResultCount, &h.Outcome, &errMsg, &h.CreatedAt)
		if err != nil {
			return nil, err
		}
		h.ErrorMessage = errMsg.String
		history = append(history, h)
	}
	return history, rows.Err()
}

// ClearSearchHistory removes all search history
func ClearSearchHistory() error {
	_, err := database.Exec(`DELETE FROM search_history`)
	return err
}

// DeleteSearchHistoryOlderThan removes history older than the given duration
func DeleteSearchHistoryOlderThan(d time.Duration) error {
	cutoff := time.Now().UTC().Add(-d).Format("2006-01-02 15:04:05")
	_, err := database.Exec(`DELETE FROM search_history WHERE created_at < ?`, cutoff)
	return err
}
