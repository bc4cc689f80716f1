// ABOUTME: Shared row scanning and timestamp helpers.
// ABOUTME: Timestamps are stored as UTC RFC3339 text, dates as YYYY-MM-DD.
package storage

import (
	"time"

	"github.com/harperreed/ecoeats/internal/models"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Rows written by older versions used Python-style ISO timestamps.
		t, _ = time.Parse("2006-01-02T15:04:05.999999", s)
	}
	return t
}

func formatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}

func parseDate(s string) time.Time {
	if len(s) > len(models.DateLayout) {
		s = s[:len(models.DateLayout)]
	}
	t, _ := time.Parse(models.DateLayout, s)
	return t
}

// limitClause appends LIMIT when limit is positive.
func limitClause(query string, args []interface{}, limit int) (string, []interface{}) {
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return query, args
}
