// ABOUTME: Data migration between ecoeats storage backends.
// ABOUTME: Copies every table from source to destination, typically SQLite to Postgres.
package storage

import (
	"fmt"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Users      int
	Waste      int
	Meals      int
	Goals      int
	Challenges int
	Posts      int
	Stats      int
}

// MigrateData copies all data from src to dst storage. Users already present
// in dst (by username) are reused; all other rows are appended, so dst should
// not already hold a copy of src.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	data, err := src.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	if err := dst.ImportData(data); err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}
	return &MigrateSummary{
		Users:      len(data.Users),
		Waste:      len(data.Waste),
		Meals:      len(data.Meals),
		Goals:      len(data.Goals),
		Challenges: len(data.Challenges),
		Posts:      len(data.Posts),
		Stats:      len(data.Stats),
	}, nil
}
