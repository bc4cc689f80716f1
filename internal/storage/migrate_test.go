// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Uses two SQLite databases as source and destination.
package storage

import (
	"testing"
)

func TestMigrateData(t *testing.T) {
	src := setupTestDB(t)
	u := seedExportData(t, src)
	dst := setupTestDB(t)

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}

	want := MigrateSummary{Users: 1, Waste: 1, Meals: 1, Goals: 1, Challenges: 1, Posts: 1, Stats: 1}
	if *summary != want {
		t.Errorf("summary = %+v, want %+v", *summary, want)
	}

	srcSummary, err := src.Summary(u.ID)
	if err != nil {
		t.Fatalf("source Summary failed: %v", err)
	}
	moved, err := dst.GetUserByName("alice")
	if err != nil {
		t.Fatalf("GetUserByName failed: %v", err)
	}
	dstSummary, err := dst.Summary(moved.ID)
	if err != nil {
		t.Fatalf("destination Summary failed: %v", err)
	}
	if *srcSummary != *dstSummary {
		t.Errorf("summaries differ: src %+v, dst %+v", *srcSummary, *dstSummary)
	}
}

func TestMigrateDataEmptySource(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestDB(t)

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if *summary != (MigrateSummary{}) {
		t.Errorf("expected empty summary, got %+v", *summary)
	}
}

func TestMigrateDataReusesExistingUser(t *testing.T) {
	src := setupTestDB(t)
	seedExportData(t, src)
	dst := setupTestDB(t)
	existing := createTestUser(t, dst, "alice")

	if _, err := MigrateData(src, dst); err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}

	users, err := dst.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	meals, err := dst.ListMeals(existing.ID, 0)
	if err != nil {
		t.Fatalf("ListMeals failed: %v", err)
	}
	if len(meals) != 1 {
		t.Errorf("expected meal attached to existing user, got %d", len(meals))
	}
}
