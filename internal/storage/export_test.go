// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown export formats and ID remapping on import.
package storage

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/ecoeats/internal/models"
	"gopkg.in/yaml.v3"
)

// seedExportData fills a database with one of everything for alice.
func seedExportData(t *testing.T, db *DB) *models.User {
	t.Helper()

	u := createTestUser(t, db, "alice")
	if err := db.SetPassword(u.ID, "$2a$10$hash"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if err := db.CreateWaste(models.NewWasteEntry(u.ID, "Bread", 200, models.QuantitySolid).WithImage([]byte("img"))); err != nil {
		t.Fatalf("CreateWaste failed: %v", err)
	}
	if err := db.CreateMeal(models.NewMeal(u.ID, "Lentil soup").WithNutrition("Fibre rich")); err != nil {
		t.Fatalf("CreateMeal failed: %v", err)
	}
	if err := db.CreateGoal(models.NewGoal(u.ID, models.GoalHealthyEating, "Five a day")); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	if err := db.CreateChallenge(models.NewChallenge(u.ID, "No waste week", time.Now())); err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}
	if err := db.CreatePost(models.NewPost(u.ID, "Hello | world")); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if err := db.SaveUserStats(&models.UserStats{UserID: u.ID, LastLogin: time.Now(), Streak: 4}); err != nil {
		t.Fatalf("SaveUserStats failed: %v", err)
	}
	return u
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := db.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if export.Version != ExportVersion {
		t.Errorf("Expected version %s, got %s", ExportVersion, export.Version)
	}
	if export.Tool != "ecoeats" {
		t.Errorf("Expected tool ecoeats, got %s", export.Tool)
	}
	for table, n := range export.Counts() {
		if n != 1 {
			t.Errorf("Expected 1 row in %s, got %d", table, n)
		}
	}
	if export.Users[0].PasswordHash == "" {
		t.Error("password hash should be exported")
	}
	if string(export.Waste[0].Image) != "img" {
		t.Errorf("waste image = %q, want img", export.Waste[0].Image)
	}
}

func TestExportJSONEmpty(t *testing.T) {
	db := setupTestDB(t)

	data, err := db.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if len(export.Users) != 0 || len(export.Waste) != 0 {
		t.Errorf("expected empty export, got %+v", export.Counts())
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := db.ExportYAML()
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var yamlData map[string]interface{}
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if yamlData["version"] != ExportVersion {
		t.Errorf("Expected version %s, got %v", ExportVersion, yamlData["version"])
	}

	users, ok := yamlData["users"].(map[string]interface{})
	if !ok {
		t.Fatalf("users section missing: %v", yamlData["users"])
	}
	alice, ok := users["alice"].(map[string]interface{})
	if !ok {
		t.Fatalf("alice missing: %v", users)
	}
	if alice["streak"] != 4 {
		t.Errorf("streak = %v, want 4", alice["streak"])
	}
	if !strings.Contains(string(data), "200 g") {
		t.Error("expected waste quantity with unit in YAML")
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	u := seedExportData(t, db)

	md, err := db.ExportMarkdown(u.ID, nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	for _, want := range []string{"# EcoEats Export", "User: alice", "## Food Waste", "| Bread | 200 g |", "## Meals", "Lentil soup", "## Goals", "## Challenges", "No waste week"} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestExportMarkdownWithSince(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db, "alice")

	old := models.NewWasteEntry(u.ID, "Ancient cheese", 10, models.QuantitySolid).WithLoggedAt(time.Now().AddDate(0, -2, 0))
	recent := models.NewWasteEntry(u.ID, "Fresh bread", 20, models.QuantitySolid)
	for _, w := range []*models.WasteEntry{old, recent} {
		if err := db.CreateWaste(w); err != nil {
			t.Fatalf("CreateWaste failed: %v", err)
		}
	}

	since := time.Now().AddDate(0, 0, -7)
	md, err := db.ExportMarkdown(u.ID, &since)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if strings.Contains(md, "Ancient cheese") {
		t.Error("old entry should be filtered out")
	}
	if !strings.Contains(md, "Fresh bread") {
		t.Error("recent entry should be included")
	}
}

func TestCellEscaping(t *testing.T) {
	if got := cell("a|b\nc"); got != `a\|b c` {
		t.Errorf("cell() = %q", got)
	}
}

func TestImportJSON(t *testing.T) {
	src := setupTestDB(t)
	seedExportData(t, src)

	data, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	// Occupy id 1 so imported rows must be remapped.
	createTestUser(t, dst, "zed")

	if err := dst.ImportJSON(data); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	alice, err := dst.GetUserByName("alice")
	if err != nil {
		t.Fatalf("GetUserByName failed: %v", err)
	}
	if alice.ID == 1 {
		t.Fatal("expected alice to receive a new ID")
	}
	if alice.PasswordHash != "$2a$10$hash" {
		t.Errorf("PasswordHash = %q", alice.PasswordHash)
	}

	waste, err := dst.ListWaste(alice.ID, 0)
	if err != nil {
		t.Fatalf("ListWaste failed: %v", err)
	}
	if len(waste) != 1 || !waste[0].HasImage {
		t.Errorf("imported waste = %+v", waste)
	}
	stats, err := dst.GetUserStats(alice.ID)
	if err != nil {
		t.Fatalf("GetUserStats failed: %v", err)
	}
	if stats.Streak != 4 {
		t.Errorf("Streak = %d, want 4", stats.Streak)
	}
	posts, err := dst.ListPosts(0)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Author != "alice" {
		t.Errorf("imported posts = %+v", posts)
	}
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name string
		data string
	}{
		{"malformed", "{not json"},
		{"wrong version", `{"version": "9.9"}`},
		{"unknown owner", `{"version": "1.0", "food_waste": [{"id": 1, "user_id": 42, "item": "x", "quantity": 1, "quantity_type": "solid"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := db.ImportJSON([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
