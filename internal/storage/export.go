// ABOUTME: Export and import functionality for tracker data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/ecoeats/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export and checked on import.
const ExportVersion = "1.0"

// ExportUser carries the password hash, which models.User keeps out of JSON.
type ExportUser struct {
	ID           int64     `json:"id" yaml:"id"`
	Username     string    `json:"username" yaml:"username"`
	PasswordHash string    `json:"password_hash,omitempty" yaml:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// ExportData represents the full export format for tracker data.
type ExportData struct {
	Version    string               `json:"version" yaml:"version"`
	ExportedAt time.Time            `json:"exported_at" yaml:"exported_at"`
	Tool       string               `json:"tool" yaml:"tool"`
	Users      []*ExportUser        `json:"users" yaml:"users"`
	Waste      []*models.WasteEntry `json:"food_waste" yaml:"food_waste"`
	Meals      []*models.Meal       `json:"meals" yaml:"meals"`
	Goals      []*models.Goal       `json:"goals" yaml:"goals"`
	Challenges []*models.Challenge  `json:"challenges" yaml:"challenges"`
	Posts      []*models.Post       `json:"community_posts" yaml:"community_posts"`
	Stats      []*models.UserStats  `json:"user_stats" yaml:"user_stats"`
}

// Counts returns the number of records per table, keyed by table name.
func (e *ExportData) Counts() map[string]int {
	return map[string]int{
		"users":           len(e.Users),
		"food_waste":      len(e.Waste),
		"meals":           len(e.Meals),
		"goals":           len(e.Goals),
		"challenges":      len(e.Challenges),
		"community_posts": len(e.Posts),
		"user_stats":      len(e.Stats),
	}
}

// GetAllData retrieves all data for export, image bytes included.
func (d *DB) GetAllData() (*ExportData, error) {
	users, err := d.ListUsers()
	if err != nil {
		return nil, err
	}
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "ecoeats",
	}
	for _, u := range users {
		data.Users = append(data.Users, &ExportUser{
			ID:           u.ID,
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			CreatedAt:    u.CreatedAt,
		})
	}

	if data.Waste, err = d.allWaste(); err != nil {
		return nil, err
	}
	if data.Meals, err = d.allMeals(); err != nil {
		return nil, err
	}
	if data.Goals, err = d.allGoals(); err != nil {
		return nil, err
	}
	if data.Challenges, err = d.allChallenges(); err != nil {
		return nil, err
	}
	if data.Posts, err = d.allPosts(); err != nil {
		return nil, err
	}
	if data.Stats, err = d.allStats(); err != nil {
		return nil, err
	}
	return data, nil
}

// ImportData imports data from an export. Users are matched by username;
// every other record gets a fresh ID and is re-pointed at the matched user.
func (d *DB) ImportData(data *ExportData) error {
	userIDs := make(map[int64]int64, len(data.Users))
	for _, eu := range data.Users {
		existing, err := d.GetUserByName(eu.Username)
		switch {
		case err == nil:
			userIDs[eu.ID] = existing.ID
			continue
		case !errors.Is(err, ErrNotFound):
			return fmt.Errorf("import user %s: %w", eu.Username, err)
		}
		u := &models.User{Username: eu.Username, PasswordHash: eu.PasswordHash, CreatedAt: eu.CreatedAt}
		if err := d.CreateUser(u); err != nil {
			return fmt.Errorf("import user %s: %w", eu.Username, err)
		}
		userIDs[eu.ID] = u.ID
	}

	owner := func(old int64) (int64, error) {
		id, ok := userIDs[old]
		if !ok {
			return 0, fmt.Errorf("record references unknown user %d", old)
		}
		return id, nil
	}

	for _, w := range data.Waste {
		uid, err := owner(w.UserID)
		if err != nil {
			return fmt.Errorf("import waste entry %d: %w", w.ID, err)
		}
		entry := *w
		entry.UserID = uid
		if err := d.CreateWaste(&entry); err != nil {
			return fmt.Errorf("import waste entry %d: %w", w.ID, err)
		}
	}
	for _, m := range data.Meals {
		uid, err := owner(m.UserID)
		if err != nil {
			return fmt.Errorf("import meal %d: %w", m.ID, err)
		}
		meal := *m
		meal.UserID = uid
		if err := d.CreateMeal(&meal); err != nil {
			return fmt.Errorf("import meal %d: %w", m.ID, err)
		}
	}
	for _, g := range data.Goals {
		uid, err := owner(g.UserID)
		if err != nil {
			return fmt.Errorf("import goal %d: %w", g.ID, err)
		}
		goal := *g
		goal.UserID = uid
		if err := d.CreateGoal(&goal); err != nil {
			return fmt.Errorf("import goal %d: %w", g.ID, err)
		}
	}
	for _, c := range data.Challenges {
		uid, err := owner(c.UserID)
		if err != nil {
			return fmt.Errorf("import challenge %d: %w", c.ID, err)
		}
		challenge := *c
		challenge.UserID = uid
		if err := d.CreateChallenge(&challenge); err != nil {
			return fmt.Errorf("import challenge %d: %w", c.ID, err)
		}
	}
	for _, p := range data.Posts {
		uid, err := owner(p.UserID)
		if err != nil {
			return fmt.Errorf("import post %d: %w", p.ID, err)
		}
		post := *p
		post.UserID = uid
		if err := d.CreatePost(&post); err != nil {
			return fmt.Errorf("import post %d: %w", p.ID, err)
		}
	}
	for _, s := range data.Stats {
		uid, err := owner(s.UserID)
		if err != nil {
			return fmt.Errorf("import stats: %w", err)
		}
		stats := *s
		stats.UserID = uid
		if err := d.SaveUserStats(&stats); err != nil {
			return err
		}
	}
	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	if data.Version != "" && data.Version != ExportVersion {
		return fmt.Errorf("unsupported export version %q", data.Version)
	}
	return d.ImportData(&data)
}

// ExportYAML exports all data as YAML, grouped by username and without image bytes.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(data.Users))
	for _, u := range data.Users {
		names[u.ID] = u.Username
	}

	out := struct {
		Version    string               `yaml:"version"`
		ExportedAt string               `yaml:"exported_at"`
		Tool       string               `yaml:"tool"`
		Users      map[string]*yamlUser `yaml:"users"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Users:      make(map[string]*yamlUser, len(data.Users)),
	}
	user := func(id int64) *yamlUser {
		name := names[id]
		if out.Users[name] == nil {
			out.Users[name] = &yamlUser{}
		}
		return out.Users[name]
	}
	for _, u := range data.Users {
		user(u.ID)
	}

	for _, w := range data.Waste {
		u := user(w.UserID)
		u.Waste = append(u.Waste, yamlWaste{
			Item:     w.Item,
			Quantity: fmt.Sprintf("%d %s", w.Quantity, w.Unit()),
			LoggedAt: w.LoggedAt.Format(time.RFC3339),
		})
	}
	for _, m := range data.Meals {
		u := user(m.UserID)
		u.Meals = append(u.Meals, yamlMeal{
			Meal:      m.Description,
			Nutrition: m.Nutrition,
			LoggedAt:  m.LoggedAt.Format(time.RFC3339),
		})
	}
	for _, g := range data.Goals {
		u := user(g.UserID)
		u.Goals = append(u.Goals, yamlGoal{
			Type:      string(g.Type),
			Goal:      g.Goal,
			Savings:   g.PotentialSavings,
			Completed: g.Completed,
		})
	}
	for _, c := range data.Challenges {
		u := user(c.UserID)
		u.Challenges = append(u.Challenges, yamlChallenge{
			Challenge: c.Challenge,
			Start:     c.StartDate.Format(models.DateLayout),
			End:       c.EndDate.Format(models.DateLayout),
			Progress:  c.Progress,
			Completed: c.Completed,
		})
	}
	for _, p := range data.Posts {
		u := user(p.UserID)
		u.Posts = append(u.Posts, yamlPost{Post: p.Body, Likes: p.Likes, PostedAt: p.CreatedAt.Format(time.RFC3339)})
	}
	for _, s := range data.Stats {
		u := user(s.UserID)
		u.Streak = s.Streak
		u.LastLogin = s.LastLogin.Format(models.DateLayout)
	}

	return yaml.Marshal(out)
}

type yamlUser struct {
	Streak     int             `yaml:"streak,omitempty"`
	LastLogin  string          `yaml:"last_login,omitempty"`
	Waste      []yamlWaste     `yaml:"food_waste,omitempty"`
	Meals      []yamlMeal      `yaml:"meals,omitempty"`
	Goals      []yamlGoal      `yaml:"goals,omitempty"`
	Challenges []yamlChallenge `yaml:"challenges,omitempty"`
	Posts      []yamlPost      `yaml:"posts,omitempty"`
}

type yamlWaste struct {
	Item     string `yaml:"item"`
	Quantity string `yaml:"quantity"`
	LoggedAt string `yaml:"logged_at"`
}

type yamlMeal struct {
	Meal      string `yaml:"meal"`
	Nutrition string `yaml:"nutrition,omitempty"`
	LoggedAt  string `yaml:"logged_at"`
}

type yamlGoal struct {
	Type      string `yaml:"type"`
	Goal      string `yaml:"goal"`
	Savings   string `yaml:"potential_savings,omitempty"`
	Completed bool   `yaml:"completed"`
}

type yamlChallenge struct {
	Challenge string `yaml:"challenge"`
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Progress  int    `yaml:"progress"`
	Completed bool   `yaml:"completed"`
}

type yamlPost struct {
	Post     string `yaml:"post"`
	Likes    int    `yaml:"likes"`
	PostedAt string `yaml:"posted_at"`
}

// ExportMarkdown renders one user's history as Markdown tables.
func (d *DB) ExportMarkdown(userID int64, since *time.Time) (string, error) {
	user, err := d.GetUser(userID)
	if err != nil {
		return "", err
	}
	waste, err := d.ListWaste(userID, 0)
	if err != nil {
		return "", err
	}
	meals, err := d.ListMeals(userID, 0)
	if err != nil {
		return "", err
	}
	goals, err := d.ListGoals(userID)
	if err != nil {
		return "", err
	}
	challenges, err := d.ListChallenges(userID, 0)
	if err != nil {
		return "", err
	}

	include := func(t time.Time) bool {
		return since == nil || !t.Before(*since)
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# EcoEats Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("User: %s\n\n", user.Username))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	sb.WriteString("## Food Waste\n\n")
	sb.WriteString("| Date | Item | Quantity |\n")
	sb.WriteString("|------|------|----------|\n")
	for _, w := range waste {
		if !include(w.LoggedAt) {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %d %s |\n",
			w.LoggedAt.Format("2006-01-02 15:04"), cell(w.Item), w.Quantity, w.Unit()))
	}

	sb.WriteString("\n## Meals\n\n")
	sb.WriteString("| Date | Meal | Nutrition |\n")
	sb.WriteString("|------|------|-----------|\n")
	for _, m := range meals {
		if !include(m.LoggedAt) {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			m.LoggedAt.Format("2006-01-02 15:04"), cell(m.Description), cell(m.Nutrition)))
	}

	sb.WriteString("\n## Goals\n\n")
	sb.WriteString("| Date | Type | Goal | Done |\n")
	sb.WriteString("|------|------|------|------|\n")
	for _, g := range goals {
		if !include(g.CreatedAt) {
			continue
		}
		done := ""
		if g.Completed {
			done = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			g.CreatedAt.Format(models.DateLayout), g.Type, cell(g.Goal), done))
	}

	sb.WriteString("\n## Challenges\n\n")
	sb.WriteString("| Start | End | Progress | Challenge |\n")
	sb.WriteString("|-------|-----|----------|-----------|\n")
	for _, c := range challenges {
		if !include(c.EndDate) {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %d%% | %s |\n",
			c.StartDate.Format(models.DateLayout), c.EndDate.Format(models.DateLayout), c.Progress, cell(c.Challenge)))
	}

	return sb.String(), nil
}

// cell flattens text so it fits in a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
