// ABOUTME: Tests for tracker operations against a temporary SQLite database.
// ABOUTME: A scripted provider stands in for the model so generated copy is predictable.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/harperreed/ecoeats/internal/ai"
	"github.com/harperreed/ecoeats/internal/auth"
	"github.com/harperreed/ecoeats/internal/media"
	"github.com/harperreed/ecoeats/internal/models"
	"github.com/harperreed/ecoeats/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngImage  = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	jpegImage = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...)
)

// scriptedProvider echoes prompts and returns a fixed vision answer.
type scriptedProvider struct {
	vision    string
	visionErr error
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(_ context.Context, _, prompt string, _ int) (string, error) {
	return "reply: " + prompt, nil
}

func (p *scriptedProvider) Describe(_ context.Context, _ []byte, _, _ string, _ int) (string, error) {
	if p.visionErr != nil {
		return "", p.visionErr
	}
	return p.vision, nil
}

type fakeLabeler struct {
	labels []ai.Label
	err    error
}

func (f *fakeLabeler) Labels(context.Context, []byte) ([]ai.Label, error) {
	return f.labels, f.err
}

// memStore keeps images by key, like an object store would.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memStore) Put(_ context.Context, kind string, data []byte) (*media.Attachment, error) {
	ct, err := media.Validate(data)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%s/%d", kind, len(s.objects)+1)
	s.objects[key] = data
	return &media.Attachment{Ref: key, ContentType: ct}, nil
}

func (s *memStore) Get(_ context.Context, ref string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[ref]
	if !ok {
		return nil, errors.New("no such object")
	}
	return data, nil
}

func (s *memStore) Backend() string { return "memory" }

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(days int) { c.t = c.t.AddDate(0, 0, days) }

func (c *clock) day() string { return c.t.Format(models.DateLayout) }

func ctx() context.Context { return context.Background() }

func newProvider() *scriptedProvider {
	return &scriptedProvider{vision: "About 250 grams of stale bread."}
}

func setup(t *testing.T, p ai.Provider, opts ...Option) (*Tracker, *clock) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a, err := ai.NewAssistant(p, ai.WithCacheTTL(0))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	c := &clock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return New(db, a, append([]Option{WithClock(c.now)}, opts...)...), c
}

func mustUser(t *testing.T, tr *Tracker, name string) *models.User {
	t.Helper()
	u, err := tr.EnsureUser(name)
	require.NoError(t, err)
	return u
}

func TestEnsureUser(t *testing.T) {
	tr, _ := setup(t, newProvider())

	first := mustUser(t, tr, "harper")
	second := mustUser(t, tr, "  harper ")
	assert.Equal(t, first.ID, second.ID)
	assert.False(t, first.CanLogin())

	for _, bad := range []string{"", "   ", "two words", strings.Repeat("x", 65)} {
		_, err := tr.EnsureUser(bad)
		assert.ErrorIs(t, err, ErrInvalid, "username %q", bad)
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	tr, _ := setup(t, newProvider())

	u, err := tr.Register("alice", "compost123")
	require.NoError(t, err)
	assert.True(t, u.CanLogin())

	_, err = tr.Register("alice", "another-pass")
	assert.ErrorIs(t, err, ErrExists)

	_, err = tr.Register("bob", "short")
	assert.ErrorIs(t, err, ErrInvalid)

	got, err := tr.Authenticate("alice", "compost123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = tr.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, auth.ErrBadCredentials)

	_, err = tr.Authenticate("nobody", "compost123")
	assert.ErrorIs(t, err, auth.ErrBadCredentials)
}

func TestSetPassword(t *testing.T) {
	tr, _ := setup(t, newProvider())

	u := mustUser(t, tr, "carol")
	_, err := tr.Authenticate("carol", "letmein1")
	assert.ErrorIs(t, err, auth.ErrBadCredentials)

	_, err = tr.SetPassword("carol", "letmein1")
	require.NoError(t, err)
	got, err := tr.Authenticate("carol", "letmein1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = tr.SetPassword("carol", "123")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCheckInStreak(t *testing.T) {
	tr, c := setup(t, newProvider())
	u := mustUser(t, tr, "harper")

	s, err := tr.Streak(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Streak)
	assert.Equal(t, "Beginner", s.Achievement.Title)

	steps := []struct {
		name string
		days int
		want int
	}{
		{"first visit", 0, 1},
		{"same day", 0, 1},
		{"next day", 1, 2},
		{"later the same day", 0, 2},
		{"day after", 1, 3},
		{"missed two days", 3, 1},
		{"back on track", 1, 2},
	}
	for _, step := range steps {
		c.advance(step.days)
		s, err := tr.CheckIn(u.ID)
		require.NoError(t, err, step.name)
		assert.Equal(t, step.want, s.Streak, step.name)
		assert.Equal(t, c.day(), s.LastLogin.Format(models.DateLayout), step.name)
	}

	for i := 0; i < 4; i++ {
		c.advance(1)
		_, err := tr.CheckIn(u.ID)
		require.NoError(t, err)
	}
	s, err = tr.Streak(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, s.Streak)
	assert.Equal(t, "Eco Novice", s.Achievement.Title)
}

func TestStreakLapsesWithoutCheckIn(t *testing.T) {
	tr, c := setup(t, newProvider())
	u := mustUser(t, tr, "harper")

	for i := 0; i < 12; i++ {
		_, err := tr.CheckIn(u.ID)
		require.NoError(t, err)
		c.advance(1)
	}

	// The day after the last check-in the streak still stands.
	s, err := tr.Streak(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, s.Streak)
	assert.Equal(t, "Green Enthusiast", s.Achievement.Title)

	c.advance(5)
	s, err = tr.Streak(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Streak)
	assert.Equal(t, "Beginner", s.Achievement.Title)

	d, err := tr.Dashboard(ctx(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Streak.Streak)
	assert.Equal(t, "Beginner", d.Streak.Achievement.Title)

	// Reading never rewrites the stored streak; the next check-in restarts it.
	s, err = tr.CheckIn(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Streak)
}

func TestLogWasteValidation(t *testing.T) {
	tr, _ := setup(t, newProvider())
	u := mustUser(t, tr, "harper")

	tests := []struct {
		name string
		in   WasteInput
	}{
		{"empty item", WasteInput{Item: "  ", Quantity: 10}},
		{"negative quantity", WasteInput{Item: "rice", Quantity: -1}},
		{"unknown type", WasteInput{Item: "rice", Quantity: 1, QuantityType: "gas"}},
		{"not an image", WasteInput{Item: "rice", Quantity: 1, Image: []byte("hello there")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.LogWaste(ctx(), u.ID, tt.in)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	entries, err := tr.ListWaste(u.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogWaste(t *testing.T) {
	tr, c := setup(t, newProvider())
	u := mustUser(t, tr, "harper")

	w, err := tr.LogWaste(ctx(), u.ID, WasteInput{Item: "Milk", Quantity: 250, QuantityType: "liquid"})
	require.NoError(t, err)
	assert.NotZero(t, w.ID)
	assert.Equal(t, "ml", w.Unit())
	assert.False(t, w.HasImage)

	c.advance(1)
	w2, err := tr.LogWaste(ctx(), u.ID, WasteInput{Item: "Bread", Quantity: 120, Image: pngImage})
	require.NoError(t, err)
	assert.True(t, w2.HasImage)
	assert.Equal(t, models.QuantitySolid, w2.QuantityType)

	entries, err := tr.ListWaste(u.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Bread", entries[0].Item)
	assert.Empty(t, entries[0].Image, "lists omit image bytes")

	got, err := tr.GetWaste(ctx(), u.ID, w2.ID)
	require.NoError(t, err)
	assert.Equal(t, pngImage, got.Image)

	other := mustUser(t, tr, "mallory")
	_, err = tr.GetWaste(ctx(), other.ID, w2.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, tr.DeleteWaste(other.ID, w2.ID), storage.ErrNotFound)

	require.NoError(t, tr.DeleteWaste(u.ID, w2.ID))
	entries, err = tr.ListWaste(u.ID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLogWasteExternalImageStore(t *testing.T) {
	store := &memStore{objects: map[string][]byte{}}
	tr, _ := setup(t, newProvider(), WithImageStore(store))
	u := mustUser(t, tr, "harper")

	w, err := tr.LogWaste(ctx(), u.ID, WasteInput{Item: "Apple", Quantity: 90, Image: jpegImage})
	require.NoError(t, err)
	assert.Equal(t, "waste/1", w.ImageRef)
	assert.Empty(t, w.Image)

	got, err := tr.GetWaste(ctx(), u.ID, w.ID)
	require.NoError(t, err)
	assert.True(t, got.HasImage)
	assert.Equal(t, jpegImage, got.Image)

	m, err := tr.LogMeal(ctx(), u.ID, MealInput{Description: "Salad", Image: pngImage})
	require.NoError(t, err)
	gotMeal, err := tr.GetMeal(ctx(), u.ID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, pngImage, gotMeal.Image)
}

func TestLogMeal(t *testing.T) {
	tr, _ := setup(t, newProvider())
	u := mustUser(t, tr, "harper")

	_, err := tr.LogMeal(ctx(), u.ID, MealInput{Description: ""})
	assert.ErrorIs(t, err, ErrInvalid)

	neg := -5
	_, err = tr.LogMeal(ctx(), u.ID, MealInput{Description: "Soup", Quantity: &neg})
	assert.ErrorIs(t, err, ErrInvalid)

	cal := 540
	m, err := tr.LogMeal(ctx(), u.ID, MealInput{Description: "Lentil soup", Quantity: &cal})
	require.NoError(t, err)
	assert.Equal(t, "reply: "+ai.NutritionPrompt("Lentil soup"), m.Nutrition)
	require.NotNil(t, m.Quantity)
	assert.Equal(t, 540, *m.Quantity)

	meals, err := tr.ListMeals(u.ID, 10)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, m.Nutrition, meals[0].Nutrition)

	require.NoError(t, tr.DeleteMeal(u.ID, m.ID))
	assert.ErrorIs(t, tr.DeleteMeal(u.ID, m.ID), storage.ErrNotFound)
}

func TestSetGoal(t *testing.T) {
	tr, _ := setup(t, newProvider())
	u := mustUser(t, tr, "harper")

	_, err := tr.SetGoal(ctx(), u.ID, "fitness", "run")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = tr.SetGoal(ctx(), u.ID, "waste", " ")
	assert.ErrorIs(t, err, ErrInvalid)

	g, err := tr.SetGoal(ctx(), u.ID, "waste", "Compost all scraps")
	require.NoError(t, err)
	assert.Equal(t, models.GoalWasteReduction, g.Type)
	assert.Equal(t, "reply: "+ai.RecommendationsPrompt(string(g.Type), "Compost all scraps"), g.Recommendations)
	assert.Equal(t, "reply: "+ai.SavingsPrompt(string(g.Type), "Compost all scraps"), g.PotentialSavings)

	done, err := tr.CompleteGoal(u.ID, g.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	_, err = tr.CompleteGoal(u.ID, g.ID+100)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	goals, err := tr.ListGoals(u.ID)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}

func TestCurrentChallenge(t *testing.T) {
	tr, c := setup(t, newProvider())
	u := mustUser(t, tr, "harper")

	first, created, err := tr.CurrentChallenge(ctx(), u.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "reply: "+ai.ChallengePrompt, first.Challenge)
	assert.Equal(t, c.day(), first.StartDate.Format(models.DateLayout))
	assert.Equal(t, 7, first.DaysRemaining(c.now()))

	c.advance(7)
	same, created, err := tr.CurrentChallenge(ctx(), u.ID)
	require.NoError(t, err)
	assert.False(t, created, "challenge is still active on its end date")
	assert.Equal(t, first.ID, same.ID)

	c.advance(1)
	next, created, err := tr.CurrentChallenge(ctx(), u.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, next.ID)

	all, err := tr.ListChallenges(u.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestChallengeProgress(t *testing.T) {
	tr, _ := setup(t, newProvider())
	u := mustUser(t, tr, "harper")
	ch, _, err := tr.CurrentChallenge(ctx(), u.ID)
	require.NoError(t, err)

	for _, bad := range []int{-1, 101} {
		_, err := tr.ChallengeProgress(u.ID, ch.ID, bad)
		assert.ErrorIs(t, err, ErrInvalid)
	}

	got, err := tr.ChallengeProgress(u.ID, ch.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, got.Progress)
	assert.False(t, got.Completed)

	got, err = tr.CompleteChallenge(u.ID, ch.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.True(t, got.Completed)

	other := mustUser(t, tr, "mallory")
	_, err = tr.CompleteChallenge(other.ID, ch.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCommunityPosts(t *testing.T) {
	tr, c := setup(t, newProvider())
	alice := mustUser(t, tr, "alice")
	bob := mustUser(t, tr, "bob")

	_, err := tr.AddPost(alice.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = tr.AddPost(alice.ID, strings.Repeat("a", MaxPostLength+1))
	assert.ErrorIs(t, err, ErrInvalid)

	p1, err := tr.AddPost(alice.ID, "Froze my bananas for smoothies")
	require.NoError(t, err)
	assert.Equal(t, "alice", p1.Author)
	c.advance(1)
	_, err = tr.AddPost(bob.ID, "Made stock from veggie scraps")
	require.NoError(t, err)

	likes, err := tr.LikePost(p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)
	likes, err = tr.LikePost(p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, likes)

	_, err = tr.LikePost(p1.ID + 100)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	posts, err := tr.ListPosts(0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "bob", posts[0].Author)
	assert.Equal(t, 2, posts[1].Likes)

	// 600 four-byte runes is 2400 bytes but well under the character limit.
	wide, err := tr.AddPost(alice.ID, strings.Repeat("🥕", 600))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("🥕", 600), wide.Body)
	_, err = tr.AddPost(alice.ID, strings.Repeat("🥕", MaxPostLength+1))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDashboard(t *testing.T) {
	tr, _ := setup(t, newProvider())
	u := mustUser(t, tr, "harper")

	_, err := tr.LogWaste(ctx(), u.ID, WasteInput{Item: "Rice", Quantity: 200})
	require.NoError(t, err)
	_, err = tr.LogWaste(ctx(), u.ID, WasteInput{Item: "Juice", Quantity: 330, QuantityType: "liquid"})
	require.NoError(t, err)
	_, err = tr.LogMeal(ctx(), u.ID, MealInput{Description: "Oatmeal"})
	require.NoError(t, err)
	_, err = tr.CheckIn(u.ID)
	require.NoError(t, err)

	d, err := tr.Dashboard(ctx(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Summary.WasteItems)
	assert.Equal(t, 200, d.Summary.WasteGrams)
	assert.Equal(t, 330, d.Summary.WasteMillilitres)
	assert.Equal(t, 1, d.Summary.Meals)
	assert.Equal(t, 1, d.Streak.Streak)
	assert.Equal(t, "reply: "+ai.QuickTipPrompt, d.QuickTip)
	assert.Equal(t, "reply: "+ai.QuotePrompt, d.Quote)
}

func TestWeeklyTrends(t *testing.T) {
	tr, c := setup(t, newProvider())
	u := mustUser(t, tr, "harper")

	// Outside the window.
	_, err := tr.LogWaste(ctx(), u.ID, WasteInput{Item: "Old", Quantity: 999})
	require.NoError(t, err)

	c.advance(3)
	_, err = tr.LogWaste(ctx(), u.ID, WasteInput{Item: "Rice", Quantity: 100})
	require.NoError(t, err)
	_, err = tr.LogWaste(ctx(), u.ID, WasteInput{Item: "Beans", Quantity: 50})
	require.NoError(t, err)
	_, err = tr.LogMeal(ctx(), u.ID, MealInput{Description: "Tacos"})
	require.NoError(t, err)
	rice := c.day()

	c.advance(6)
	_, err = tr.LogMeal(ctx(), u.ID, MealInput{Description: "Salad"})
	require.NoError(t, err)

	days, err := tr.WeeklyTrends(u.ID)
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.Equal(t, rice, days[0].Day)
	assert.Equal(t, 150, days[0].Waste)
	assert.Equal(t, 1, days[0].Meals)
	assert.Equal(t, c.day(), days[6].Day)
	assert.Equal(t, 0, days[6].Waste)
	assert.Equal(t, 1, days[6].Meals)
	for _, d := range days[1:6] {
		assert.Zero(t, d.Waste, d.Day)
		assert.Zero(t, d.Meals, d.Day)
	}
}

func TestTip(t *testing.T) {
	tr, _ := setup(t, newProvider())
	u := mustUser(t, tr, "harper")
	_, err := tr.AddPost(u.ID, "Shared leftovers with neighbours")
	require.NoError(t, err)

	tests := []struct {
		kind TipKind
		want string
	}{
		{TipQuick, ai.QuickTipPrompt},
		{TipQuote, ai.QuotePrompt},
		{TipNotification, ai.NotificationPrompt},
		{TipSustainability, ai.SustainabilityTipsPrompt},
		{TipPersonal, ai.PersonalTipPrompt(0, "Beginner")},
		{TipCommunity, ai.CommunityDigestPrompt([]string{"Shared leftovers with neighbours"})},
		{TipSummary, ai.ProgressSummaryPrompt(ai.WeekStats{})},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := tr.Tip(ctx(), u.ID, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, "reply: "+tt.want, got)
		})
	}

	_, err = tr.Tip(ctx(), u.ID, "horoscope")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseTipKind(t *testing.T) {
	k, ok := ParseTipKind("")
	assert.True(t, ok)
	assert.Equal(t, TipQuick, k)

	k, ok = ParseTipKind(" Personal ")
	assert.True(t, ok)
	assert.Equal(t, TipPersonal, k)

	_, ok = ParseTipKind("weather")
	assert.False(t, ok)
}

func TestAnalyzeWaste(t *testing.T) {
	tests := []struct {
		name     string
		vision   string
		wantQty  int
		wantType models.QuantityType
		wantEst  bool
	}{
		{"grams", "About 250 grams of stale bread.", 250, models.QuantitySolid, true},
		{"millilitres", "Roughly 300 ml of orange juice.", 300, models.QuantityLiquid, true},
		{"no estimate", "A bruised apple.", 0, models.QuantitySolid, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labeler := &fakeLabeler{labels: []ai.Label{{Name: "Food", Confidence: 98.5}}}
			tr, _ := setup(t, &scriptedProvider{vision: tt.vision}, WithLabeler(labeler))

			a, err := tr.AnalyzeWaste(ctx(), jpegImage)
			require.NoError(t, err)
			assert.Equal(t, tt.vision, a.Description)
			assert.Equal(t, tt.wantQty, a.Quantity)
			assert.Equal(t, tt.wantType, a.QuantityType)
			assert.Equal(t, tt.wantEst, a.Estimated)
			require.Len(t, a.Labels, 1)
			assert.Equal(t, "Food", a.Labels[0].Name)
		})
	}
}

func TestAnalyzeWasteLabelFailure(t *testing.T) {
	tr, _ := setup(t, newProvider(), WithLabeler(&fakeLabeler{err: errors.New("throttled")}))

	a, err := tr.AnalyzeWaste(ctx(), pngImage)
	require.NoError(t, err)
	assert.Equal(t, 250, a.Quantity)
	assert.Nil(t, a.Labels)

	_, err = tr.AnalyzeWaste(ctx(), []byte("GIF89a not allowed"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestAnalyzeMeal(t *testing.T) {
	p := &scriptedProvider{vision: "Spaghetti with tomato sauce, about 650 calories."}
	tr, _ := setup(t, p)

	a, err := tr.AnalyzeMeal(ctx(), jpegImage)
	require.NoError(t, err)
	require.NotNil(t, a.Calories)
	assert.Equal(t, 650, *a.Calories)
	assert.Equal(t, "reply: "+ai.NutritionDetailPrompt(p.vision), a.Nutrition)
}

func TestAnalyzeOffline(t *testing.T) {
	tr, _ := setup(t, ai.NewOfflineProvider())

	a, err := tr.AnalyzeMeal(ctx(), jpegImage)
	require.NoError(t, err)
	assert.Equal(t, ai.FallbackImage, a.Description)
	assert.Equal(t, ai.FallbackResponse, a.Nutrition)
	assert.Nil(t, a.Calories)

	list, err := tr.AnalyzeGroceryList(ctx(), pngImage)
	require.NoError(t, err)
	assert.Equal(t, ai.FallbackGrocery, list)

	_, err = tr.AnalyzeGroceryList(ctx(), nil)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestWeeklyReport(t *testing.T) {
	tr, c := setup(t, newProvider())
	u := mustUser(t, tr, "harper")

	_, err := tr.LogWaste(ctx(), u.ID, WasteInput{Item: "Lettuce", Quantity: 80})
	require.NoError(t, err)
	_, err = tr.LogMeal(ctx(), u.ID, MealInput{Description: "Stir fry"})
	require.NoError(t, err)
	_, err = tr.CheckIn(u.ID)
	require.NoError(t, err)
	c.t = c.t.Add(2 * time.Hour)

	pdf, err := tr.WeeklyReport(ctx(), u.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))

	_, err = tr.WeeklyReport(ctx(), u.ID+100)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	wk, err := tr.week(u.ID)
	require.NoError(t, err)
	assert.Equal(t, ai.WeekStats{WasteEntries: 1, WasteTotal: 80, Meals: 1}, wk.stats())
}
