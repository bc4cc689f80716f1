// ABOUTME: Dashboard, weekly trends, tips, photo analysis and the weekly PDF report.
// ABOUTME: Prompts that do not depend on each other are generated concurrently.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/ecoeats/internal/ai"
	"github.com/harperreed/ecoeats/internal/media"
	"github.com/harperreed/ecoeats/internal/models"
	"github.com/harperreed/ecoeats/internal/report"
	"github.com/harperreed/ecoeats/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Token budgets for the longer weekly copy.
const (
	summaryMaxTokens  = 300
	insightsMaxTokens = 400
	trendDays         = 7
)

// Dashboard is the landing view for a user.
type Dashboard struct {
	Summary  *storage.Summary `json:"summary"`
	Streak   *StreakInfo      `json:"streak"`
	QuickTip string           `json:"quick_tip"`
	Quote    string           `json:"thought_of_the_day"`
}

// Dashboard loads the user's counters and generates the tip and quote in parallel.
func (t *Tracker) Dashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	d := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := t.repo.Summary(userID)
		if err != nil {
			return err
		}
		d.Summary = s
		return nil
	})
	g.Go(func() error {
		s, err := t.Streak(userID)
		if err != nil {
			return err
		}
		d.Streak = s
		return nil
	})
	g.Go(func() error {
		d.QuickTip = t.assistant.Generate(gctx, ai.QuickTipPrompt, 0)
		return nil
	})
	g.Go(func() error {
		d.Quote = t.assistant.Generate(gctx, ai.QuotePrompt, 0)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return d, nil
}

// DayTrend is one day of the weekly trend series.
type DayTrend struct {
	Day   string `json:"day"`
	Waste int    `json:"waste"`
	Meals int    `json:"meals"`
}

// WeeklyTrends returns waste totals and meal counts for each of the last
// seven days, oldest first, with zeros for days without entries.
func (t *Tracker) WeeklyTrends(userID int64) ([]DayTrend, error) {
	today := t.today()
	since := today.AddDate(0, 0, -(trendDays - 1))

	waste, err := t.repo.DailyWaste(userID, since)
	if err != nil {
		return nil, err
	}
	meals, err := t.repo.DailyMeals(userID, since)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*DayTrend, trendDays)
	days := make([]DayTrend, trendDays)
	for i := range days {
		days[i].Day = since.AddDate(0, 0, i).Format(models.DateLayout)
		byDay[days[i].Day] = &days[i]
	}
	for _, w := range waste {
		if d, ok := byDay[w.Day]; ok {
			d.Waste = w.Total
		}
	}
	for _, m := range meals {
		if d, ok := byDay[m.Day]; ok {
			d.Meals = m.Total
		}
	}
	return days, nil
}

// TipKind selects which piece of generated copy Tip returns.
type TipKind string

const (
	TipQuick          TipKind = "quick"
	TipQuote          TipKind = "quote"
	TipNotification   TipKind = "notification"
	TipPersonal       TipKind = "personal"
	TipSustainability TipKind = "sustainability"
	TipCommunity      TipKind = "community"
	TipSummary        TipKind = "summary"
)

// TipKinds lists every supported kind.
var TipKinds = []TipKind{TipQuick, TipQuote, TipNotification, TipPersonal, TipSustainability, TipCommunity, TipSummary}

// ParseTipKind accepts a kind name; empty means quick.
func ParseTipKind(s string) (TipKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TipQuick, true
	}
	for _, k := range TipKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Tip generates one piece of copy for the user.
func (t *Tracker) Tip(ctx context.Context, userID int64, kind TipKind) (string, error) {
	switch kind {
	case TipQuick, "":
		return t.assistant.Generate(ctx, ai.QuickTipPrompt, 0), nil
	case TipQuote:
		return t.assistant.Generate(ctx, ai.QuotePrompt, 0), nil
	case TipNotification:
		return t.assistant.Generate(ctx, ai.NotificationPrompt, 0), nil
	case TipSustainability:
		return t.assistant.Generate(ctx, ai.SustainabilityTipsPrompt, 0), nil
	case TipPersonal:
		s, err := t.Streak(userID)
		if err != nil {
			return "", err
		}
		return t.assistant.Generate(ctx, ai.PersonalTipPrompt(s.Streak, s.Achievement.Title), 0), nil
	case TipCommunity:
		posts, err := t.repo.ListPosts(5)
		if err != nil {
			return "", err
		}
		bodies := make([]string, len(posts))
		for i, p := range posts {
			bodies[i] = p.Body
		}
		return t.assistant.Generate(ctx, ai.CommunityDigestPrompt(bodies), 0), nil
	case TipSummary:
		wk, err := t.week(userID)
		if err != nil {
			return "", err
		}
		return t.assistant.Generate(ctx, ai.ProgressSummaryPrompt(wk.stats()), summaryMaxTokens), nil
	default:
		return "", invalid("unknown tip kind %q", kind)
	}
}

// WasteAnalysis is what a waste photo was recognised as.
type WasteAnalysis struct {
	Description  string              `json:"description"`
	Quantity     int                 `json:"quantity"`
	QuantityType models.QuantityType `json:"quantity_type"`
	Estimated    bool                `json:"estimated"`
	Labels       []ai.Label          `json:"labels,omitempty"`
}

// AnalyzeWaste describes a photo of wasted food and estimates its quantity.
func (t *Tracker) AnalyzeWaste(ctx context.Context, image []byte) (*WasteAnalysis, error) {
	mime, err := media.Validate(image)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	a := &WasteAnalysis{QuantityType: models.QuantitySolid}
	a.Description = t.assistant.AnalyzeImage(ctx, image, mime, ai.WasteImageTask)
	if q, ok := ai.ExtractQuantity(a.Description, "g"); ok {
		a.Quantity, a.Estimated = q, true
	} else if q, ok := ai.ExtractQuantity(a.Description, "ml"); ok {
		a.Quantity, a.Estimated = q, true
		a.QuantityType = models.QuantityLiquid
	}
	a.Labels = t.labels(ctx, image)
	return a, nil
}

// MealAnalysis is what a meal photo was recognised as.
type MealAnalysis struct {
	Description string     `json:"description"`
	Nutrition   string     `json:"nutrition"`
	Calories    *int       `json:"calories,omitempty"`
	Labels      []ai.Label `json:"labels,omitempty"`
}

// AnalyzeMeal describes a meal photo, then asks for detailed nutrition.
func (t *Tracker) AnalyzeMeal(ctx context.Context, image []byte) (*MealAnalysis, error) {
	mime, err := media.Validate(image)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	a := &MealAnalysis{}
	a.Description = t.assistant.AnalyzeImage(ctx, image, mime, ai.MealImageTask)
	if cal, ok := ai.ExtractQuantity(a.Description, "calories"); ok {
		a.Calories = &cal
	}
	if ai.IsFallback(a.Description) {
		a.Nutrition = ai.FallbackResponse
	} else {
		a.Nutrition = t.assistant.Generate(ctx, ai.NutritionDetailPrompt(a.Description), 0)
	}
	a.Labels = t.labels(ctx, image)
	return a, nil
}

// AnalyzeGroceryList reviews a photographed grocery list.
func (t *Tracker) AnalyzeGroceryList(ctx context.Context, image []byte) (string, error) {
	mime, err := media.Validate(image)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return t.assistant.AnalyzeGroceryList(ctx, image, mime), nil
}

// labels runs the optional classifier; failures only cost the labels.
func (t *Tracker) labels(ctx context.Context, image []byte) []ai.Label {
	if t.labeler == nil {
		return nil
	}
	labels, err := t.labeler.Labels(ctx, image)
	if err != nil {
		t.logger.Warn("label detection failed", zap.Error(err))
		return nil
	}
	return labels
}

// weekData is the user's activity over the trend window.
type weekData struct {
	since time.Time
	waste []*models.WasteEntry
	meals []*models.Meal
}

func (w *weekData) stats() ai.WeekStats {
	s := ai.WeekStats{WasteEntries: len(w.waste), Meals: len(w.meals)}
	for _, e := range w.waste {
		s.WasteTotal += e.Quantity
	}
	return s
}

func (t *Tracker) week(userID int64) (*weekData, error) {
	wk := &weekData{since: t.today().AddDate(0, 0, -(trendDays - 1))}

	waste, err := t.repo.ListWaste(userID, 0)
	if err != nil {
		return nil, err
	}
	for _, w := range waste {
		if !w.LoggedAt.Before(wk.since) {
			wk.waste = append(wk.waste, w)
		}
	}

	meals, err := t.repo.ListMeals(userID, 0)
	if err != nil {
		return nil, err
	}
	for _, m := range meals {
		if !m.LoggedAt.Before(wk.since) {
			wk.meals = append(wk.meals, m)
		}
	}
	return wk, nil
}

// WeeklyReport renders the user's weekly sustainability report as a PDF.
func (t *Tracker) WeeklyReport(ctx context.Context, userID int64) ([]byte, error) {
	u, err := t.repo.GetUser(userID)
	if err != nil {
		return nil, err
	}
	wk, err := t.week(userID)
	if err != nil {
		return nil, err
	}
	trends, err := t.WeeklyTrends(userID)
	if err != nil {
		return nil, err
	}
	streak, err := t.Streak(userID)
	if err != nil {
		return nil, err
	}

	stats := wk.stats()
	d := &report.Data{
		Username:    u.Username,
		GeneratedAt: t.now().UTC(),
		From:        wk.since,
		To:          t.today(),
		Streak:      streak.Streak,
		Achievement: streak.Achievement.String(),
		Stats: []report.Row{
			{Left: "Food waste entries", Right: fmt.Sprintf("%d", stats.WasteEntries)},
			{Left: "Total waste", Right: fmt.Sprintf("%d g/ml", stats.WasteTotal)},
			{Left: "Meals logged", Right: fmt.Sprintf("%d", stats.Meals)},
		},
	}

	var g errgroup.Group
	g.Go(func() error {
		d.Summary = t.assistant.Generate(ctx, ai.ProgressSummaryPrompt(stats), summaryMaxTokens)
		return nil
	})
	g.Go(func() error {
		d.Insights = t.assistant.Generate(ctx, ai.WeeklyInsightsPrompt(stats), insightsMaxTokens)
		return nil
	})
	g.Go(func() error {
		d.Tips = t.assistant.Generate(ctx, ai.SustainabilityTipsPrompt, 0)
		return nil
	})
	_ = g.Wait()

	for _, day := range trends {
		label := day.Day[5:]
		d.WasteByDay = append(d.WasteByDay, report.Point{Label: label, Value: day.Waste})
		d.MealsByDay = append(d.MealsByDay, report.Point{Label: label, Value: day.Meals})
	}
	for _, w := range wk.waste {
		d.Waste = append(d.Waste, report.Row{
			Left:  w.Item,
			Right: fmt.Sprintf("%d %s (%s)", w.Quantity, w.Unit(), w.LoggedAt.Format(models.DateLayout)),
		})
	}
	for _, m := range wk.meals {
		d.Meals = append(d.Meals, report.Row{
			Left:  m.Description,
			Right: m.LoggedAt.Format(models.DateLayout),
		})
	}

	pdf, err := report.Bytes(d)
	if err != nil {
		return nil, err
	}
	t.logger.Info("rendered weekly report",
		zap.Int64("user_id", userID),
		zap.Int("bytes", len(pdf)))
	return pdf, nil
}
