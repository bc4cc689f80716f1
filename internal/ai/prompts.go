// ABOUTME: Prompt templates for every piece of generated copy.
// ABOUTME: Each builder returns the exact text sent to the model.
package ai

import (
	"fmt"
	"strings"
)

// Fixed prompts.
const (
	QuickTipPrompt           = "Provide a quick, engaging tip for reducing food waste and eating healthier."
	QuotePrompt              = "Generate a short, inspiring quote about sustainability or healthy eating."
	NotificationPrompt       = "Generate a short, engaging notification about reducing food waste."
	ChallengePrompt          = "Create an engaging weekly sustainability challenge focused on reducing food waste and promoting healthy eating. Include specific, measurable goals."
	SustainabilityTipsPrompt = "Provide 3 actionable tips for reducing food waste and eating more sustainably."
	CommunityPrompt          = "Summarize recent community activity and provide an encouraging message for community engagement."
	WasteImageTask           = "Identify the food item and estimate its quantity in grams or ml."
	MealImageTask            = "Identify the meal components and estimate their quantities, including a total calorie estimate."
	GroceryListTask          = "Analyze this grocery list image and provide sustainability recommendations. Consider packaging, local vs. imported items, and potential for food waste."
)

// NutritionPrompt asks for a short summary of a logged meal.
func NutritionPrompt(meal string) string {
	return fmt.Sprintf("Provide a brief, engaging nutritional summary for this meal: %s", meal)
}

// NutritionDetailPrompt expands an image analysis into nutrition facts.
func NutritionDetailPrompt(analysis string) string {
	return fmt.Sprintf("Based on this meal analysis: %s, provide detailed nutritional information including calories, protein, carbs, and fats.", analysis)
}

// RecommendationsPrompt asks for advice toward a goal.
func RecommendationsPrompt(goalType, goal string) string {
	return fmt.Sprintf("Provide personalized recommendations for achieving this %s goal: %s", goalType, goal)
}

// SavingsPrompt asks for an estimate of money saved by a goal.
func SavingsPrompt(goalType, goal string) string {
	return fmt.Sprintf("Estimate the potential money saved by achieving this %s goal: %s", goalType, goal)
}

// PersonalTipPrompt tailors a tip to the user's streak.
func PersonalTipPrompt(streak int, achievement string) string {
	return fmt.Sprintf(`Generate a personalized sustainability tip for a user who:
- Has a %d-day streak
- Current achievement level: %s
Make it specific and actionable.`, streak, achievement)
}

// WeekStats feeds the weekly summary and insights prompts.
type WeekStats struct {
	WasteEntries int
	WasteTotal   int
	Meals        int
}

// ProgressSummaryPrompt asks for an encouraging summary of the week.
func ProgressSummaryPrompt(s WeekStats) string {
	return fmt.Sprintf(`Generate a brief, encouraging summary of progress in reducing food waste and eating healthy, based on:
- Food waste entries: %d
- Total waste quantity: %d g/ml
- Meals logged: %d`, s.WasteEntries, s.WasteTotal, s.Meals)
}

// WeeklyInsightsPrompt asks for trends and recommendations for the week.
func WeeklyInsightsPrompt(s WeekStats) string {
	return fmt.Sprintf(`Generate insights based on this week's data:
- Food waste entries: %d
- Total waste quantity: %dg/ml
- Meals logged: %d
Provide encouragement and specific suggestions for improvement.`, s.WasteEntries, s.WasteTotal, s.Meals)
}

// CommunityDigestPrompt summarises recent posts.
func CommunityDigestPrompt(posts []string) string {
	if len(posts) == 0 {
		return CommunityPrompt
	}
	var sb strings.Builder
	sb.WriteString(CommunityPrompt)
	sb.WriteString("\nRecent posts:\n")
	for _, p := range posts {
		sb.WriteString("- ")
		sb.WriteString(strings.ReplaceAll(p, "\n", " "))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
