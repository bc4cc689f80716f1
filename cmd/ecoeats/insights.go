// ABOUTME: CLI commands for streaks, the dashboard, trends and tips.
// ABOUTME: Read-mostly views over the user's history plus generated copy.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/ecoeats/internal/tracker"
	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your check-in streak",
	Long: `Show your check-in streak and achievement.

Every day you check in extends the streak; missing a day resets it.

ACHIEVEMENTS:

  🌾 Beginner              0+ days
  🍃 Eco Novice            5+ days
  🌱 Green Enthusiast     10+ days
  🌟 Sustainability Star  20+ days
  🏆 Eco Warrior          30+ days`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := trk.Streak(currentUser.ID)
		if err != nil {
			return fmt.Errorf("failed to load streak: %w", err)
		}
		printStreak(info)
		return nil
	},
}

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Check in for today",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := trk.CheckIn(currentUser.ID)
		if err != nil {
			return fmt.Errorf("failed to check in: %w", err)
		}
		color.Green("✓ Checked in")
		printStreak(info)
		return nil
	},
}

func printStreak(info *tracker.StreakInfo) {
	fmt.Printf("  Streak: %d days\n", info.Streak)
	fmt.Printf("  Achievement: %s\n", info.Achievement)
}

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d"},
	Short:   "Show your dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := trk.Dashboard(cmd.Context(), currentUser.ID)
		if err != nil {
			return fmt.Errorf("failed to build dashboard: %w", err)
		}

		s := d.Summary
		color.New(color.Bold).Printf("EcoEats · %s\n\n", currentUser.Username)
		fmt.Printf("  Waste logged:   %d items (%d g, %d ml)\n", s.WasteItems, s.WasteGrams, s.WasteMillilitres)
		fmt.Printf("  Meals logged:   %d\n", s.Meals)
		fmt.Printf("  Goals:          %d of %d completed\n", s.GoalsCompleted, s.GoalsTotal)
		fmt.Printf("  Challenges:     %d completed\n", s.ChallengesCompleted)
		fmt.Printf("  Community:      %d posts\n", s.Posts)
		fmt.Printf("  Streak:         %d days  %s\n", d.Streak.Streak, d.Streak.Achievement)
		fmt.Printf("\n%s %s\n", color.GreenString("Tip:"), d.QuickTip)
		fmt.Printf("%s %s\n", color.CyanString("Thought of the day:"), d.Quote)
		return nil
	},
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show the last 7 days of waste and meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := trk.WeeklyTrends(currentUser.ID)
		if err != nil {
			return fmt.Errorf("failed to load trends: %w", err)
		}

		peak := 1
		for _, d := range days {
			if d.Waste > peak {
				peak = d.Waste
			}
		}

		fmt.Printf("%s  %s  %s\n", padRight("Day", 10), padRight("Waste", 8), "Meals")
		for _, d := range days {
			bar := strings.Repeat("█", d.Waste*20/peak)
			fmt.Printf("%s  %s  %s  %s\n",
				d.Day,
				padRight(fmt.Sprintf("%d", d.Waste), 8),
				padRight(fmt.Sprintf("%d", d.Meals), 5),
				color.YellowString(bar))
		}
		return nil
	},
}

var tipCmd = &cobra.Command{
	Use:   "tip [kind]",
	Short: "Get a generated tip",
	Long: `Get a piece of generated advice.

KINDS:

  quick            Short food waste tip (default)
  quote            Thought of the day
  notification     Reminder-style nudge
  personal         Tip based on your recent waste and meals
  sustainability   Sustainability practice
  community        Digest of recent community posts
  summary          Summary of your progress this week`,
	Args: cobra.MaximumNArgs(1),
	ValidArgs: func() []string {
		kinds := make([]string, len(tracker.TipKinds))
		for i, k := range tracker.TipKinds {
			kinds[i] = string(k)
		}
		return kinds
	}(),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		kind, ok := tracker.ParseTipKind(name)
		if !ok {
			return fmt.Errorf("unknown tip kind: %s", name)
		}
		text, err := trk.Tip(cmd.Context(), currentUser.ID, kind)
		if err != nil {
			return fmt.Errorf("failed to get tip: %w", err)
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(tipCmd)
}
