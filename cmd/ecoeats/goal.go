// ABOUTME: CLI commands for goals.
// ABOUTME: Setting a goal generates recommendations and an estimated saving.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"g"},
	Short:   "Set and track goals",
	Long: `Set and track goals.

GOAL TYPES:

  waste     Food Waste Reduction
  eating    Healthy Eating

EXAMPLES:

  ecoeats goal set waste "Stop throwing away bread"
  ecoeats goal set eating "Two vegetarian dinners a week"
  ecoeats goal list
  ecoeats goal complete 2`,
}

var goalSetCmd = &cobra.Command{
	Use:   "set <type> <goal>",
	Short: "Set a new goal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := trk.SetGoal(cmd.Context(), currentUser.ID, args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to set goal: %w", err)
		}

		color.Green("✓ Goal set: %s", g.Goal)
		fmt.Printf("  %s %s\n", faint.Sprintf("#%d", g.ID), g.Type)
		fmt.Printf("\nRecommendations:\n%s\n", g.Recommendations)
		fmt.Printf("\nPotential savings:\n%s\n", g.PotentialSavings)
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		goals, err := trk.ListGoals(currentUser.ID)
		if err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}
		if len(goals) == 0 {
			fmt.Println("No goals set yet.")
			return nil
		}

		for _, g := range goals {
			mark := "○"
			if g.Completed {
				mark = color.GreenString("✓")
			}
			saving := ""
			if s := g.Savings(); s > 0 {
				saving = fmt.Sprintf("~$%.2f", s)
			}
			fmt.Printf("%s %s  %s  %s %s\n",
				mark,
				faint.Sprint(padRight(fmt.Sprintf("#%d", g.ID), 6)),
				padRight(string(g.Type), 20),
				padRight(truncate(g.Goal, 40), 40),
				saving)
		}
		return nil
	},
}

var goalCompleteCmd = &cobra.Command{
	Use:     "complete <id>",
	Aliases: []string{"done"},
	Short:   "Mark a goal as completed",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		g, err := trk.CompleteGoal(currentUser.ID, id)
		if err != nil {
			return fmt.Errorf("failed to complete goal: %w", err)
		}
		color.Green("✓ Completed goal: %s", g.Goal)
		return nil
	},
}

func init() {
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalCompleteCmd)
	rootCmd.AddCommand(goalCmd)
}
