// ABOUTME: CLI commands for weekly sustainability challenges.
// ABOUTME: Shows the active challenge, creating one when the last has ended.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/ecoeats/internal/models"
	"github.com/spf13/cobra"
)

var challengeLimit int

var challengeCmd = &cobra.Command{
	Use:     "challenge",
	Aliases: []string{"c"},
	Short:   "Show this week's challenge",
	Long: `Show the active 7-day challenge. When there is none, or the last one has
ended, a new challenge is generated and started today.

EXAMPLES:

  ecoeats challenge                 # Show or start the current challenge
  ecoeats challenge progress 3 60   # Record 60% progress on challenge 3
  ecoeats challenge complete 3      # Mark challenge 3 as done
  ecoeats challenge list            # Past challenges`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, created, err := trk.CurrentChallenge(cmd.Context(), currentUser.ID)
		if err != nil {
			return fmt.Errorf("failed to load challenge: %w", err)
		}
		if created {
			color.Green("✓ New challenge started")
		}
		printChallenge(c)
		return nil
	},
}

var challengeProgressCmd = &cobra.Command{
	Use:   "progress <id> <percent>",
	Short: "Record progress on a challenge",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		percent, err := strconv.Atoi(strings.TrimSuffix(args[1], "%"))
		if err != nil {
			return fmt.Errorf("invalid progress: %s", args[1])
		}
		c, err := trk.ChallengeProgress(currentUser.ID, id, percent)
		if err != nil {
			return fmt.Errorf("failed to record progress: %w", err)
		}
		color.Green("✓ Progress recorded")
		printChallenge(c)
		return nil
	},
}

var challengeCompleteCmd = &cobra.Command{
	Use:     "complete <id>",
	Aliases: []string{"done"},
	Short:   "Mark a challenge as completed",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := trk.CompleteChallenge(currentUser.ID, id)
		if err != nil {
			return fmt.Errorf("failed to complete challenge: %w", err)
		}
		color.Green("✓ Challenge completed")
		printChallenge(c)
		return nil
	},
}

var challengeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List challenges",
	RunE: func(cmd *cobra.Command, args []string) error {
		challenges, err := trk.ListChallenges(currentUser.ID, challengeLimit)
		if err != nil {
			return fmt.Errorf("failed to list challenges: %w", err)
		}
		if len(challenges) == 0 {
			fmt.Println("No challenges yet. Run 'ecoeats challenge' to start one.")
			return nil
		}
		for _, c := range challenges {
			mark := "○"
			if c.Completed {
				mark = color.GreenString("✓")
			}
			fmt.Printf("%s %s  %s → %s  %3d%%  %s\n",
				mark,
				faint.Sprint(padRight(fmt.Sprintf("#%d", c.ID), 6)),
				c.StartDate.Format(models.DateLayout),
				c.EndDate.Format(models.DateLayout),
				c.Progress,
				truncate(firstLine(c.Challenge), 50))
		}
		return nil
	},
}

func printChallenge(c *models.Challenge) {
	fmt.Printf("\n%s %s\n", faint.Sprintf("#%d", c.ID), c.Challenge)
	fmt.Printf("\n  %s → %s", c.StartDate.Format(models.DateLayout), c.EndDate.Format(models.DateLayout))
	if c.Completed {
		fmt.Println("  completed")
		return
	}
	fmt.Printf("  %d days left  %d%% done\n", c.DaysRemaining(trk.Now()), c.Progress)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func init() {
	challengeListCmd.Flags().IntVarP(&challengeLimit, "limit", "n", 10, "max number of results")

	challengeCmd.AddCommand(challengeProgressCmd)
	challengeCmd.AddCommand(challengeCompleteCmd)
	challengeCmd.AddCommand(challengeListCmd)
	rootCmd.AddCommand(challengeCmd)
}
