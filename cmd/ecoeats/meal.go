// ABOUTME: CLI commands for logging meals.
// ABOUTME: Each logged meal gets a generated nutrition summary.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/ecoeats/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	mealQuantity int
	mealImage    string
	mealLimit    int
)

var mealCmd = &cobra.Command{
	Use:     "meal",
	Aliases: []string{"m"},
	Short:   "Log and review meals",
	Long: `Log and review meals. Every new meal is sent to the AI assistant for a
short nutrition summary, which is stored with it.

EXAMPLES:

  ecoeats meal add "lentil soup with rye bread"
  ecoeats meal add "oat porridge" -q 1 --image breakfast.jpg
  ecoeats meal list
  ecoeats meal show 7
  ecoeats meal delete 7`,
}

var mealAddCmd = &cobra.Command{
	Use:     "add <description>",
	Aliases: []string{"a"},
	Short:   "Log a meal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := tracker.MealInput{Description: args[0]}
		if cmd.Flags().Changed("quantity") {
			q := mealQuantity
			in.Quantity = &q
		}
		if mealImage != "" {
			var err error
			if in.Image, err = readImage(mealImage); err != nil {
				return err
			}
		}

		m, err := trk.LogMeal(cmd.Context(), currentUser.ID, in)
		if err != nil {
			return fmt.Errorf("failed to log meal: %w", err)
		}

		color.Green("✓ Logged meal")
		fmt.Printf("  %s %s\n", faint.Sprintf("#%d", m.ID), m.Description)
		fmt.Printf("\n%s\n", m.Nutrition)
		return nil
	},
}

var mealListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List logged meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		meals, err := trk.ListMeals(currentUser.ID, mealLimit)
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}
		if len(meals) == 0 {
			fmt.Println("No meals logged yet.")
			return nil
		}

		for _, m := range meals {
			portion := ""
			if m.Quantity != nil {
				portion = fmt.Sprintf("x%d", *m.Quantity)
			}
			fmt.Printf("%s  %s  %s %s\n",
				faint.Sprint(padRight(fmt.Sprintf("#%d", m.ID), 6)),
				stamp(m.LoggedAt),
				padRight(truncate(m.Description, 40), 40),
				portion)
		}
		return nil
	},
}

var mealShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a meal with its nutrition summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		m, err := trk.GetMeal(cmd.Context(), currentUser.ID, id)
		if err != nil {
			return fmt.Errorf("failed to get meal: %w", err)
		}

		fmt.Printf("%s %s\n", faint.Sprintf("#%d", m.ID), m.Description)
		fmt.Printf("  Logged: %s\n", stamp(m.LoggedAt))
		if m.Quantity != nil {
			fmt.Printf("  Portions: %d\n", *m.Quantity)
		}
		if m.HasImage {
			fmt.Printf("  Photo: %d bytes\n", len(m.Image))
		}
		fmt.Printf("\n%s\n", m.Nutrition)
		return nil
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm", "del"},
	Short:   "Delete a meal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := trk.DeleteMeal(currentUser.ID, id); err != nil {
			return fmt.Errorf("failed to delete meal: %w", err)
		}
		color.Green("✓ Deleted meal %d", id)
		return nil
	},
}

func init() {
	mealAddCmd.Flags().IntVarP(&mealQuantity, "quantity", "q", 0, "number of portions")
	mealAddCmd.Flags().StringVarP(&mealImage, "image", "i", "", "path to a JPEG or PNG photo")
	mealListCmd.Flags().IntVarP(&mealLimit, "limit", "n", 20, "max number of results")

	mealCmd.AddCommand(mealAddCmd)
	mealCmd.AddCommand(mealListCmd)
	mealCmd.AddCommand(mealShowCmd)
	mealCmd.AddCommand(mealDeleteCmd)
	rootCmd.AddCommand(mealCmd)
}
