// ABOUTME: CLI commands for photo analysis and the weekly PDF report.
// ABOUTME: Analysis only describes an image; nothing is stored.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/ecoeats/internal/ai"
	"github.com/harperreed/ecoeats/internal/report"
	"github.com/spf13/cobra"
)

var reportOutput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Describe a food photo",
	Long: `Describe a food photo with the AI assistant's vision model.

Nothing is logged; use the suggested values with 'waste add' or 'meal add'.

EXAMPLES:

  ecoeats analyze waste leftovers.jpg
  ecoeats analyze meal dinner.png
  ecoeats analyze grocery list.jpg`,
}

var analyzeWasteCmd = &cobra.Command{
	Use:   "waste <image>",
	Short: "Identify wasted food and estimate its quantity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := readImage(args[0])
		if err != nil {
			return err
		}
		a, err := trk.AnalyzeWaste(cmd.Context(), image)
		if err != nil {
			return fmt.Errorf("failed to analyze image: %w", err)
		}

		fmt.Println(a.Description)
		if a.Estimated {
			color.Green("\nEstimated quantity: %d %s", a.Quantity, a.QuantityType.Unit())
		}
		printLabels(a.Labels)
		return nil
	},
}

var analyzeMealCmd = &cobra.Command{
	Use:   "meal <image>",
	Short: "Identify a meal and estimate its nutrition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := readImage(args[0])
		if err != nil {
			return err
		}
		a, err := trk.AnalyzeMeal(cmd.Context(), image)
		if err != nil {
			return fmt.Errorf("failed to analyze image: %w", err)
		}

		fmt.Println(a.Description)
		fmt.Printf("\n%s\n", a.Nutrition)
		if a.Calories != nil {
			color.Green("\nEstimated calories: %d", *a.Calories)
		}
		printLabels(a.Labels)
		return nil
	},
}

var analyzeGroceryCmd = &cobra.Command{
	Use:   "grocery <image>",
	Short: "Suggest meals from a photo of a grocery list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := readImage(args[0])
		if err != nil {
			return err
		}
		text, err := trk.AnalyzeGroceryList(cmd.Context(), image)
		if err != nil {
			return fmt.Errorf("failed to analyze image: %w", err)
		}
		fmt.Println(text)
		return nil
	},
}

func printLabels(labels []ai.Label) {
	if len(labels) == 0 {
		return
	}
	fmt.Println()
	faint.Println("Detected:")
	for _, l := range labels {
		faint.Printf("  %s (%.0f%%)\n", l.Name, l.Confidence)
	}
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the weekly PDF report",
	Long: `Generate a PDF report of the last 7 days: totals, daily charts, a
generated summary, insights and tips.

Examples:
  ecoeats report                  # Writes EcoEats_Report_YYYYMMDD.pdf
  ecoeats report -o week.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pdf, err := trk.WeeklyReport(cmd.Context(), currentUser.ID)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}

		path := reportOutput
		if path == "" {
			path = report.Filename(trk.Now())
		}
		if err := os.WriteFile(path, pdf, 0600); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		color.Green("✓ Report written to %s", path)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file (default: EcoEats_Report_<date>.pdf)")

	analyzeCmd.AddCommand(analyzeWasteCmd)
	analyzeCmd.AddCommand(analyzeMealCmd)
	analyzeCmd.AddCommand(analyzeGroceryCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
}
