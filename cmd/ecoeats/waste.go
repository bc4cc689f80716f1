// ABOUTME: CLI commands for logging and reviewing food waste.
// ABOUTME: Supports add, list, show, and delete with optional photos.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/ecoeats/internal/models"
	"github.com/harperreed/ecoeats/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	wasteLiquid bool
	wasteType   string
	wasteImage  string
	wasteLimit  int
	wastePhoto  string
)

var wasteCmd = &cobra.Command{
	Use:     "waste",
	Aliases: []string{"w"},
	Short:   "Log and review wasted food",
	Long: `Log and review food you threw away.

Solid waste is measured in grams, liquid waste in millilitres.

EXAMPLES:

  ecoeats waste add "stale bread" 200
  ecoeats waste add milk 250 --liquid
  ecoeats waste add bananas 300 --image bananas.jpg
  ecoeats waste list -n 10
  ecoeats waste show 4
  ecoeats waste delete 4`,
}

var wasteAddCmd = &cobra.Command{
	Use:     "add <item> <quantity>",
	Aliases: []string{"a"},
	Short:   "Log wasted food",
	Long: `Log an item of wasted food.

The quantity is in grams unless --liquid (or --type liquid) is given, in
which case it is in millilitres. Attach a JPEG or PNG with --image.

Examples:
  ecoeats waste add "stale bread" 200
  ecoeats waste add "orange juice" 330 --liquid`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity: %s", args[1])
		}

		in := tracker.WasteInput{
			Item:         args[0],
			Quantity:     quantity,
			QuantityType: wasteType,
		}
		if wasteLiquid {
			in.QuantityType = string(models.QuantityLiquid)
		}
		if wasteImage != "" {
			if in.Image, err = readImage(wasteImage); err != nil {
				return err
			}
		}

		w, err := trk.LogWaste(cmd.Context(), currentUser.ID, in)
		if err != nil {
			return fmt.Errorf("failed to log waste: %w", err)
		}

		color.Green("✓ Logged %s", w.Item)
		fmt.Printf("  %s %d %s\n", faint.Sprintf("#%d", w.ID), w.Quantity, w.Unit())
		if w.HasImage {
			fmt.Println("  photo attached")
		}
		return nil
	},
}

var wasteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List logged waste",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := trk.ListWaste(currentUser.ID, wasteLimit)
		if err != nil {
			return fmt.Errorf("failed to list waste: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No waste logged yet.")
			return nil
		}

		for _, w := range entries {
			photo := ""
			if w.HasImage {
				photo = "📷"
			}
			fmt.Printf("%s  %s  %s %s %s\n",
				faint.Sprint(padRight(fmt.Sprintf("#%d", w.ID), 6)),
				stamp(w.LoggedAt),
				padRight(truncate(w.Item, 30), 30),
				padRight(fmt.Sprintf("%d %s", w.Quantity, w.Unit()), 10),
				photo)
		}
		return nil
	},
}

var wasteShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one waste entry",
	Long: `Show one waste entry. With --photo, write its image to a file.

Examples:
  ecoeats waste show 4
  ecoeats waste show 4 --photo bread.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		w, err := trk.GetWaste(cmd.Context(), currentUser.ID, id)
		if err != nil {
			return fmt.Errorf("failed to get waste entry: %w", err)
		}

		fmt.Printf("%s %s\n", faint.Sprintf("#%d", w.ID), w.Item)
		fmt.Printf("  Quantity: %d %s (%s)\n", w.Quantity, w.Unit(), w.QuantityType)
		fmt.Printf("  Logged:   %s\n", stamp(w.LoggedAt))
		if !w.HasImage {
			return nil
		}
		if wastePhoto == "" {
			fmt.Printf("  Photo:    %d bytes (use --photo to save)\n", len(w.Image))
			return nil
		}
		if err := os.WriteFile(wastePhoto, w.Image, 0600); err != nil {
			return fmt.Errorf("failed to write photo: %w", err)
		}
		color.Green("✓ Saved photo to %s", wastePhoto)
		return nil
	},
}

var wasteDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm", "del"},
	Short:   "Delete a waste entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := trk.DeleteWaste(currentUser.ID, id); err != nil {
			return fmt.Errorf("failed to delete waste entry: %w", err)
		}
		color.Green("✓ Deleted waste entry %d", id)
		return nil
	},
}

func init() {
	wasteAddCmd.Flags().BoolVarP(&wasteLiquid, "liquid", "l", false, "quantity is in millilitres")
	wasteAddCmd.Flags().StringVarP(&wasteType, "type", "t", "", "quantity type: solid or liquid")
	wasteAddCmd.Flags().StringVarP(&wasteImage, "image", "i", "", "path to a JPEG or PNG photo")
	wasteListCmd.Flags().IntVarP(&wasteLimit, "limit", "n", 20, "max number of results")
	wasteShowCmd.Flags().StringVar(&wastePhoto, "photo", "", "write the attached photo to this file")

	wasteCmd.AddCommand(wasteAddCmd)
	wasteCmd.AddCommand(wasteListCmd)
	wasteCmd.AddCommand(wasteShowCmd)
	wasteCmd.AddCommand(wasteDeleteCmd)
	rootCmd.AddCommand(wasteCmd)
}
