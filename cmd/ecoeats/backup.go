// ABOUTME: CLI commands for encrypted database snapshots on Charm Cloud.
// ABOUTME: Supports link, unlink, status, push, list, restore, prune, repair, and wipe.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/ecoeats/internal/charm"
	"github.com/spf13/cobra"
)

// backupStore is the Charm KV database that holds snapshots.
const backupStore = "ecoeats"

var backupKeep int

// openBackup connects to the snapshot store on first use.
func openBackup() error {
	if charmClient != nil {
		return nil
	}
	c, err := charm.InitClient()
	if err != nil {
		return fmt.Errorf("failed to initialize charm client: %w", err)
	}
	charmClient = c
	return nil
}

var backupCmd = &cobra.Command{
	Use:     "backup",
	Aliases: []string{"b", "sync"},
	Short:   "Back up ecoeats data to Charm Cloud",
	Long: `Back up ecoeats data to Charm Cloud.

Each push stores a full snapshot of the database (every user, entry, goal,
challenge, post and streak). Snapshots are E2E encrypted with your SSH key
before upload; the server never sees your data.

GETTING STARTED:

  1. Link your device (creates/uses SSH key automatically):
     ecoeats backup link

  2. Push a snapshot:
     ecoeats backup push

  3. On another device, link with the same Charm account and restore:
     ecoeats backup restore latest

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show account info and snapshot count
  push        Upload a snapshot of the database
  list        List snapshots, newest first
  restore     Import a snapshot into the database
  prune       Keep only the newest snapshots
  repair      Repair the local snapshot store (checkpoints WAL, vacuums)
  wipe        Delete all snapshots, local and cloud (destructive)`,
}

var backupLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Link this device to Charm",
	Annotations: map[string]string{skipSetup: "true"},
	Long: `Link this device to your Charm account.

If you don't have a Charm account, one will be created using your SSH key.
If you already have an account, you'll be prompted to link via charm.sh.

Example:
  ecoeats backup link`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		color.Green("\n✓ Device linked to Charm")
		fmt.Println("Run 'ecoeats backup push' to upload your first snapshot.")
		return nil
	},
}

var backupUnlinkCmd = &cobra.Command{
	Use:         "unlink",
	Short:       "Disconnect from Charm",
	Annotations: map[string]string{skipSetup: "true"},
	Long: `Disconnect this device from Charm.

This does not delete your local ecoeats data.
You can link again later with 'ecoeats backup link'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "unlink")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}

		color.Green("✓ Device unlinked from Charm")
		fmt.Println("Your local ecoeats data is preserved.")
		return nil
	},
}

var backupStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show backup status",
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openBackup(); err != nil {
			color.Yellow("Charm client not initialized: %v", err)
			fmt.Println("\nRun 'ecoeats backup link' to connect to Charm.")
			return nil
		}

		id, err := charmClient.ID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Println("\nRun 'ecoeats backup link' to connect to Charm.")
			return nil
		}

		host := os.Getenv("CHARM_HOST")
		if host == "" {
			host = charm.DefaultHost
		}
		fmt.Println("Charm ID:", id)
		fmt.Println("Server:", host)
		fmt.Println()

		snapshots, err := charmClient.ListSnapshots()
		if err != nil {
			return fmt.Errorf("failed to list snapshots: %w", err)
		}

		color.Green("✓ Connected to Charm")
		fmt.Printf("  Snapshots: %d\n", len(snapshots))
		if len(snapshots) > 0 {
			fmt.Printf("  Latest:    %s\n", stamp(snapshots[0].CreatedAt))
		}
		if charmClient.IsReadOnly() {
			color.Yellow("  Read-only: another ecoeats process holds the store")
		}
		return nil
	},
}

var backupPushCmd = &cobra.Command{
	Use:         "push",
	Short:       "Upload a snapshot of the database",
	Annotations: map[string]string{noUser: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openBackup(); err != nil {
			return err
		}
		data, err := db.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to read database: %w", err)
		}
		snap, err := charmClient.PushSnapshot(data)
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}

		counts := data.Counts()
		color.Green("✓ Snapshot %s uploaded", snap.ID)
		fmt.Printf("  %d users, %d waste entries, %d meals, %d goals\n",
			counts["users"], counts["food_waste"], counts["meals"], counts["goals"])
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:         "list",
	Aliases:     []string{"ls"},
	Short:       "List snapshots",
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openBackup(); err != nil {
			return err
		}
		if err := charmClient.Sync(); err != nil {
			color.Yellow("⚠ Sync failed, showing local snapshots: %v", err)
		}
		snapshots, err := charmClient.ListSnapshots()
		if err != nil {
			return fmt.Errorf("failed to list snapshots: %w", err)
		}
		if len(snapshots) == 0 {
			fmt.Println("No snapshots yet. Run 'ecoeats backup push'.")
			return nil
		}
		for _, s := range snapshots {
			fmt.Printf("%s  %s\n", faint.Sprint(s.ID), stamp(s.CreatedAt))
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Import a snapshot into the database",
	Long: `Import a snapshot into the configured database.

The id may be a full snapshot id, a unique prefix, or "latest" (the default).
Users are matched by username and every other record is added, so restore
into an empty database to avoid duplicates.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{noUser: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openBackup(); err != nil {
			return err
		}
		id := "latest"
		if len(args) == 1 {
			id = args[0]
		}
		if err := charmClient.Sync(); err != nil {
			color.Yellow("⚠ Sync failed, using local snapshots: %v", err)
		}
		snap, data, err := charmClient.GetSnapshot(id)
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
		if err := db.ImportData(data); err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
		color.Green("✓ Restored snapshot %s from %s", snap.ID, stamp(snap.CreatedAt))
		return nil
	},
}

var backupPruneCmd = &cobra.Command{
	Use:         "prune",
	Short:       "Delete all but the newest snapshots",
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openBackup(); err != nil {
			return err
		}
		removed, err := charmClient.PruneSnapshots(backupKeep)
		if err != nil {
			return fmt.Errorf("prune failed: %w", err)
		}
		color.Green("✓ Removed %d snapshots (kept %d)", removed, backupKeep)
		return nil
	},
}

var backupRepairCmd = &cobra.Command{
	Use:         "repair",
	Short:       "Repair the local snapshot store",
	Annotations: map[string]string{skipSetup: "true"},
	Long: `Repair the local snapshot store by checkpointing WAL, removing SHM files,
checking integrity, and vacuuming.

Use this when you encounter lock errors or corruption.
Run with --force to attempt recovery even if integrity checks fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		fmt.Println("Repairing snapshot store...")
		result, err := kv.Repair(backupStore, force)

		if result.WalCheckpointed {
			color.Green("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			color.Green("  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			color.Green("  ✓ Integrity check passed")
		} else {
			color.Red("  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			color.Green("  ✓ Database vacuumed")
		}

		if err != nil {
			if !force {
				color.Yellow("\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		color.Green("\n✓ Repair complete")
		return nil
	},
}

var backupWipeCmd = &cobra.Command{
	Use:         "wipe",
	Short:       "Delete all snapshots",
	Annotations: map[string]string{skipSetup: "true"},
	Long: `Delete every snapshot, local and in the cloud.

This is a DESTRUCTIVE operation. Your ecoeats database itself is not touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will PERMANENTLY DELETE all ecoeats snapshots, local and cloud.")
		fmt.Print("Type 'wipe' to confirm: ")
		var confirm string
		_, _ = fmt.Scanln(&confirm)
		if confirm != "wipe" {
			fmt.Println("Canceled.")
			return nil
		}

		result, err := kv.Wipe(backupStore)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.Green("✓ Snapshots wiped")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

func init() {
	backupRepairCmd.Flags().Bool("force", false, "Attempt recovery even if integrity checks fail")
	backupPruneCmd.Flags().IntVarP(&backupKeep, "keep", "k", 5, "number of snapshots to keep")

	backupCmd.AddCommand(backupLinkCmd)
	backupCmd.AddCommand(backupUnlinkCmd)
	backupCmd.AddCommand(backupStatusCmd)
	backupCmd.AddCommand(backupPushCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupPruneCmd)
	backupCmd.AddCommand(backupRepairCmd)
	backupCmd.AddCommand(backupWipeCmd)
	rootCmd.AddCommand(backupCmd)
}
