// ABOUTME: CLI commands for managing accounts.
// ABOUTME: Accounts need a password before they can log in to the HTTP API.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var userPassword string

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
	Long: `Manage ecoeats accounts.

The CLI and MCP server act as one account, chosen by --user, the config
username or $USER, and create it on first use. Accounts only need a password
to log in to the HTTP API started by 'ecoeats serve'.

EXAMPLES:

  ecoeats user list
  ecoeats user add alice --password s3cret!
  ecoeats user passwd alice            # Prompts for the new password`,
}

var userListCmd = &cobra.Command{
	Use:         "list",
	Aliases:     []string{"ls"},
	Short:       "List accounts",
	Annotations: map[string]string{noUser: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := db.ListUsers()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		if len(users) == 0 {
			fmt.Println("No users yet.")
			return nil
		}
		for _, u := range users {
			login := faint.Sprint("no password")
			if u.CanLogin() {
				login = color.GreenString("can log in")
			}
			fmt.Printf("%s  %s  %s\n",
				faint.Sprint(padRight(fmt.Sprintf("#%d", u.ID), 6)),
				padRight(u.Username, 24),
				login)
		}
		return nil
	},
}

var userAddCmd = &cobra.Command{
	Use:         "add <username>",
	Short:       "Create an account",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{noUser: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if userPassword == "" {
			u, err := trk.EnsureUser(args[0])
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			color.Green("✓ User %s ready", u.Username)
			fmt.Println("  Set a password with 'ecoeats user passwd' to allow API login.")
			return nil
		}

		u, err := trk.Register(args[0], userPassword)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		color.Green("✓ Created user %s", u.Username)
		return nil
	},
}

var userPasswdCmd = &cobra.Command{
	Use:         "passwd <username>",
	Short:       "Set an account password",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{noUser: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		password := userPassword
		if password == "" {
			fmt.Print("New password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		u, err := trk.SetPassword(args[0], password)
		if err != nil {
			return fmt.Errorf("failed to set password: %w", err)
		}
		color.Green("✓ Password set for %s", u.Username)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVarP(&userPassword, "password", "p", "", "password for API login")
	userPasswdCmd.Flags().StringVarP(&userPassword, "password", "p", "", "new password (prompted when omitted)")

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userPasswdCmd)
	rootCmd.AddCommand(userCmd)
}
