// ABOUTME: CLI commands for the community feed.
// ABOUTME: Posts are shared across every user and can be liked.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var postLimit int

var postCmd = &cobra.Command{
	Use:     "post",
	Aliases: []string{"p", "community"},
	Short:   "Share and read community posts",
	Long: `Share tips with other EcoEats users and read what they posted.

EXAMPLES:

  ecoeats post add "Freeze bread the day you buy it!"
  ecoeats post list
  ecoeats post like 12`,
}

var postAddCmd = &cobra.Command{
	Use:     "add <text>",
	Aliases: []string{"a"},
	Short:   "Share a post",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := trk.AddPost(currentUser.ID, args[0])
		if err != nil {
			return fmt.Errorf("failed to add post: %w", err)
		}
		color.Green("✓ Posted")
		fmt.Printf("  %s %s\n", faint.Sprintf("#%d", p.ID), truncate(p.Body, 60))
		return nil
	},
}

var postListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		posts, err := trk.ListPosts(postLimit)
		if err != nil {
			return fmt.Errorf("failed to list posts: %w", err)
		}
		if len(posts) == 0 {
			fmt.Println("No posts yet. Be the first!")
			return nil
		}
		for _, p := range posts {
			fmt.Printf("%s  %s  %s  ♥ %d\n  %s\n\n",
				faint.Sprint(padRight(fmt.Sprintf("#%d", p.ID), 6)),
				color.CyanString(p.Author),
				stamp(p.CreatedAt),
				p.Likes,
				p.Body)
		}
		return nil
	},
}

var postLikeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		likes, err := trk.LikePost(id)
		if err != nil {
			return fmt.Errorf("failed to like post: %w", err)
		}
		color.Green("✓ Liked post %d (♥ %d)", id, likes)
		return nil
	},
}

func init() {
	postListCmd.Flags().IntVarP(&postLimit, "limit", "n", 20, "max number of results")

	postCmd.AddCommand(postAddCmd)
	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postLikeCmd)
	rootCmd.AddCommand(postCmd)
}
