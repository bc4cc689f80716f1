// ABOUTME: Install Claude Code skill for ecoeats
// ABOUTME: Checks the embedded skill against the MCP tool catalogue, then installs it.

package main

import (
	"bufio"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/ecoeats/internal/mcp"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

const skillName = "ecoeats"

var (
	skillSkipConfirm bool
	skillDir         string
)

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the ecoeats skill for Claude Code.

This copies the skill definition to ~/.claude/skills/ecoeats/ (or to
<dir>/ecoeats/ with --dir, e.g. --dir .claude/skills for a single project)
so Claude Code knows when to log waste and meals, and which tools to use.

The skill teaches Claude these MCP tools (run 'ecoeats mcp' as a server):

%s`,
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return installSkill()
	},
}

func init() {
	installSkillCmd.Long = fmt.Sprintf(installSkillCmd.Long, toolList(true))
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	installSkillCmd.Flags().StringVarP(&skillDir, "dir", "d", "", "Skills directory (default ~/.claude/skills)")
	rootCmd.AddCommand(installSkillCmd)
}

// skillPath returns where SKILL.md is written.
func skillPath() (string, error) {
	root := skillDir
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		root = filepath.Join(home, ".claude", "skills")
	}
	return filepath.Join(root, skillName, "SKILL.md"), nil
}

// checkSkill reports catalogued tools the skill never mentions.
func checkSkill(content []byte) error {
	var missing []string
	for _, t := range mcp.Tools() {
		if !strings.Contains(string(content), t.QualifiedName()) {
			missing = append(missing, t.QualifiedName())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("skill does not document %d tool(s): %s", len(missing), strings.Join(missing, ", "))
	}
	return nil
}

func installSkill() error {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}
	if err := checkSkill(content); err != nil {
		return err
	}

	path, err := skillPath()
	if err != nil {
		return err
	}

	fmt.Println("┌─────────────────────────────────────────────────────────────┐")
	fmt.Println("│             EcoEats Skill for Claude Code                   │")
	fmt.Println("└─────────────────────────────────────────────────────────────┘")
	fmt.Println()
	fmt.Println("This will install the ecoeats skill, enabling Claude Code to")
	fmt.Println("track food waste and meals with these tools:")
	fmt.Println()
	fmt.Print(toolList(true))
	fmt.Println()
	fmt.Println("Destination:")
	fmt.Printf("  %s\n", path)
	fmt.Println()

	if _, err := os.Stat(path); err == nil {
		fmt.Println("Note: A skill file already exists and will be overwritten.")
		fmt.Println()
	}

	if !skillSkipConfirm {
		fmt.Print("Install the ecoeats skill? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Installation canceled.")
			return nil
		}
		fmt.Println()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	fmt.Println("✓ Installed ecoeats skill successfully!")
	fmt.Println()
	fmt.Println("Register the MCP server if you have not yet:")
	fmt.Println("  claude mcp add ecoeats -- ecoeats mcp")
	fmt.Println("Then try asking Claude: \"I threw out 200g of bread\" or \"How was my week?\"")
	return nil
}
