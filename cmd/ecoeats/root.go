// ABOUTME: Root Cobra command for ecoeats CLI.
// ABOUTME: Builds config, logger, storage, AI and tracker in PersistentPre/PostRunE.
package main

import (
	"context"
	"fmt"

	"github.com/harperreed/ecoeats/internal/ai"
	"github.com/harperreed/ecoeats/internal/charm"
	"github.com/harperreed/ecoeats/internal/config"
	"github.com/harperreed/ecoeats/internal/logging"
	"github.com/harperreed/ecoeats/internal/models"
	"github.com/harperreed/ecoeats/internal/storage"
	"github.com/harperreed/ecoeats/internal/tracker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// skipSetup marks commands that run without opening the database.
const skipSetup = "skip-setup"

// noUser marks commands that do not act on behalf of a user.
const noUser = "no-user"

var (
	cfg         *config.Config
	logger      *zap.Logger
	db          *storage.DB
	assistant   *ai.Assistant
	trk         *tracker.Tracker
	currentUser *models.User
	charmClient *charm.Client

	userFlag    string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "ecoeats",
	Short: "Food waste and healthy eating tracker",
	Long: `EcoEats tracks the food you throw away and the meals you eat, and uses an
AI assistant to turn that history into tips, goals and weekly challenges.

WHAT IT TRACKS:

  Waste       item, quantity in grams (solid) or millilitres (liquid), photo
  Meals       description, portion, generated nutrition summary, photo
  Goals       food waste reduction or healthy eating, with recommendations
  Challenges  one active 7-day sustainability challenge at a time
  Community   short posts shared by every user, with likes
  Streaks     consecutive days with a check-in, with achievements

QUICK START:

  $ ecoeats waste add "stale bread" 200       # Log 200 g of wasted bread
  $ ecoeats waste add milk 250 --liquid       # Log 250 ml of milk
  $ ecoeats meal add "lentil soup" -q 1       # Log a meal (nutrition is generated)
  $ ecoeats dashboard                         # Counters, streak and today's tip
  $ ecoeats trends                            # Last 7 days of waste and meals
  $ ecoeats report -o week.pdf                # Weekly PDF report

GOALS AND CHALLENGES:

  $ ecoeats goal set waste "Halve bread waste"
  $ ecoeats challenge                         # Show or start this week's challenge
  $ ecoeats challenge progress 3 60           # Mark challenge 3 as 60% done

BACKUPS:

  Snapshots of the database can be pushed to Charm Cloud, E2E encrypted
  with your SSH key.

  $ ecoeats backup push
  $ ecoeats backup list
  $ ecoeats backup restore latest

SERVERS:

  $ ecoeats serve                             # JSON API with token login
  $ ecoeats mcp                               # MCP server over stdio

  {
    "mcpServers": {
      "ecoeats": { "command": "ecoeats", "args": ["mcp"] }
    }
  }

CONFIGURATION:

  Settings are read from ~/.config/ecoeats/config.json, then a .env file in
  the working directory, then ECOEATS_* environment variables. Set
  OPENAI_API_KEY or GEMINI_API_KEY to enable the AI assistant; without a key
  canned offline responses are used.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Annotations[skipSetup] == "true" {
			return nil
		}
		return setup(cmd.Context(), cmd.Annotations[noUser] != "true")
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// setup opens everything a command needs, in dependency order.
func setup(ctx context.Context, withUser bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	// A command that failed last time never reached PersistentPostRunE.
	_ = teardown()

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.GetLogLevel()
	if verboseFlag {
		level = "debug"
	}
	logger, err = logging.New(level, false)
	if err != nil {
		return err
	}

	db, err = cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	assistant, err = cfg.OpenAssistant(ctx, logger)
	if err != nil {
		return fmt.Errorf("failed to start AI assistant: %w", err)
	}

	images, err := cfg.OpenImageStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open image store: %w", err)
	}

	opts := []tracker.Option{
		tracker.WithImageStore(images),
		tracker.WithLogger(logger),
	}
	classifier, err := cfg.OpenClassifier(ctx)
	if err != nil {
		return fmt.Errorf("failed to start image classifier: %w", err)
	}
	if classifier != nil {
		opts = append(opts, tracker.WithLabeler(classifier))
	}
	trk = tracker.New(db, assistant, opts...)

	if !withUser {
		return nil
	}
	name := userFlag
	if name == "" {
		name = cfg.GetUsername()
	}
	currentUser, err = trk.EnsureUser(name)
	if err != nil {
		return fmt.Errorf("failed to load user %q: %w", name, err)
	}
	logger.Debug("acting as user", zap.String("username", currentUser.Username), zap.Int64("user_id", currentUser.ID))
	return nil
}

// teardown releases everything setup opened. Safe to call more than once.
func teardown() error {
	var firstErr error
	if charmClient != nil {
		if err := charmClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		charmClient = nil
	}
	if assistant != nil {
		assistant.Close()
		assistant = nil
	}
	if db != nil {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		db = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
	trk = nil
	currentUser = nil
	return firstErr
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "act as this user (default: config username or $USER)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}
