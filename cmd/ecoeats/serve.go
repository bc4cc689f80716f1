// ABOUTME: CLI command for starting the HTTP JSON API.
// ABOUTME: Seeds the admin account from the environment and serves until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/ecoeats/internal/auth"
	"github.com/harperreed/ecoeats/internal/logging"
	"github.com/harperreed/ecoeats/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveAddr       string
	serveNoRegister bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP JSON API",
	Long: `Start the ecoeats HTTP JSON API.

Clients log in with POST /auth/login and send the returned token as
"Authorization: Bearer <token>" on every /api request.

ENVIRONMENT:

  ECOEATS_ADDR             Listen address (default :8080)
  ECOEATS_JWT_SECRET       Token signing secret, 16+ characters. When unset a
                           random secret is used and tokens end with the process.
  ECOEATS_TOKEN_HOURS      Token lifetime in hours (default 72)
  ECOEATS_ADMIN_USER       Account created or updated at startup
  ECOEATS_ADMIN_PASSWORD   Its password

EXAMPLES:

  ecoeats serve
  ecoeats serve --addr 127.0.0.1:9000 --no-register`,
	Annotations: map[string]string{noUser: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Requests log at info even when the CLI default level is quieter.
		level := "info"
		if cfg.LogLevel != "" {
			level = cfg.LogLevel
		}
		if verboseFlag {
			level = "debug"
		}
		srvLogger, err := logging.New(level, false)
		if err != nil {
			return err
		}
		defer func() { _ = srvLogger.Sync() }()

		if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
			if _, err := trk.SetPassword(cfg.Admin.Username, cfg.Admin.Password); err != nil {
				return fmt.Errorf("failed to seed admin user: %w", err)
			}
			srvLogger.Info("admin user ready", zap.String("username", cfg.Admin.Username))
		}

		secret := cfg.Server.JWTSecret
		if secret == "" {
			secret = uuid.NewString()
			srvLogger.Warn("ECOEATS_JWT_SECRET not set; using a random secret for this run")
		}
		tokens, err := auth.NewTokens(secret, cfg.TokenTTL())
		if err != nil {
			return err
		}

		srv := server.New(trk, tokens, srvLogger, server.WithRegistration(!serveNoRegister))

		addr := serveAddr
		if addr == "" {
			addr = cfg.GetAddr()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		color.Green("✓ ecoeats API listening on %s", addr)
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config or :8080)")
	serveCmd.Flags().BoolVar(&serveNoRegister, "no-register", false, "disable POST /auth/register")
	rootCmd.AddCommand(serveCmd)
}
