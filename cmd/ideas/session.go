package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abatilo/ideas/internal/api"
	"github.com/abatilo/ideas/internal/config"
	"github.com/abatilo/ideas/internal/credentials"
	ideaerrors "github.com/abatilo/ideas/internal/errors"
	"github.com/abatilo/ideas/internal/tui"
	"github.com/abatilo/ideas/internal/view"
)

// tuiCmd implements 'ideas tui'.
func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit ideas interactively",
		Run: func(cmd *cobra.Command, _ []string) {
			app, err := newApp(cmd, true)
			if err != nil {
				printError(err)
			}
			defer app.Close()

			ctrl := view.NewController(app.Store, app.Logger)
			if err = tui.Run(cmd.Context(), ctrl, app.Logger); err != nil {
				printError(err)
			}
		},
	}
}

// loginCmd implements 'ideas login'.
func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Exchange the configured username and password for a token",
		Long: `Exchange IDEAS_USERNAME and IDEAS_PASSWORD for a bearer token and cache it,
so later commands do not need the password.`,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				printError(err)
			}
			if !cfg.HasPassword() {
				printError(ideaerrors.NotConfiguredError{Settings: []string{config.KeyUsername, config.KeyPassword}})
			}

			src := api.NewPasswordTokenSource(cfg.APIURL, cfg.Username, cfg.Password, nil)
			tok, err := src.Exchange(cmd.Context())
			if err != nil {
				printError(err)
			}

			creds := &credentials.Credentials{
				Token:     tok.Value,
				Username:  cfg.Username,
				APIURL:    cfg.APIURL,
				CreatedAt: time.Now().UTC(),
			}
			if !tok.ExpiresAt.IsZero() {
				exp := tok.ExpiresAt.UTC()
				creds.ExpiresAt = &exp
			}
			if err = credentials.Save(cfg.DataDir, creds); err != nil {
				printError(err)
			}

			msg := fmt.Sprintf("Logged in to %s as %s", cfg.APIURL, cfg.Username)
			if creds.ExpiresAt != nil {
				msg += fmt.Sprintf(" (token expires %s)", creds.ExpiresAt.Local().Format(time.DateTime))
			}
			printOutput(formatter.FormatMessage(msg))
		},
	}
}

// logoutCmd implements 'ideas logout'.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached token",
		Run: func(cmd *cobra.Command, _ []string) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				printError(err)
			}
			if !credentials.Exists(cfg.DataDir) {
				printOutput(formatter.FormatMessage("Not logged in"))
				return
			}
			if err = credentials.Delete(cfg.DataDir); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage("Logged out"))
		},
	}
}
