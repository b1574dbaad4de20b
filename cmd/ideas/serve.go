package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abatilo/ideas/internal/config"
	"github.com/abatilo/ideas/internal/devserver"
	ideaerrors "github.com/abatilo/ideas/internal/errors"
	"github.com/abatilo/ideas/internal/repository"
	"github.com/abatilo/ideas/internal/storage"
)

const shutdownTimeout = 5 * time.Second

// serveCmd implements 'ideas serve'.
func serveCmd() *cobra.Command {
	var (
		addr    string
		auth    bool
		origins []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local ideas API for development",
		Long: `Run a local server speaking the same HTTP API the client uses.
Ideas are kept in memory, or on disk with --backend file.
With --auth, idea routes require a token issued by POST /token for the
configured username and password.`,
		Run: func(cmd *cobra.Command, _ []string) {
			app, err := newApp(cmd, false)
			if err != nil {
				printError(err)
			}
			defer app.Close()
			cfg := app.Config

			var repo repository.Repository
			if cfg.Backend == config.BackendFile {
				repo = storage.NewStoreWithPath(cfg.IdeasDir(), app.Logger)
			} else {
				repo = repository.NewMemory()
			}

			serverCfg := devserver.Config{Username: cfg.Username, AllowOrigins: origins}
			if auth {
				if !cfg.HasPassword() {
					printError(ideaerrors.NotConfiguredError{Settings: []string{config.KeyUsername, config.KeyPassword}})
				}
				if serverCfg.PasswordHash, err = devserver.HashPassword(cfg.Password); err != nil {
					printError(err)
				}
			}

			if !cfg.Verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			if addr == "" {
				addr = cfg.ServeAddr
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           devserver.NewRouter(repo, serverCfg, app.Logger),
				ReadHeaderTimeout: shutdownTimeout,
			}
			printOutput(formatter.FormatMessage("Serving ideas API on http://" + addr))
			if err = run(cmd.Context(), srv, app.Logger); err != nil {
				printError(err)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from serve_addr)")
	cmd.Flags().BoolVar(&auth, "auth", false, "Require bearer tokens on idea routes")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "Allowed CORS origins (default any)")
	return cmd
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("serving ideas API", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
