package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abatilo/ideas/internal/api"
	"github.com/abatilo/ideas/internal/config"
	"github.com/abatilo/ideas/internal/logging"
	"github.com/abatilo/ideas/internal/repository"
	"github.com/abatilo/ideas/internal/storage"
	"github.com/abatilo/ideas/internal/store"
)

// App is everything a command needs once flags are parsed.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Repo   repository.Repository
	Store  *store.Store
}

// newApp resolves configuration and builds the repository for the
// selected backend. quiet drops stderr logging for full-screen commands.
func newApp(cmd *cobra.Command, quiet bool) (*App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{Verbose: cfg.Verbose, Quiet: quiet})
	if err != nil {
		return nil, err
	}

	repo := newRepository(cfg, logger)
	logger.Debug("backend selected", zap.String("backend", string(cfg.Backend)))

	return &App{
		Config: cfg,
		Logger: logger,
		Repo:   repo,
		Store:  store.New(repo, logger),
	}, nil
}

// Close flushes buffered logs.
func (a *App) Close() {
	_ = a.Logger.Sync()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	overrides := map[string]any{}
	if backendFlag != "" {
		overrides[config.KeyBackend] = backendFlag
	}
	if cmd.Flags().Changed("verbose") {
		overrides[config.KeyVerbose] = verbose
	}
	return config.Load(config.Options{ConfigFile: configFile, Overrides: overrides})
}

func newRepository(cfg *config.Config, logger *zap.Logger) repository.Repository {
	switch cfg.Backend {
	case config.BackendFile:
		return storage.NewStoreWithPath(cfg.IdeasDir(), logger)
	case config.BackendMemory:
		return repository.NewMemory()
	default:
		return api.NewClient(cfg.APIURL,
			api.WithTokenSource(tokenSource(cfg)),
			api.WithLogger(logger),
		)
	}
}

// tokenSource prefers an explicit token, then a saved login, then a fresh
// password exchange.
func tokenSource(cfg *config.Config) api.TokenSource {
	if cfg.Token != "" {
		return api.StaticTokenSource(cfg.Token)
	}
	cached := api.CachedTokenSource{Dir: cfg.DataDir}
	if cfg.HasPassword() {
		cached.Next = api.NewPasswordTokenSource(cfg.APIURL, cfg.Username, cfg.Password, nil)
	}
	return cached
}
