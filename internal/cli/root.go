// Package cli implements the fittrack terminal client. Every command builds
// the client core, hydrates the session exactly like an app start and then
// acts on it.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fittrack/fittrack/internal/core/gate"
	"github.com/fittrack/fittrack/internal/core/ports"
	"github.com/fittrack/fittrack/internal/core/service"
	"github.com/fittrack/fittrack/internal/infrastructure/authprovider/httpapi"
	"github.com/fittrack/fittrack/internal/infrastructure/authprovider/memory"
	"github.com/fittrack/fittrack/internal/infrastructure/config"
	redisdb "github.com/fittrack/fittrack/internal/infrastructure/db/redis"
	"github.com/fittrack/fittrack/internal/infrastructure/storage"
)

// Option overrides a collaborator the root command would otherwise build
// from configuration.
type Option func(*app)

func WithProvider(p ports.AuthProvider) Option {
	return func(a *app) { a.provider = p }
}

func WithStorage(s ports.Storage) Option {
	return func(a *app) { a.storage = s }
}

type app struct {
	cfg config.ClientConfig
	log zerolog.Logger

	provider ports.AuthProvider
	storage  ports.Storage
	table    *gate.Table
	session  *service.SessionStore
	prefs    *service.PreferenceStore
	closers  []func() error
}

// NewRootCmd returns the fittrack command tree. Flags default to cfg.
func NewRootCmd(cfg config.ClientConfig, log zerolog.Logger, opts ...Option) *cobra.Command {
	a := &app{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "fittrack",
		Short: "FitTrack terminal client",
		Long: `fittrack keeps a FitTrack session and display preferences on this machine
and answers where each screen of the app would take you.

Examples:
  # Log in with a demo account
  fittrack login -e john@example.com -p password123

  # Ask what /coach/plans does for the current session
  fittrack navigate /coach/plans
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.Provider, "provider", cfg.Provider, "auth provider: memory or http")
	flags.StringVar(&a.cfg.APIURL, "api-url", cfg.APIURL, "backend base URL for the http provider")
	flags.StringVar(&a.cfg.Storage, "storage", cfg.Storage, "session storage: memory, file or redis")
	flags.StringVar(&a.cfg.Profile, "profile", cfg.Profile, "name of the stored session")
	flags.StringVar(&a.cfg.RoutesFile, "routes", cfg.RoutesFile, "YAML route table replacing the built-in one")
	flags.StringVar(&a.cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for redis storage")

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.forgotPasswordCmd(),
		a.resetPasswordCmd(),
		a.prefsCmd(),
		a.navigateCmd(),
		a.routesCmd(),
	)
	return root
}

func (a *app) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.provider == nil {
		p, err := a.buildProvider()
		if err != nil {
			return err
		}
		a.provider = p
	}
	if a.storage == nil {
		s, err := a.buildStorage(ctx)
		if err != nil {
			return err
		}
		a.storage = s
	}

	table := gate.DefaultTable()
	if a.cfg.RoutesFile != "" {
		t, err := gate.LoadTableFile(a.cfg.RoutesFile)
		if err != nil {
			return err
		}
		table = t
	}
	a.table = table

	a.session = service.NewSessionStore(a.provider, a.storage, a.log)
	a.session.Hydrate(ctx)
	a.prefs = service.NewPreferenceStore(ctx, a.storage, a.log)
	return nil
}

func (a *app) buildProvider() (ports.AuthProvider, error) {
	switch a.cfg.Provider {
	case "memory":
		return memory.New(memory.WithLogger(a.log)), nil
	case "http":
		return httpapi.New(a.cfg.APIURL), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want memory or http)", a.cfg.Provider)
	}
}

func (a *app) buildStorage(ctx context.Context) (ports.Storage, error) {
	switch a.cfg.Storage {
	case "memory":
		return storage.NewMemory(), nil
	case "file":
		path, err := storage.DefaultPath(a.cfg.Profile)
		if err != nil {
			return nil, err
		}
		return storage.NewFile(path), nil
	case "redis":
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: a.cfg.RedisAddr})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return redisdb.NewStorage(client, a.cfg.Profile), nil
	default:
		return nil, fmt.Errorf("unknown storage %q (want memory, file or redis)", a.cfg.Storage)
	}
}

func (a *app) close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// sessionError turns the session's last error into the command's error.
func (a *app) sessionError(err error) error {
	if msg := a.session.Snapshot().Error; msg != "" {
		return errors.New(msg)
	}
	return err
}
