package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lttslabs/etlctl/internal/api"
	"github.com/lttslabs/etlctl/internal/repositories"
	"github.com/lttslabs/etlctl/internal/router"
	"github.com/lttslabs/etlctl/internal/session"
	"github.com/lttslabs/etlctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for
// each command action. The API stack is built lazily on first use so
// commands that never touch the backend (setup) work without it.
type Runner struct {
	config   *shared.Config
	logger   *log.Logger
	output   io.Writer
	notifier api.Notifier

	httpClient *http.Client
	db         *sql.DB
	store      session.Store
	sess       *session.Session
	nav        *router.Router
	client     *api.Client

	auth        *api.AuthService
	dataSources *api.DataSourceService
	variables   *api.VariableService
	missions    *api.MissionService
	files       *api.FileService
	runLogs     *api.RunLogService
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Logger     *log.Logger
	Output     io.Writer
	HTTPClient *http.Client
	// Store overrides the SQLite-backed credential store, used by tests.
	Store session.Store
	// Notifier overrides where user-facing API errors go. Defaults to the
	// logger.
	Notifier api.Notifier
}

// logNotifier routes API error notifications to the structured logger.
type logNotifier struct {
	logger *log.Logger
}

func (n logNotifier) Error(message string) {
	n.logger.Error(message)
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Notifier == nil {
		opts.Notifier = logNotifier{logger: opts.Logger}
	}

	return &Runner{
		config:     opts.Config,
		logger:     opts.Logger,
		output:     opts.Output,
		notifier:   opts.Notifier,
		httpClient: opts.HTTPClient,
		store:      opts.Store,
	}
}

// bootstrap builds the credential store, session, router, API client, and
// endpoint services. Idempotent.
func (r *Runner) bootstrap() error {
	if r.client != nil {
		return nil
	}

	if r.store == nil {
		db, err := shared.NewDatabase(r.config.Credentials.Path)
		if err != nil {
			return fmt.Errorf("failed to open credential store: %w", err)
		}
		shared.ConfigureDatabase(db, r.config.Credentials.MaxOpenConns, r.config.Credentials.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return fmt.Errorf("failed to migrate credential store: %w", err)
		}

		r.db = db
		r.store = repositories.NewCredentialRepository(db)
	}

	r.sess = session.New(r.store, r.logger)
	r.sess.SetLanguage(r.config.API.Language)

	nav, err := router.New(router.DefaultRoutes(), r.sess, r.logger)
	if err != nil {
		return err
	}
	r.nav = nav

	httpClient := r.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(r.config.API.TimeoutSeconds) * time.Second}
	}

	r.client = api.NewClient(r.config.API.BaseURL, r.sess, api.Options{
		HTTPClient: httpClient,
		Notifier:   r.notifier,
		OnAuthExpired: func() {
			r.sess.Reset()
			r.nav.Navigate(router.LoginPath)
		},
		RateLimit: r.config.API.RateLimit,
		Logger:    r.logger,
	})

	r.auth = api.NewAuthService(r.client)
	r.dataSources = api.NewDataSourceService(r.client)
	r.variables = api.NewVariableService(r.client)
	r.missions = api.NewMissionService(r.client)
	r.files = api.NewFileService(r.client)
	r.runLogs = api.NewRunLogService(r.client)

	return nil
}

// Close releases the credential store connection.
func (r *Runner) Close() {
	if r.db != nil {
		r.db.Close()
		r.db = nil
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, datasourceCommand, variableCommand, missionCommand, runlogCommand, fileCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// parseKeyValues parses repeatable key=value flags into API pairs.
func parseKeyValues(pairs []string) ([]api.KeyValue, error) {
	values := make([]api.KeyValue, 0, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", shared.ErrInvalidFlag, pair)
		}
		values = append(values, api.KeyValue{Key: key, Value: value})
	}
	return values, nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
