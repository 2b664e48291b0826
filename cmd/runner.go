package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/wrenhollow/reel/internal/api"
	"github.com/wrenhollow/reel/internal/repositories"
	"github.com/wrenhollow/reel/internal/session"
	"github.com/wrenhollow/reel/internal/shared"
	"github.com/wrenhollow/reel/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	client     *api.Client
	manager    *session.Manager
	creds      *repositories.CredentialRepository
	cache      *repositories.VideoCacheRepository
	engine     *tasks.Engine
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Client     *api.Client
	DB         *sql.DB
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
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
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Client == nil {
		opts.Client = api.NewClient(opts.Config.API.BaseURL, opts.HTTPClient, nil)
	}

	r := &Runner{
		config:     opts.Config,
		client:     opts.Client,
		db:         opts.DB,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}

	if opts.DB != nil {
		r.creds = repositories.NewCredentialRepository(opts.DB)
		r.cache = repositories.NewVideoCacheRepository(opts.DB)
		r.manager = session.NewManager(r.creds, opts.Client, opts.Logger)
		opts.Client.SetBearer(r.manager)
	}
	r.engine = tasks.NewEngine(opts.Client, opts.Logger)

	return r
}

// SetLogger swaps the runner's logger, used when the TUI redirects logs to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// requireSession ensures credentials storage exists and the stored session
// resolves to an authenticated state.
func (r *Runner) requireSession(ctx context.Context) error {
	if r.manager == nil {
		return fmt.Errorf("%w: run 'reel setup' first", shared.ErrMissingConfig)
	}
	if r.manager.Startup(ctx) != session.Authenticated {
		return fmt.Errorf("%w: run 'reel auth login'", shared.ErrNotAuthenticated)
	}
	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, feedCommand, videosCommand, profileCommand, adminCommand, serveCommand,
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

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
