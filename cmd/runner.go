package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"musichub/internal/client"
	"musichub/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
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

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, authCommand, collectionsCommand, tracksCommand, searchCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// sessionPath resolves the session file location, honoring the --session flag.
func (r *Runner) sessionPath(cmd *cli.Command) (string, error) {
	if path := cmd.String("session"); path != "" {
		return path, nil
	}
	return client.DefaultSessionPath()
}

// apiClient builds an API client for client-side commands. When withSession is
// true the stored session is loaded and attached; a missing session is an
// error telling the user to sign in.
func (r *Runner) apiClient(cmd *cli.Command, withSession bool) (*client.Client, error) {
	var session *client.Session

	if withSession {
		path, err := r.sessionPath(cmd)
		if err != nil {
			return nil, err
		}

		session, err = client.LoadSession(path)
		if err != nil {
			return nil, fmt.Errorf("not signed in (run `musichub auth signin`): %w", err)
		}
	}

	return client.New(cmd.String("api"), session), nil
}

// apiFlag is shared by all client-side commands.
func apiFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "api",
		Usage:   "Base URL of the music hub API",
		Value:   "http://localhost:5001",
		Sources: cli.EnvVars("MUSICHUB_API"),
	}
}

// sessionFlag overrides the session file location.
func sessionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "session",
		Usage:   "Path to the session file",
		Sources: cli.EnvVars("MUSICHUB_SESSION"),
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// loadConfig reloads configuration from the --config flag when it points at an
// existing file, falling back to the runner's config.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" {
		return r.config
	}
	if _, err := os.Stat(path); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "path", path, "error", err)
		return r.config
	}
	return config
}
