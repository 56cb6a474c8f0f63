package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/twilightlabs/twilight/internal/dashboard"
	"github.com/twilightlabs/twilight/internal/editors"
	"github.com/twilightlabs/twilight/internal/handshake"
	"github.com/twilightlabs/twilight/internal/services"
	"github.com/twilightlabs/twilight/internal/session"
	"github.com/twilightlabs/twilight/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	api      services.API
	session  *session.Manager
	agg      *dashboard.Aggregator
	link     *handshake.Controller
	content  *editors.ConfigEditor
	schedule *editors.ScheduleEditor
	logger   *log.Logger
	output   io.Writer
	input    io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	API      services.API
	Session  *session.Manager
	Agg      *dashboard.Aggregator
	Link     *handshake.Controller
	Content  *editors.ConfigEditor
	Schedule *editors.ScheduleEditor
	Logger   *log.Logger
	Output   io.Writer
	Input    io.Reader
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
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config:   opts.Config,
		api:      opts.API,
		session:  opts.Session,
		agg:      opts.Agg,
		link:     opts.Link,
		content:  opts.Content,
		schedule: opts.Schedule,
		logger:   opts.Logger,
		output:   opts.Output,
		input:    opts.Input,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, twitterCommand, contentCommand, scheduleCommand, postsCommand, dashboardCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger (used by the TUI to redirect logs).
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// notify is the user-facing notification side-channel for mutating actions.
func (r *Runner) notify(kind, message string) {
	if kind == "error" {
		r.writePlain("✗ %s\n", message)
		return
	}
	r.writePlain("✓ %s\n", message)
}

// requireSession fails fast for commands gated on authentication.
func (r *Runner) requireSession() error {
	if r.session == nil || !r.session.Authenticated() {
		return fmt.Errorf("%w: run 'twilight auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

// confirmPrompt asks an explicit yes/no question on the runner's terminal.
func (r *Runner) confirmPrompt(prompt string) bool {
	r.writePlain("%s [y/N]: ", prompt)

	reader := bufio.NewReader(r.input)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
