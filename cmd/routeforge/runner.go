package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/routeforge/core/internal/parser"
	"github.com/routeforge/core/internal/pipeline"
	"github.com/routeforge/core/internal/resolver"
	"github.com/routeforge/core/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds the dependencies of every command and provides one method per action.
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

// NewRunner creates a new Runner, filling unset options with defaults.
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

// Configure loads the config file when it exists and applies flag overrides.
// A config path given explicitly must exist.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.logger.Debug("config loaded", "path", configPath)
	} else if cmd.IsSet("config") {
		return ctx, fmt.Errorf("%w: config file %s not found", shared.ErrInvalidFlag, configPath)
	}

	if cmd.IsSet("port") {
		r.config.Server.Port = cmd.Int("port")
	}
	if cmd.IsSet("propagation") {
		if _, err := resolver.ParsePropagation(cmd.String("propagation")); err != nil {
			return ctx, fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		r.config.Resolver.Propagation = cmd.String("propagation")
	}
	if cmd.IsSet("log-level") {
		r.config.Log.Level = cmd.String("log-level")
	}

	if err := r.config.Validate(); err != nil {
		return ctx, err
	}

	if err := shared.SetLogLevel(r.logger, r.config.Log.Level); err != nil {
		return ctx, fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	return ctx, nil
}

func (r *Runner) pipeline() *pipeline.Pipeline {
	return pipeline.FromConfig(r.config, r.logger)
}

func (r *Runner) format(cmd *cli.Command) (parser.Format, error) {
	format, err := parser.ParseFormat(cmd.String("format"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}
	return format, nil
}

// Generate reads the input document and writes the generated server source.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("input")
	if input == "" {
		return fmt.Errorf("%w: input path", shared.ErrMissingArgument)
	}

	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	output, err := r.pipeline().GenerateFile(input, cmd.StringArg("output"), format)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", output)
}

// Inspect prints the resolved model, and optionally the source, to the output writer.
func (r *Runner) Inspect(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("input")
	if input == "" {
		return fmt.Errorf("%w: input path", shared.ErrMissingArgument)
	}

	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	result, err := r.pipeline().Load(input, format)
	if err != nil {
		return err
	}

	if err := r.writeJSON(result.Model); err != nil {
		return err
	}

	if cmd.Bool("source") {
		return r.writePlain("\n%s", result.Source)
	}

	return nil
}

// InitConfig writes the example configuration file.
func (r *Runner) InitConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		path = defaultConfigPath
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return nil
}

func (r *Runner) writeJSON(data any) error {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
