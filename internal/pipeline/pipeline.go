// Package pipeline composes decoding, validation, resolution and emission into
// a single generation run.
//
// Stages run strictly in order and validation fails before any resolution work
// starts, so a rejected document never produces output. Each run builds its
// model from scratch; a Pipeline holds configuration only and is safe to reuse.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/routeforge/core/internal/emitter"
	"github.com/routeforge/core/internal/models"
	"github.com/routeforge/core/internal/parser"
	"github.com/routeforge/core/internal/resolver"
	"github.com/routeforge/core/internal/shared"
	"github.com/routeforge/core/internal/validate"
)

const DefaultOutputPath = "server.js"

type Pipeline struct {
	logger        *log.Logger
	emitter       *emitter.Emitter
	propagation   resolver.Propagation
	defaultOutput string
}

// Options contains configuration for creating a Pipeline. Zero values select defaults.
type Options struct {
	Logger        *log.Logger
	Port          int
	Propagation   resolver.Propagation
	DefaultOutput string
}

// Result is the outcome of a successful run.
type Result struct {
	Format parser.Format
	Model  *models.Model
	Source string
}

func New(opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.Propagation == "" {
		opts.Propagation = resolver.PropagationDirect
	}
	if opts.DefaultOutput == "" {
		opts.DefaultOutput = DefaultOutputPath
	}

	return &Pipeline{
		logger:        opts.Logger,
		emitter:       emitter.New(emitter.Options{Port: opts.Port}),
		propagation:   opts.Propagation,
		defaultOutput: opts.DefaultOutput,
	}
}

// FromConfig creates a Pipeline from application configuration.
func FromConfig(config *shared.Config, logger *log.Logger) *Pipeline {
	return New(Options{
		Logger:        logger,
		Port:          config.Server.Port,
		Propagation:   config.Propagation(),
		DefaultOutput: config.Output.DefaultPath,
	})
}

func (p *Pipeline) Logger() *log.Logger {
	return p.logger
}

func (p *Pipeline) Propagation() resolver.Propagation {
	return p.propagation
}

// Port reports the port written into generated servers.
func (p *Pipeline) Port() int {
	return p.emitter.Port()
}

func (p *Pipeline) DefaultOutput() string {
	return p.defaultOutput
}

// Build runs every stage over an in-memory document.
func (p *Pipeline) Build(data []byte, format parser.Format) (*Result, error) {
	return p.build(p.logger, data, format)
}

func (p *Pipeline) build(logger *log.Logger, data []byte, format parser.Format) (*Result, error) {
	if format == "" {
		format = parser.FormatJSON
	}

	document, err := parser.Decode(data, format)
	if err != nil {
		return nil, err
	}

	if err := validate.Validate(document); err != nil {
		return nil, err
	}

	nodes := parser.Nodes(document)
	logger.Debug("document decoded", "format", format, "nodes", len(nodes))

	model := resolver.ResolveWith(nodes, resolver.Options{Propagation: p.propagation})
	logger.Debug("model resolved",
		"routes", len(model.Routes),
		"cors", model.Cors.Enabled,
		"auth", model.Auth.Enabled,
		"admin_auth", model.AdminAuth.Enabled,
		"logging", model.Logging.Enabled,
	)

	return &Result{
		Format: format,
		Model:  model,
		Source: p.emitter.Emit(model),
	}, nil
}

// Load reads the document at path and runs it through Build. An empty format
// is detected from the file extension.
func (p *Pipeline) Load(path string, format parser.Format) (*Result, error) {
	return p.load(p.logger, path, format)
}

func (p *Pipeline) load(logger *log.Logger, path string, format parser.Format) (*Result, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	if format == "" {
		format = parser.DetectFormat(path)
	}

	return p.build(logger, data, format)
}

// GenerateFile runs the pipeline over the document at inputPath and writes the
// emitted source to outputPath, or to the default destination when outputPath
// is empty. It returns the destination written.
func (p *Pipeline) GenerateFile(inputPath, outputPath string, format parser.Format) (string, error) {
	logger := shared.WithLogger(p.logger, "run", shared.GenerateID())
	if outputPath == "" {
		outputPath = p.defaultOutput
	}

	logger.Debug("generating", "input", inputPath, "output", outputPath)

	result, err := p.load(logger, inputPath, format)
	if err != nil {
		return "", err
	}

	if err := writeOutput(outputPath, []byte(result.Source)); err != nil {
		return "", err
	}

	logger.Info("server generated", "output", outputPath, "routes", len(result.Model.Routes), "bytes", len(result.Source))
	return outputPath, nil
}

// Generate runs the full pipeline with default options.
func Generate(inputPath, outputPath string) error {
	_, err := New(Options{}).GenerateFile(inputPath, outputPath, "")
	return err
}

func readInput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", path, err)
	}

	return data, nil
}

// writeOutput writes through a temporary file in the destination directory and
// renames it into place, so a failed write leaves no partial file behind.
func writeOutput(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".routeforge-*")
	if err != nil {
		return fmt.Errorf("failed to write output %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output %s: %w", path, err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output %s: %w", path, err)
	}

	return nil
}
