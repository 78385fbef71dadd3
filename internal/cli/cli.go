// Package cli implements the gelsim command-line interface.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/virtualgel/gelsim/config"
	"github.com/virtualgel/gelsim/pkg/buildinfo"
	"github.com/virtualgel/gelsim/pkg/cache"
	"github.com/virtualgel/gelsim/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "gelsim",
		Short:        "Gelsim simulates DNA migration on a virtual agarose gel",
		Long:         `Gelsim is a CLI tool for simulating gel electrophoresis: it computes how far DNA fragments of given lengths migrate and renders the resulting band pattern as a gel image.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to config file (default: $XDG_CONFIG_HOME/gelsim/config.toml)")

	// Register all subcommands
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cch, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cch, nil, c.Logger)
	runner.TTL = c.Config.Cache.TTL.Duration
	return runner, nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == config.CacheBackendNone {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == config.CacheBackendRedis {
		r := c.Config.Cache.Redis
		return cache.NewRedisCache(r.Addr, r.Password, r.DB), nil
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions builds pipeline options seeded from the loaded config.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:   c.Config.Layout.Width,
		Height:  c.Config.Layout.Height,
		Formats: append([]string(nil), c.Config.Render.Formats...),
		Style:   c.Config.Render.Style,
		Scale:   c.Config.Render.PNGScale,
		Logger:  c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string keeps the configured defaults.
func parseFormats(s string, fallback []string) []string {
	if s == "" {
		return fallback
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// parseLengths converts positional arguments into fragment lengths.
func parseLengths(args []string) ([]int, error) {
	lengths := make([]int, 0, len(args))
	for _, a := range args {
		n, err := parsePositiveInt(a)
		if err != nil {
			return nil, fmt.Errorf("invalid fragment length %q: %w", a, err)
		}
		lengths = append(lengths, n)
	}
	return lengths, nil
}
