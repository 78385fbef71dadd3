package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/virtualgel/gelsim/pkg/gel/layout"
	"github.com/virtualgel/gelsim/pkg/pipeline"
)

// defaultOutputBase is the base file name used when --output is not given.
const defaultOutputBase = "gel"

// simulateOpts holds the command-line flags for the simulate command.
type simulateOpts struct {
	control    int     // control fragment length in bp (0 = none)
	output     string  // output file or base path
	formats    string  // comma-separated output formats
	style      string  // visual style name
	title      string  // gel image title
	layoutPath string  // optional path to save the layout JSON
	width      float64 // frame width in pixels
	height     float64 // frame height in pixels
	noCache    bool    // bypass the layout/artifact cache
}

// simulateCommand creates the simulate command. Fragment lengths can be
// given as arguments; without arguments an interactive prompt session
// collects them.
func (c *CLI) simulateCommand() *cobra.Command {
	var opts simulateOpts

	cmd := &cobra.Command{
		Use:   "simulate [length...]",
		Short: "Simulate fragment migration and render the gel",
		Long: `Simulate gel electrophoresis for DNA fragments of the given lengths (in
base pairs) and render the resulting band pattern.

Without arguments, fragments are collected interactively: enter sample
lengths one per line, finish with 'done', then optionally enter a control
length or 'skip'.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd, args, &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.control, "control", "c", 0, "control fragment length in bp (shown in lane 1)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: classic (default), plain")
	cmd.Flags().StringVar(&opts.title, "title", "", "gel image title")
	cmd.Flags().StringVar(&opts.layoutPath, "layout", "", "also save the computed layout as JSON to this path")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the layout and artifact cache")

	return cmd
}

func (c *CLI) runSimulate(cmd *cobra.Command, args []string, opts *simulateOpts) error {
	ctx := cmd.Context()

	lengths, err := parseLengths(args)
	if err != nil {
		return err
	}

	control := opts.control
	if len(lengths) == 0 {
		lengths, control, err = c.collectInput(cmd)
		if errors.Is(err, errNoSamples) {
			return nil
		}
		if errors.Is(err, errSessionAborted) {
			printInfo("Aborted")
			return nil
		}
		if err != nil {
			return err
		}
		// An explicit --control flag wins over the interactive answer.
		if cmd.Flags().Changed("control") {
			control = opts.control
		}
	}

	pipeOpts := c.pipelineOptions()
	pipeOpts.Lengths = lengths
	pipeOpts.Control = control
	pipeOpts.Title = opts.title
	pipeOpts.Formats = parseFormats(opts.formats, pipeOpts.Formats)
	if opts.style != "" {
		pipeOpts.Style = opts.style
	}
	if opts.width > 0 {
		pipeOpts.Width = opts.width
	}
	if opts.height > 0 {
		pipeOpts.Height = opts.height
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	track := newProgress(c.Logger)
	spin := newSpinner(ctx, "Running gel simulation...")
	spin.Start()

	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		spin.StopWithError("Simulation failed")
		return err
	}
	spin.Stop()
	track.done(fmt.Sprintf("Simulated %d lanes", result.Stats.LaneCount))

	printSuccess("Simulated %d fragments", len(lengths))
	printLanes(result.Layout)
	printRunStats(result.Stats.LaneCount, result.CacheInfo.RenderHit)

	paths, err := writeArtifacts(result.Artifacts, pipeOpts.Formats, opts.output)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}

	if opts.layoutPath != "" {
		if err := layout.WriteLayoutFile(result.Layout, opts.layoutPath); err != nil {
			return fmt.Errorf("save layout: %w", err)
		}
		printFile(opts.layoutPath)
	}
	return nil
}

// collectInput gathers fragment lengths interactively. The bubbletea
// session is used on a terminal; piped input falls back to a plain
// line-based prompt loop.
func (c *CLI) collectInput(cmd *cobra.Command) ([]int, int, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return runInteractiveSession(cmd.Context())
	}
	return collectFragments(cmd.InOrStdin(), cmd.OutOrStdout())
}

// writeArtifacts writes each rendered artifact next to the base path and
// returns the written file paths.
//
// With a single format, an --output ending in that format's extension is
// used verbatim. Otherwise output is treated as a base path and each
// artifact is written as base.format.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	if len(formats) == 1 {
		path := output
		if path == "" {
			path = defaultOutputBase + "." + formats[0]
		} else if filepath.Ext(path) == "" {
			path += "." + formats[0]
		}
		if err := writeArtifact(path, artifacts[formats[0]]); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	base := basePath(output)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := writeArtifact(path, artifacts[format]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// basePath derives the base output path, stripping a known format
// extension if present.
func basePath(output string) string {
	if output == "" {
		return defaultOutputBase
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
