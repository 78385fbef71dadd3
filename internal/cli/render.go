package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virtualgel/gelsim/pkg/gel/layout"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file or base path
	formats string // comma-separated output formats
	style   string // visual style name
	scale   float64
	noCache bool
}

// renderCommand creates the render command for re-rendering a saved layout.
// It reads a layout JSON produced by `simulate --layout` and renders it to
// the requested formats without recomputing the migration.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <layout.json>",
		Short: "Render a saved gel layout to image formats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: classic (default), plain")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	logger.Info("rendering saved layout", "path", input)

	l, err := layout.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("read layout: %w", err)
	}
	logger.Debug("loaded layout", "lanes", len(l.Lanes), "run_id", l.RunID)

	pipeOpts := c.pipelineOptions()
	pipeOpts.Formats = parseFormats(opts.formats, pipeOpts.Formats)
	if opts.style != "" {
		pipeOpts.Style = opts.style
	}
	if opts.scale > 0 {
		pipeOpts.Scale = opts.scale
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	track := newProgress(c.Logger)
	artifacts, _, cached, err := runner.RenderWithCacheInfo(ctx, l, pipeOpts)
	if err != nil {
		return err
	}
	track.done(fmt.Sprintf("Rendered %d formats", len(pipeOpts.Formats)))

	output := opts.output
	if output == "" {
		// Derive the base path from the input file name.
		output = basePath(input)
	}
	paths, err := writeArtifacts(artifacts, pipeOpts.Formats, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d lanes", len(l.Lanes))
	printRunStats(len(l.Lanes), cached)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
