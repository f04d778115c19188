package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpmoo/thoughtlands-sub000/pkg/arrange"
	"github.com/jpmoo/thoughtlands-sub000/pkg/canvas"
	"github.com/jpmoo/thoughtlands-sub000/pkg/errors"
)

// arrangeCommand creates the arrange command for computing canvas layouts.
func (c *CLI) arrangeCommand() *cobra.Command {
	var (
		output      string
		tuningFile  string
		interactive bool
		rc          runnerConfig
	)
	opts := arrange.Options{}

	cmd := &cobra.Command{
		Use:   "arrange [items.json]",
		Short: "Compute a canvas layout from a set of notes",
		Long: `Compute a canvas layout from a set of notes.

The arrange command takes an items.json file (concept embedding plus notes
with their embedding vectors) and computes positions under the selected
layout mode. The output is a layout.json file that can be rendered to SVG
using the 'preview' command.

Modes: walkabout (default), hopscotch, rollingpath, regiment, gaggle.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				mode, ok, err := selectMode(opts.Mode)
				if err != nil {
					return err
				}
				if !ok {
					return nil // user quit the picker
				}
				opts.Mode = mode
			}
			return c.runArrange(cmd.Context(), args[0], opts, output, tuningFile, rc)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&tuningFile, "tuning", "", "TOML file overriding layout tuning parameters")
	rc.register(cmd)

	// Arrangement flags
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", arrange.DefaultMode, "layout mode: walkabout, hopscotch, rollingpath, regiment, gaggle")
	cmd.Flags().IntVarP(&opts.Level, "level", "l", arrange.DefaultLevel, "walkabout clustering level (1..4)")
	cmd.Flags().StringVar(&opts.Concept, "concept", "", "focal concept text for cards and summaries")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", arrange.DefaultSeed, "random seed for reproducible layouts")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached layout exists")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the layout mode interactively")

	return cmd
}

// runArrange loads the items, computes the layout, and writes output.
func (c *CLI) runArrange(ctx context.Context, input string, opts arrange.Options, output, tuningFile string, rc runnerConfig) error {
	set, err := canvas.ReadItemsFile(input)
	if err != nil {
		return fmt.Errorf("load items %s: %w", input, err)
	}

	tuning, err := loadTuning(tuningFile)
	if err != nil {
		return fmt.Errorf("load tuning %s: %w", tuningFile, err)
	}
	opts.Tuning = &tuning
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, rc)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Arranging %d notes (%s)...", len(set.Items), opts.Mode))
	spinner.Start()

	result, err := runner.Arrange(ctx, set, opts)
	if errors.Is(err, errors.ErrCodeNoPlaceableItems) && arrange.SimilarityModes[opts.Mode] {
		// No item has similarity data; fall back to a plain grid.
		spinner.Stop()
		printWarning("No embeddings available, falling back to regiment")
		fallback := opts
		fallback.Mode = arrange.ModeRegiment
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Arranging %d notes (regiment)...", len(set.Items)))
		spinner.Start()
		result, err = runner.Arrange(ctx, set, fallback)
	}
	if err != nil {
		spinner.StopWithError("Arrangement failed")
		return fmt.Errorf("arrange: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := canvas.WriteLayoutFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Arrangement complete")
	printFile(outputPath)
	printStats(result.Stats.PlacedCount, len(result.Layout.Cards), len(result.Stats.SkippedIDs), result.CacheInfo.LayoutHit)
	if len(result.Layout.Fallbacks) > 0 {
		printWarning("%d notes placed best-effort (spacing not guaranteed)", len(result.Layout.Fallbacks))
	}
	printNewline()
	printNextStep("Preview", "thoughtlands preview "+outputPath)

	return nil
}
