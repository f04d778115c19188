package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpmoo/thoughtlands-sub000/pkg/canvas"
	"github.com/jpmoo/thoughtlands-sub000/pkg/render/scatter"
)

// previewCommand creates the preview command for rendering layouts to SVG.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output    string
		showCards bool
		scale     float64
	)

	cmd := &cobra.Command{
		Use:   "preview [layout.json]",
		Short: "Render a layout to an SVG scatter preview",
		Long: `Render a layout to an SVG scatter preview.

The preview command takes a layout.json file (produced by 'arrange') and
renders the note positions as a fixed-coordinate scatter plot. This is a
debugging aid for inspecting layout geometry, not the product canvas.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], output, scatter.Options{
				Scale:     scale,
				ShowCards: showCards,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.svg)")
	cmd.Flags().BoolVar(&showCards, "cards", false, "include card anchors in the preview")
	cmd.Flags().Float64Var(&scale, "scale", 0, "coordinate scale divisor (default 4)")

	return cmd
}

// runPreview loads the layout, renders the SVG, and writes output.
func (c *CLI) runPreview(ctx context.Context, input, output string, opts scatter.Options) error {
	layout, err := canvas.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering preview...")
	spinner.Start()

	svg, err := scatter.Preview(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render preview: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".svg"
	}

	if err := os.WriteFile(outputPath, svg, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Preview rendered")
	printFile(outputPath)
	printDetail("%d positions, %d cards", len(layout.Positions), len(layout.Cards))

	return nil
}
