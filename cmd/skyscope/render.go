package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skyscope/internal/render"
	"skyscope/internal/screen"
)

// newRenderCmd implements the --ui debug mode as an explicit subcommand:
// capture one frame, solve it, apply the result, render a single
// navigation frame, and write the raw RGB bytes to stdout (or --output),
// then exit.
func newRenderCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Capture, solve, and render a single frame, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := buildRoot()
			if err != nil {
				return err
			}
			defer root.Close()

			ctx := cmd.Context()
			if err := root.cam.Start(ctx); err != nil {
				return fmt.Errorf("start camera: %w", err)
			}
			defer root.cam.Stop(context.Background())

			frame, err := root.cam.Capture(ctx)
			if err != nil {
				return fmt.Errorf("capture frame: %w", err)
			}

			targetPixel, hasTargetPixel := root.obsCtx.Solver.TargetPixel()
			targetPixelArg := &targetPixel
			if !hasTargetPixel {
				targetPixelArg = nil
			}
			result, err := root.solv.Solve(ctx, frame, root.obsCtx.Solver.FOVEstimate(), targetPixelArg)
			if err != nil {
				root.log.Warn("render: solve failed, rendering unsolved view", "error", err.Error())
			} else {
				offset := root.obsCtx.CameraOffset()
				loc := root.obsCtx.Environment.Location()
				root.obsCtx.Telescope.ApplySolveResult(result, nil, offset, root.altAz, loc)
			}

			canvas, err := newCanvas(frameWidth, frameHeight)
			if err != nil {
				return fmt.Errorf("build canvas: %w", err)
			}

			root.machineAt(screen.Navigation).Render(canvas)

			out := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			if _, err := out.Write(canvas.Bytes()); err != nil {
				return fmt.Errorf("write render output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputPath, "output", "", "file to write raw RGB bytes to (default stdout)")
	return cmd
}

// newCanvas builds the imagick canvas, falling back to the pure-Go raster
// canvas if imagick initialization fails (e.g. no ImageMagick libraries
// installed on the host).
func newCanvas(width, height int) (render.Canvas, error) {
	if c, err := render.NewImagickCanvas(width, height); err == nil {
		return c, nil
	}
	return render.NewRasterCanvas(width, height), nil
}
