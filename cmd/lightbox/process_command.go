package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lightbox/internal/compose"
	"lightbox/internal/config"
	"lightbox/internal/imaging"
	"lightbox/internal/validate"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var (
		output    string
		rotate    int
		cropSpec  string
		maxWidth  int
		maxHeight int
	)

	cmd := &cobra.Command{
		Use:   "process <path>",
		Short: "Apply rotation, crop, and downscale to a single image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			inputPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			if result := validate.Check(data, cfg.MaxFileSizeBytes()); !result.OK {
				return fmt.Errorf("%s: %s", filepath.Base(inputPath), result.Reason)
			}

			rect, err := parseCropSpec(cropSpec)
			if err != nil {
				return err
			}

			asset := imaging.Asset{Data: data, MIMEType: validate.SniffMIME(data)}
			processed, err := compose.Process(asset, rotate, rect)
			if err != nil {
				return err
			}

			if maxWidth > 0 || maxHeight > 0 {
				boundWidth := maxWidth
				boundHeight := maxHeight
				if boundWidth <= 0 {
					boundWidth = cfg.Images.MaxWidth
				}
				if boundHeight <= 0 {
					boundHeight = cfg.Images.MaxHeight
				}
				processed, err = imaging.Resize(processed, boundWidth, boundHeight, cfg.Images.JPEGQuality)
				if err != nil {
					return err
				}
			}

			target := strings.TrimSpace(output)
			if target == "" {
				target = inputPath
			} else if target, err = config.ExpandPath(target); err != nil {
				return err
			}
			if err := os.WriteFile(target, processed.Data, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			width, height, err := processed.Dimensions()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d, %s, %d bytes)\n",
				target, width, height, processed.MIMEType, processed.Size())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (defaults to overwriting the input)")
	cmd.Flags().IntVar(&rotate, "rotate", 0, "Clockwise rotation in degrees (multiples of 90)")
	cmd.Flags().StringVar(&cropSpec, "crop", "", "Crop rectangle as x,y,width,height in post-rotation coordinates")
	cmd.Flags().IntVar(&maxWidth, "max-width", 0, "Downscale to fit this width (0 uses the configured bound)")
	cmd.Flags().IntVar(&maxHeight, "max-height", 0, "Downscale to fit this height (0 uses the configured bound)")
	return cmd
}

func parseCropSpec(spec string) (*imaging.Rect, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid crop %q, expected x,y,width,height", spec)
	}
	values := make([]int, 4)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid crop %q: %w", spec, err)
		}
		values[i] = v
	}
	rect := &imaging.Rect{X: values[0], Y: values[1], Width: values[2], Height: values[3]}
	if rect.Width <= 0 || rect.Height <= 0 {
		return nil, fmt.Errorf("invalid crop %q: width and height must be positive", spec)
	}
	return rect, nil
}
