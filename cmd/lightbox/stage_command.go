package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lightbox/internal/blobstore"
	"lightbox/internal/config"
	"lightbox/internal/preflight"
	"lightbox/internal/staging"
	"lightbox/internal/upload"
)

func newStageCommand(ctx *commandContext) *cobra.Command {
	var (
		flush bool
		keep  bool
	)

	cmd := &cobra.Command{
		Use:   "stage <path>...",
		Short: "Validate and stage image files, then flush or keep them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			checks := preflight.RunAll(cfg)
			if !preflight.AllPassed(checks) {
				writeCheckResults(out, checks)
				return errors.New("preflight checks failed")
			}

			files, err := readInputFiles(args)
			if err != nil {
				return err
			}

			manager, err := staging.NewManager(cfg, ctx.newLogger())
			if err != nil {
				return err
			}
			defer manager.Close()

			added, failures, err := manager.AddFiles(cmd.Context(), files)
			if err != nil {
				return err
			}
			for _, failure := range failures {
				fmt.Fprintf(out, "Skipped %s: %s\n", failure.Name, failure.Reason)
			}
			if len(added) == 0 {
				return errors.New("no files could be staged")
			}

			fmt.Fprintln(out, renderStagedTable(added))

			if keep {
				if err := keepStaged(cmd, ctx, manager, added); err != nil {
					return err
				}
			}
			if flush {
				uploader := upload.NewDirUploader(cfg.Paths.LibraryDir, cfg.Upload.OverwriteExisting, ctx.newLogger())
				results, err := manager.Flush(cmd.Context(), uploader)
				if err != nil {
					for _, result := range upload.Failed(results) {
						fmt.Fprintf(out, "Failed item %d: %v\n", result.Index, result.Err)
					}
					return err
				}
				fmt.Fprintf(out, "Flushed %d images to %s\n", len(results), cfg.Paths.LibraryDir)
			}
			if len(failures) > 0 {
				return fmt.Errorf("%d of %d files were rejected", len(failures), len(files))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flush, "flush", false, "Hand the staged batch off to the library directory")
	cmd.Flags().BoolVar(&keep, "keep", false, "Persist each staged working copy to the object store")
	return cmd
}

func readInputFiles(paths []string) ([]staging.File, error) {
	files := make([]staging.File, 0, len(paths))
	for _, arg := range paths {
		path, err := config.ExpandPath(arg)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", arg, err)
		}
		files = append(files, staging.File{Name: filepath.Base(path), Data: data})
	}
	return files, nil
}

func renderStagedTable(images []*staging.Image) string {
	rows := make([][]string, 0, len(images))
	for i, img := range images {
		primary := ""
		if i == 0 {
			primary = "yes"
		}
		width, height := 0, 0
		if w, h, err := img.Asset.Dimensions(); err == nil {
			width, height = w, h
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			primary,
			img.Title,
			img.SourceName,
			fmt.Sprintf("%dx%d", width, height),
			fmt.Sprintf("%d", img.Asset.Size()),
		})
	}
	return renderTable(
		[]string{"#", "Primary", "Title", "Source", "Dimensions", "Bytes"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

func keepStaged(cmd *cobra.Command, ctx *commandContext, manager *staging.Manager, images []*staging.Image) error {
	return ctx.withStore(func(store *blobstore.Store) error {
		out := cmd.OutOrStdout()
		for _, img := range images {
			objectID, err := manager.KeepLocal(cmd.Context(), store, img.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Stored %s as object %s\n", img.SourceName, objectID)
		}
		return nil
	})
}
