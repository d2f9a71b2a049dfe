package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lightbox/internal/blobstore"
	"lightbox/internal/config"
	"lightbox/internal/validate"
)

func newStoreCommand(ctx *commandContext) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the binary object store",
	}

	storeCmd.AddCommand(newStoreListCommand(ctx))
	storeCmd.AddCommand(newStorePutCommand(ctx))
	storeCmd.AddCommand(newStoreGetCommand(ctx))
	storeCmd.AddCommand(newStoreRemoveCommand(ctx))
	storeCmd.AddCommand(newStoreClearCommand(ctx))

	return storeCmd
}

func newStoreListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List stored objects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *blobstore.Store) error {
				out := cmd.OutOrStdout()
				ids, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					fmt.Fprintln(out, "Object store is empty")
					return nil
				}

				rows := make([][]string, 0, len(ids))
				for _, id := range ids {
					obj, err := store.Read(cmd.Context(), id)
					if err != nil {
						return err
					}
					if obj == nil {
						continue
					}
					mimeType := obj.MIMEType
					if mimeType == "" {
						mimeType = validate.SniffMIME(obj.Data)
					}
					rows = append(rows, []string{
						obj.ID,
						mimeType,
						fmt.Sprintf("%d", len(obj.Data)),
						obj.CreatedAt.Format("2006-01-02 15:04:05"),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Type", "Bytes", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				))

				count, bytes, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d objects, %d bytes\n", count, bytes)
				return nil
			})
		},
	}
}

func newStorePutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "put <path>",
		Short: "Store a file as a binary object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			return ctx.withStore(func(store *blobstore.Store) error {
				id, err := store.Put(cmd.Context(), data, validate.SniffMIME(data))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %s as object %s\n", filepath.Base(path), id)
				return nil
			})
		},
	}
}

func newStoreGetCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Materialize a stored object on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *blobstore.Store) error {
				out := cmd.OutOrStdout()
				id := args[0]

				if output != "" {
					obj, err := store.Read(cmd.Context(), id)
					if err != nil {
						return err
					}
					if obj == nil {
						return fmt.Errorf("object %s not found", id)
					}
					target, err := config.ExpandPath(output)
					if err != nil {
						return err
					}
					if err := os.WriteFile(target, obj.Data, 0o644); err != nil {
						return fmt.Errorf("write output: %w", err)
					}
					fmt.Fprintf(out, "Wrote object %s to %s (%d bytes)\n", id, target, len(obj.Data))
					return nil
				}

				ref, err := store.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				if ref == nil {
					return fmt.Errorf("object %s not found", id)
				}
				fmt.Fprintf(out, "%s (%s)\n", ref.URL, ref.MIMEType)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write object contents to this path instead of the cache")
	return cmd
}

func newStoreRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a stored object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *blobstore.Store) error {
				existed, err := store.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !existed {
					return fmt.Errorf("object %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted object %s\n", args[0])
				return nil
			})
		},
	}
}

func newStoreClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *blobstore.Store) error {
				deleted, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d objects\n", deleted)
				return nil
			})
		},
	}
}
