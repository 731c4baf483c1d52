package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mind-engage/suggestify/internal/catalog"
	"github.com/mind-engage/suggestify/internal/storage"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var archive bool
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Replace the stored show catalog with a CSV file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.CatalogCSV
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no csv given: pass a file or --csv")
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read catalog: %w", err)
			}
			shows, err := catalog.ReadCSV(bytes.NewReader(raw))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if len(shows) == 0 {
				return fmt.Errorf("%s: %w", path, catalog.ErrEmptyCatalog)
			}

			store, err := ctx.store(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.ReplaceAll(cmd.Context(), shows); err != nil {
				return fmt.Errorf("store catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d shows from %s\n", len(shows), path)

			if archive {
				bs, err := storage.NewFSStore(cfg.BlobBasePath)
				if err != nil {
					return err
				}
				key, err := bs.Put("catalog/"+uuid.NewString()+".csv", bytes.NewReader(raw))
				if err != nil {
					return fmt.Errorf("archive catalog: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Archived as %s\n", key)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&archive, "archive", true, "Keep a copy of the CSV in the blob store")
	return cmd
}
