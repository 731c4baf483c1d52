package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mind-engage/suggestify/internal/app"
	"github.com/mind-engage/suggestify/internal/catalog"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var genres []string
	var limit int

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "List shows matching every given genre",
		Example: `  suggestify recommend --genres "crime, drama"
  suggestify recommend -g comedy -g romance --limit 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			requested := catalog.NormalizeGenres(append(genres, args...)...)
			if len(requested) == 0 {
				return fmt.Errorf("no genres given")
			}
			t, err := ctx.catalog(cmd.Context())
			if err != nil {
				return err
			}
			f, err := app.Filter(*cfg)
			if err != nil {
				return err
			}
			printRecommendations(cmd.OutOrStdout(), f.Recommend(t, requested, limit), requested)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&genres, "genres", "g", nil, "Genres to match (comma separated or repeated)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of shows (default from recommend_limit)")
	return cmd
}

func printRecommendations(w io.Writer, shows []catalog.Show, genres []string) {
	if len(shows) == 0 {
		fmt.Fprintf(w, "No shows found matching genres: %s\n", strings.Join(genres, ", "))
		return
	}
	fmt.Fprintf(w, "Shows matching %s:\n", strings.Join(genres, ", "))
	fmt.Fprintln(w, renderShows(shows))
}
