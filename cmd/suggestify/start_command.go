package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mind-engage/suggestify/internal/app"
	"github.com/mind-engage/suggestify/internal/catalog"
)

const goodbye = "Thank you for using Suggestify! Goodbye!"

// start is the guided flow: pick genres directly or take the quiz, then
// list matching shows.
func newStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Guided session: choose genres or take the quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			b, err := app.Battery(*cfg)
			if err != nil {
				return err
			}
			f, err := app.Filter(*cfg)
			if err != nil {
				return err
			}
			t, err := ctx.catalog(cmd.Context())
			if err != nil {
				return err
			}

			con := newConsole(cmd.InOrStdin(), cmd.OutOrStdout())
			con.println("Welcome to Suggestify!")
			con.println("This app will help you find TV shows according to your preferences.")

			var genres []string
		loop:
			for {
				ans, ok := con.ask("Do you have a genre in mind? (yes/no, exit to quit): ")
				if !ok {
					return nil
				}
				switch strings.ToLower(ans) {
				case "yes", "y":
					line, ok := con.ask("Please enter the genres you are interested in (comma separated): ")
					if !ok {
						return nil
					}
					genres = catalog.NormalizeGenres(line)
					if len(genres) == 0 {
						con.println("No genre entered.")
						continue
					}
					con.printf("Great! You have selected: %s.\n", strings.Join(genres, ", "))
					break loop
				case "no", "n":
					con.println("No problem! Let's find out your genre preference.")
					top, ok := takeQuiz(con, b)
					if !ok {
						return nil
					}
					genres = catalog.NormalizeGenres(top...)
					break loop
				case "exit", "quit", "bye":
					con.println(goodbye)
					return nil
				default:
					con.println("Invalid input. Please answer with 'yes' or 'no'.")
				}
			}
			con.println()
			printRecommendations(con.out, f.Recommend(t, genres, 0), genres)
			con.println(goodbye)
			return nil
		},
	}
}
