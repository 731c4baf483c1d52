package main

import (
	"github.com/spf13/cobra"

	"github.com/mind-engage/suggestify/internal/app"
	"github.com/mind-engage/suggestify/internal/catalog"
	"github.com/mind-engage/suggestify/internal/logging"
	"github.com/mind-engage/suggestify/internal/quiz"
)

func newQuizCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var noShows bool

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Answer a few questions to find your preferred genres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			b, err := app.Battery(*cfg)
			if err != nil {
				return err
			}
			con := newConsole(cmd.InOrStdin(), cmd.OutOrStdout())
			con.println("Let's play a game to find out your preferred genre!")
			con.println("We will ask you a series of questions to determine your genre preference.")

			genres, ok := takeQuiz(con, b)
			if !ok || noShows {
				return nil
			}
			t, err := ctx.catalog(cmd.Context())
			if err != nil {
				return err
			}
			f, err := app.Filter(*cfg)
			if err != nil {
				return err
			}
			con.println()
			printRecommendations(con.out, f.Recommend(t, genres, limit), catalog.NormalizeGenres(genres...))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of shows (default from recommend_limit)")
	cmd.Flags().BoolVar(&noShows, "genres-only", false, "Only report genres, skip show lookup")
	return cmd
}

// takeQuiz runs the battery on the console and reports the winning genres.
// ok is false when the answers gave no preference.
func takeQuiz(con *console, b quiz.Battery) ([]string, bool) {
	answers := con.runQuiz(b)
	con.println()
	con.println("Thank you for your answers! Let's calculate your preferred genre.")

	res := quiz.Score(b, answers)
	for _, s := range res.Skipped {
		logging.Debug().Int("position", s.Position).Str("key", s.Key).Str("reason", string(s.Reason)).Msg("quiz answer skipped")
	}
	genres, err := res.Top()
	if err != nil {
		con.println("Your answers did not point to any genre. Try the quiz again or pick genres yourself.")
		return nil, false
	}
	con.println("Based on your answers, here are the genres you might enjoy:")
	for _, g := range genres {
		con.printf("- %s\n", g)
	}
	return genres, true
}
