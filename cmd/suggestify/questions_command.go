package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/mind-engage/suggestify/internal/app"
	"github.com/mind-engage/suggestify/internal/quiz"
)

func newQuestionsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print the quiz battery",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			b, err := app.Battery(*cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(quiz.File{Questions: b.Questions()})
			}
			for i, q := range b.Questions() {
				fmt.Fprintf(out, "%d. %s\n", i+1, q.Prompt)
				for _, o := range q.Options {
					fmt.Fprintf(out, "   %s: %s [%s]\n", o.Key, o.Text, strings.Join(o.Genres, ", "))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the battery as JSON")
	return cmd
}
