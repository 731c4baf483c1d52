package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var csvFlag string

	ctx := newCommandContext(&configFlag, &csvFlag)

	rootCmd := &cobra.Command{
		Use:           "suggestify",
		Short:         "Find TV shows by genre or by taking a short quiz",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "hash-password" {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&csvFlag, "csv", "", "Show catalog CSV (overrides catalog_csv)")

	rootCmd.AddCommand(newStartCommand(ctx))
	rootCmd.AddCommand(newQuizCommand(ctx))
	rootCmd.AddCommand(newRecommendCommand(ctx))
	rootCmd.AddCommand(newQuestionsCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newHashPasswordCommand())

	return rootCmd
}
