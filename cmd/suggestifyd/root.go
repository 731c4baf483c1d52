package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mind-engage/suggestify/internal/config"
	"github.com/mind-engage/suggestify/internal/logging"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var addrFlag string

	rootCmd := &cobra.Command{
		Use:           "suggestifyd",
		Short:         "Serve the suggestify HTTP API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}
			if addrFlag != "" {
				cfg.HTTPAddr = addrFlag
			}
			logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (overrides http_addr)")
	return rootCmd
}
