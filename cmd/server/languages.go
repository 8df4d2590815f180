package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the target languages the configured engine supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := cfg.NewLogger()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		translator, err := newTranslator(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := translator.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close translator")
			}
		}()

		codes, err := translator.SupportedLanguages(ctx)
		if err != nil {
			return fmt.Errorf("list languages: %w", err)
		}
		for _, code := range codes {
			fmt.Fprintln(cmd.OutOrStdout(), code)
		}
		return nil
	},
}
