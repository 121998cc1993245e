package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atdash",
	Short: "Delivery-trip analytics engine and dashboard API",
	Long: `atdash resolves messy delivery-trip exports onto a canonical schema,
derives normalized fields, and serves filterable ATD dashboards as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
	return rootCmd.ExecuteContext(ctx)
}

func setLogLevel(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}
