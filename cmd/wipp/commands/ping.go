package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/polusai/wipp-client/internal/constants"
)

// NewPingCommand creates the ping command
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity to the WIPP API",
		Long:  "Verify that the configured endpoint answers with a WIPP API root",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), constants.ShortHTTPTimeout)
			defer cancel()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Ping(ctx); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}

			fmt.Printf("%s is a live WIPP API\n", viper.GetString("api"))

			return nil
		},
	}
}
