package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/polusai/wipp-client/pkg/wipp"
)

// NewPluginsCommand creates the plugins command group
func NewPluginsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plugins",
		Aliases: []string{"plugin"},
		Short:   "Manage plugins",
		Long:    "List, search, register, and delete WIPP plugins",
	}

	cmd.AddCommand(newPluginsListCommand())
	cmd.AddCommand(newPluginsRegisterCommand())
	cmd.AddCommand(newPluginsDeleteCommand())

	return cmd
}

func newPluginsListCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plugins",
		Long:  "List all registered plugins, optionally filtered by name substring",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			var plugins []wipp.Plugin
			if name != "" {
				plugins, err = client.Plugins().Search(ctx, name)
			} else {
				plugins, err = client.Plugins().List(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to list plugins: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return printJSON(plugins)
			case OutputFormatYAML:
				return printYAML(plugins)
			default:
				if len(plugins) == 0 {
					fmt.Println("No plugins found")
					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Version", "Container", "Title")

				for _, plugin := range plugins {
					_ = table.Append(plugin.ID, plugin.Name, plugin.Version,
						plugin.ContainerID, plugin.Title)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by name substring (case-insensitive)")

	return cmd
}

func newPluginsRegisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register MANIFEST.json",
		Short: "Register a plugin from a manifest file",
		Long:  "Register a plugin on the WIPP deployment from a WIPP plugin manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read manifest: %w", err)
			}

			var plugin wipp.Plugin
			if err := json.Unmarshal(data, &plugin); err != nil {
				return fmt.Errorf("failed to parse manifest: %w", err)
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			created, err := client.Plugins().Create(ctx, &plugin)
			if err != nil {
				return fmt.Errorf("failed to register plugin: %w", err)
			}

			fmt.Printf("Registered plugin %s %s (%s)\n", created.Name, created.Version, created.ID)

			return nil
		},
	}
}

func newPluginsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.Plugins().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete plugin: %w", err)
			}

			fmt.Printf("Deleted plugin %s\n", args[0])

			return nil
		},
	}
}
