package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/polusai/wipp-client/pkg/wipp"
)

// NewCsvCollectionsCommand creates the csv-collections command group
func NewCsvCollectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "csv-collections",
		Aliases: []string{"cc", "csv-collection"},
		Short:   "Manage CSV collections",
		Long:    "List, search, create, and delete WIPP CSV collections",
	}

	cmd.AddCommand(newCsvCollectionsListCommand())
	cmd.AddCommand(newCsvCollectionsCreateCommand())
	cmd.AddCommand(newCsvCollectionsDeleteCommand())
	cmd.AddCommand(newCsvCollectionsFilesCommand())

	return cmd
}

func newCsvCollectionsListCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List CSV collections",
		Long:  "List all CSV collections, optionally filtered by name substring",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			var collections []wipp.CsvCollection
			if name != "" {
				collections, err = client.CsvCollections().Search(ctx, name)
			} else {
				collections, err = client.CsvCollections().List(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to list CSV collections: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return printJSON(collections)
			case OutputFormatYAML:
				return printYAML(collections)
			default:
				if len(collections) == 0 {
					fmt.Println("No CSV collections found")
					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Files", "Locked", "Created")

				for _, collection := range collections {
					_ = table.Append(collection.ID, collection.Name,
						formatInt(collection.NumberOfCsvFiles),
						formatBool(collection.Locked),
						formatTime(collection.CreationDate))
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

func newCsvCollectionsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a CSV collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			created, err := client.CsvCollections().Create(ctx, &wipp.CsvCollection{
				Collection: wipp.Collection{Name: args[0]},
			})
			if err != nil {
				return fmt.Errorf("failed to create CSV collection: %w", err)
			}

			fmt.Printf("Created CSV collection %s (%s)\n", created.Name, created.ID)

			return nil
		},
	}
}

func newCsvCollectionsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a CSV collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.CsvCollections().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete CSV collection: %w", err)
			}

			fmt.Printf("Deleted CSV collection %s\n", args[0])

			return nil
		},
	}
}

func newCsvCollectionsFilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "files ID",
		Short: "List the CSV files of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			files, err := client.CsvCollections().CsvFiles(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list CSV files: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return printJSON(files)
			case OutputFormatYAML:
				return printYAML(files)
			default:
				if len(files) == 0 {
					fmt.Println("No CSV files found")
					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("File Name", "Size", "Importing")

				for _, file := range files {
					_ = table.Append(file.FileName, fmt.Sprintf("%d", file.FileSize),
						formatBool(file.Importing))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}
