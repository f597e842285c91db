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

// NewGenericDataCommand creates the generic-data command group
func NewGenericDataCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generic-data",
		Aliases: []string{"gd"},
		Short:   "Manage generic data collections",
		Long:    "List, search, create, and delete WIPP generic data collections",
	}

	cmd.AddCommand(newGenericDataListCommand())
	cmd.AddCommand(newGenericDataCreateCommand())
	cmd.AddCommand(newGenericDataDeleteCommand())
	cmd.AddCommand(newGenericDataFilesCommand())

	return cmd
}

func newGenericDataListCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List generic data collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			var collections []wipp.GenericDataCollection
			if name != "" {
				collections, err = client.GenericDataCollections().Search(ctx, name)
			} else {
				collections, err = client.GenericDataCollections().List(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to list generic data collections: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return printJSON(collections)
			case OutputFormatYAML:
				return printYAML(collections)
			default:
				if len(collections) == 0 {
					fmt.Println("No generic data collections found")
					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Type", "Files", "Created")

				for _, collection := range collections {
					collectionType := ""
					if collection.Type != nil {
						collectionType = *collection.Type
					}

					_ = table.Append(collection.ID, collection.Name, collectionType,
						formatInt(collection.NumberOfFiles),
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

func newGenericDataCreateCommand() *cobra.Command {
	var collectionType string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a generic data collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			collection := &wipp.GenericDataCollection{
				Collection: wipp.Collection{Name: args[0]},
			}
			if collectionType != "" {
				collection.Type = &collectionType
			}

			created, err := client.GenericDataCollections().Create(ctx, collection)
			if err != nil {
				return fmt.Errorf("failed to create generic data collection: %w", err)
			}

			fmt.Printf("Created generic data collection %s (%s)\n", created.Name, created.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&collectionType, "type", "", "collection content type")

	return cmd
}

func newGenericDataDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a generic data collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.GenericDataCollections().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete generic data collection: %w", err)
			}

			fmt.Printf("Deleted generic data collection %s\n", args[0])

			return nil
		},
	}
}

func newGenericDataFilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "files ID",
		Short: "List the files of a generic data collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			files, err := client.GenericDataCollections().Files(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list files: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return printJSON(files)
			case OutputFormatYAML:
				return printYAML(files)
			default:
				if len(files) == 0 {
					fmt.Println("No files found")
					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("File Name", "Size")

				for _, file := range files {
					_ = table.Append(file.FileName, fmt.Sprintf("%d", file.FileSize))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}
