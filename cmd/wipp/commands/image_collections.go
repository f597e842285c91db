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

// NewImageCollectionsCommand creates the image-collections command group
func NewImageCollectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "image-collections",
		Aliases: []string{"ic", "image-collection"},
		Short:   "Manage image collections",
		Long:    "List, search, create, and delete WIPP image collections",
	}

	cmd.AddCommand(newImageCollectionsListCommand())
	cmd.AddCommand(newImageCollectionsCreateCommand())
	cmd.AddCommand(newImageCollectionsDeleteCommand())
	cmd.AddCommand(newImageCollectionsImagesCommand())

	return cmd
}

func renderImageCollections(collections []wipp.ImageCollection) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return printJSON(collections)
	case OutputFormatYAML:
		return printYAML(collections)
	default:
		if len(collections) == 0 {
			fmt.Println("No image collections found")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name", "Images", "Locked", "Created")

		for _, collection := range collections {
			_ = table.Append(collection.ID, collection.Name,
				formatInt(collection.NumberOfImages),
				formatBool(collection.Locked),
				formatTime(collection.CreationDate))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func newImageCollectionsListCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List image collections",
		Long:  "List all image collections, optionally filtered by name substring",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			var collections []wipp.ImageCollection
			if name != "" {
				collections, err = client.ImageCollections().Search(ctx, name)
			} else {
				collections, err = client.ImageCollections().List(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to list image collections: %w", err)
			}

			return renderImageCollections(collections)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by name substring (case-insensitive)")

	return cmd
}

func newImageCollectionsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create an image collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			created, err := client.ImageCollections().Create(ctx, &wipp.ImageCollection{
				Collection: wipp.Collection{Name: args[0]},
			})
			if err != nil {
				return fmt.Errorf("failed to create image collection: %w", err)
			}

			fmt.Printf("Created image collection %s (%s)\n", created.Name, created.ID)

			return nil
		},
	}
}

func newImageCollectionsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an image collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			if err := client.ImageCollections().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete image collection: %w", err)
			}

			fmt.Printf("Deleted image collection %s\n", args[0])

			return nil
		},
	}
}

func newImageCollectionsImagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "images ID",
		Short: "List the images of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			images, err := client.ImageCollections().Images(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list images: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return printJSON(images)
			case OutputFormatYAML:
				return printYAML(images)
			default:
				if len(images) == 0 {
					fmt.Println("No images found")
					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("File Name", "Size", "Importing", "Import Error")

				for _, image := range images {
					importError := ""
					if image.ImportError != nil {
						importError = *image.ImportError
					}

					_ = table.Append(image.FileName, fmt.Sprintf("%d", image.FileSize),
						formatBool(image.Importing), importError)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}
