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

// NewEntitiesCommand creates the entities command group, a raw view onto any
// resource kind the deployment exposes (jobs, workflows, notebooks, ...).
func NewEntitiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entities",
		Aliases: []string{"entity"},
		Short:   "Browse any WIPP resource kind",
		Long: `Browse records of any resource kind the WIPP deployment exposes,
including kinds without a dedicated command (jobs, workflows, notebooks,
pyramids, stitching vectors, ...).`,
	}

	cmd.AddCommand(newEntitiesListCommand())
	cmd.AddCommand(newEntitiesSummaryCommand())

	return cmd
}

func renderEntities(entities []wipp.Entity) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return printJSON(entities)
	case OutputFormatYAML:
		return printYAML(entities)
	default:
		if len(entities) == 0 {
			fmt.Println("No records found")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name", "Kind")

		for _, entity := range entities {
			id, name := "", ""
			if generic, ok := entity.(wipp.GenericEntity); ok {
				id, name = generic.ID(), generic.Name()
			}

			_ = table.Append(id, name, entity.Kind())
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func newEntitiesListCommand() *cobra.Command {
	var (
		name string
		page int
	)

	cmd := &cobra.Command{
		Use:   "list KIND",
		Short: "List records of a resource kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			var entities []wipp.Entity

			switch {
			case name != "":
				entities, err = client.Entities().Search(ctx, args[0], name)
			case cmd.Flags().Changed("page"):
				entities, err = client.Entities().Page(ctx, args[0], page)
			default:
				entities, err = client.Entities().List(ctx, args[0])
			}

			if err != nil {
				return fmt.Errorf("failed to list %s: %w", args[0], err)
			}

			return renderEntities(entities)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by name substring (case-insensitive)")
	cmd.Flags().IntVar(&page, "page", 0, "fetch a single page instead of all pages")

	return cmd
}

func newEntitiesSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary KIND",
		Short: "Show pagination metadata for a resource kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			summary, err := client.Entities().Summary(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch %s summary: %w", args[0], err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return printJSON(summary)
			case OutputFormatYAML:
				return printYAML(summary)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Total Elements", fmt.Sprintf("%d", summary.TotalElements))
				_ = table.Append("Total Pages", fmt.Sprintf("%d", summary.TotalPages))
				_ = table.Append("Page Size", fmt.Sprintf("%d", summary.Size))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}
