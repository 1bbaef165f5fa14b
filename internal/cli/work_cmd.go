package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rfontaine/stagegate/internal/cli/formatter"
	"github.com/rfontaine/stagegate/internal/domain"
	"github.com/spf13/cobra"
)

func newWorkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Manage work items",
	}

	cmd.AddCommand(
		newWorkAddCmd(app),
		newWorkListCmd(app),
		newWorkInspectCmd(app),
		newWorkMetaCmd(app),
		newWorkBlockCmd(app),
		newWorkReopenCmd(app),
		newWorkCancelCmd(app),
		newWorkArchiveCmd(app),
		newWorkRemoveCmd(app),
	)

	return cmd
}

func newWorkAddCmd(app *App) *cobra.Command {
	var title, typ string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new work item",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &domain.WorkItem{
				Title: title,
				Type:  domain.WorkItemType(typ),
			}
			if err := app.WorkItems.Create(context.Background(), w); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created work item %s (%s)\n", w.Title, w.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Work item title")
	cmd.Flags().StringVar(&typ, "type", "feature", "Work item type (feature|enhancement|bugfix|research|planning|refactoring|infrastructure)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newWorkListCmd(app *App) *cobra.Command {
	var includeArchived bool
	var phase string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var items []*domain.WorkItem
			var err error
			if phase != "" {
				items, err = app.WorkItems.ListByPhase(ctx, domain.Phase(phase))
			} else {
				items, err = app.WorkItems.List(ctx, includeArchived)
			}
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No work items."))
				return nil
			}
			for _, w := range items {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkItemRow(w))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived items")
	cmd.Flags().StringVar(&phase, "phase", "", "Only items currently in this phase")

	return cmd
}

func newWorkInspectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect ID",
		Short: "Show work item details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.WorkItems.GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}

			var b strings.Builder
			b.WriteString(fmt.Sprintf("%s  %s\n\n", formatter.Bold(w.Title), formatter.TypeBadge(w.Type)))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("ID     "), formatter.TruncID(w.ID)))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("PHASE  "), formatter.PhaseBadge(w.Phase)))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("STATUS "), formatter.StatusPill(w.Status)))
			if w.MetadataInvalid {
				b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("WARNING"),
					formatter.StyleRed.Render("stored metadata document is malformed")))
			}
			if len(w.Metadata.AcceptanceCriteria) > 0 {
				verified := 0
				for _, c := range w.Metadata.AcceptanceCriteria {
					if c.Verified {
						verified++
					}
				}
				b.WriteString(fmt.Sprintf("  %s  %d/%d verified\n", formatter.Dim("CRITERIA"),
					verified, len(w.Metadata.AcceptanceCriteria)))
			}
			if len(w.Metadata.Tasks) > 0 {
				done := 0
				for _, task := range w.Metadata.Tasks {
					if task.Status == domain.TaskDone {
						done++
					}
				}
				b.WriteString(fmt.Sprintf("  %s  %d/%d done\n", formatter.Dim("TASKS  "), done, len(w.Metadata.Tasks)))
			}
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("UPDATED"), formatter.HumanTimestamp(w.UpdatedAt)))

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Work Item", b.String()))
			return nil
		},
	}
	return cmd
}

func newWorkMetaCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "meta ID",
		Short: "Replace a work item's metadata document from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading metadata file: %w", err)
			}
			meta, err := domain.ParseMetadata(raw)
			if err != nil {
				return fmt.Errorf("parsing metadata file: %w", err)
			}
			if err := app.WorkItems.UpdateMetadata(context.Background(), args[0], meta); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated metadata for work item %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to a JSON metadata document")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newWorkBlockCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "block ID",
		Short: "Block a work item, suspending progression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.WorkItems.Block(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Blocked work item %s\n", args[0])
			return nil
		},
	}
}

func newWorkReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen ID",
		Short: "Clear a blocked or cancelled status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.WorkItems.Reopen(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reopened work item %s\n", args[0])
			return nil
		},
	}
}

func newWorkCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.WorkItems.Cancel(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled work item %s\n", args[0])
			return nil
		},
	}
}

func newWorkArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.WorkItems.Archive(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived work item %s\n", args[0])
			return nil
		},
	}
}

func newWorkRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.WorkItems.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed work item %s\n", args[0])
			return nil
		},
	}
}
