package cli

import (
	"context"
	"fmt"

	"github.com/rfontaine/stagegate/internal/cli/formatter"
	"github.com/rfontaine/stagegate/internal/routing"
	"github.com/spf13/cobra"
)

// displayed in a stable order rather than map order
var unitDisplayOrder = []routing.ProcessingUnit{
	routing.DefinitionUnit,
	routing.PlanningUnit,
	routing.ImplementationUnit,
	routing.ReviewUnit,
	routing.ReleaseUnit,
	routing.EvolutionUnit,
}

func newRouteCmd(app *App) *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Show per-unit work queues",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if unit != "" {
				items, err := app.Router.Queue(ctx, routing.ProcessingUnit(unit))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Header(unit + " queue"))
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Empty."))
					return nil
				}
				for _, w := range items {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkItemRow(w))
				}
				return nil
			}

			queues, err := app.Router.Queues(ctx)
			if err != nil {
				return err
			}
			for _, u := range unitDisplayOrder {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Header(string(u)))
				items := queues[u]
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Empty."))
					continue
				}
				for _, w := range items {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkItemRow(w))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "", "Show only this unit's queue")

	return cmd
}
