package cli

import (
	"context"
	"fmt"

	"github.com/rfontaine/stagegate/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAuditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "audit ID",
		Short: "Show the phase transition history of a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Audit.ListByWorkItem(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Header("Audit Trail"))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAuditTrail(events))
			return nil
		},
	}
}
