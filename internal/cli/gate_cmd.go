package cli

import (
	"context"
	"fmt"

	"github.com/rfontaine/stagegate/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newGateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Validate and advance phase gates",
	}

	cmd.AddCommand(
		newGateCheckCmd(app),
		newGateAdvanceCmd(app),
	)

	return cmd
}

func newGateCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check ID",
		Short: "Dry-run the gate governing the item's next transition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := app.WorkItems.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			result, err := app.Progression.ValidateCurrentGate(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGateResult(w.Phase, result))
			return nil
		},
	}
}

func newGateAdvanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "advance ID",
		Short: "Advance a work item to its next phase if the gate passes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Progression.AdvanceToNextPhase(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTransition(result))
			return nil
		},
	}
}
