package cli

import (
	"github.com/rfontaine/stagegate/internal/routing"
	"github.com/rfontaine/stagegate/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	WorkItems   service.WorkItemService
	Progression service.ProgressionService
	Audit       service.AuditService
	Router      *routing.Router
}

// NewRootCmd creates the top-level "stagegate" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "stagegate",
		Short: "Phase gate validation and progression for work items",
	}

	root.AddCommand(
		newWorkCmd(app),
		newGateCmd(app),
		newAuditCmd(app),
		newRouteCmd(app),
	)

	return root
}
