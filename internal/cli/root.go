package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/farm-deploy/internal/adapters/progress"
	"github.com/trebuchet-org/farm-deploy/internal/app"
	"github.com/trebuchet-org/farm-deploy/internal/cli/render"
	"github.com/trebuchet-org/farm-deploy/internal/config"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "farm-deploy",
		Short: "Deploy a staging farming setup and verify its sources",
		Long: `farm-deploy creates a reward token, a staking token, a farming contract
and a strategy bound to it on the configured network, writes their addresses
to <network>Addresses.json and submits every contract for source verification.

Configuration comes from FARM_* environment variables, .env files,
.farm/config.local.json and foundry.toml.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootstrap(cmd)
		},
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// runBootstrap performs one run. Configuration problems are returned; a
// failed run is logged and reported as handled.
func runBootstrap(cmd *cobra.Command) error {
	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	v := config.SetupViper(projectRoot, cmd)
	sink := progress.NewSpinnerSink(cmd.ErrOrStderr(), !v.GetBool("non_interactive"))

	appInstance, cleanup, err := app.InitApp(v, sink)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer cleanup()

	result := appInstance.Bootstrap.Run(cmd.Context())
	sink.Done()

	if err := render.NewBootstrapRenderer(cmd.OutOrStdout()).Render(result); err != nil {
		return err
	}

	if result.Err != nil {
		appInstance.Log.Error(result.Err.Error(), "stage", result.Stage, "network", result.Network)
		return nil
	}

	appInstance.Log.Info("Success", "network", result.Network)
	return nil
}
