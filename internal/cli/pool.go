package cli

import (
	"github.com/gyrostable/clpkit/internal/cli/render"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/spf13/cobra"
)

// NewPoolCmd creates the pool command
func NewPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Prepare pool deployment parameters",
		Long: `Turn pool definitions in config/pools into complete deployment parameters for a
network. Tokens are resolved through the address book and every omitted parameter is
filled with the harness default.`,
	}

	cmd.AddCommand(newPoolParamsCmd())
	cmd.AddCommand(newPoolListCmd())
	return cmd
}

func newPoolParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "params <pool-name>",
		Short:   "Show the deployment parameters of a pool",
		Example: `  clpkit pool params usdc-weth -n mainnet --json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.PreparePool.Run(cmd.Context(), usecase.PreparePoolParams{
				PoolName: args[0],
				Network:  app.Config.Network,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return renderJSON(cmd, result)
			}
			return render.NewPoolRenderer(cmd.OutOrStdout(), useColor(app)).RenderParams(result)
		},
	}
}

func newPoolListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pool definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			names, err := app.PreparePool.ListPools(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return renderJSON(cmd, names)
			}
			return render.NewPoolRenderer(cmd.OutOrStdout(), useColor(app)).RenderList(names)
		},
	}
}
