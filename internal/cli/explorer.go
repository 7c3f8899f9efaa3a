package cli

import (
	"github.com/gyrostable/clpkit/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewExplorerCmd creates the explorer command
func NewExplorerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explorer [network]",
		Short: "Show the block explorer used to verify contracts on a network",
		Long: `Show the explorer endpoints and credential status for a network.

The API key comes from [etherscan.api_keys] for the network, then from the global
[etherscan] api_key. A missing key is reported here but only fails at verification.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowExplorer.Run(cmd.Context(), networkArg(app, args))
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return renderJSON(cmd, result)
			}
			return render.NewExplorerRenderer(cmd.OutOrStdout(), useColor(app)).Render(result)
		},
	}
}
