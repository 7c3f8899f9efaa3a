package cli

import (
	"github.com/gyrostable/clpkit/internal/cli/render"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks from clpkit.toml",
		Long: `List all networks configured in the [networks] section of clpkit.toml.

Chain IDs come from the configuration when declared. With --probe, networks without
a declared chain ID are queried over RPC and the answer is cached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Probe: probe})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return renderJSON(cmd, result)
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout(), useColor(app)).RenderNetworksList(result)
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "Query RPC endpoints for undeclared chain IDs")

	cmd.AddCommand(newNetworksShowCmd())
	cmd.AddCommand(newNetworksCheckCmd())
	return cmd
}

func newNetworksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show the connection parameters of a network",
		Long: `Resolve a network name to its connection parameters and explorer profile.

Without a name the --network flag is used. In an interactive terminal a picker is
offered when neither is given; there is no default network.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			result, err := app.ShowNetwork.Run(cmd.Context(), name)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return renderJSON(cmd, result)
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout(), useColor(app)).RenderNetwork(result)
		},
	}
}

func newNetworksCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [name]",
		Short: "Probe a network endpoint and compare chain IDs",
		Long: `Connect to the network's RPC endpoint, fetch the live chain ID and latest block
and compare them with the declared chain ID. For forked networks the fork source is
probed as well. Exits non-zero on a mismatch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, runErr := app.CheckNetwork.Run(cmd.Context(), networkArg(app, args))
			if result == nil {
				return runErr
			}

			if app.Config.JSON {
				if err := renderJSON(cmd, result); err != nil {
					return err
				}
				return runErr
			}
			if err := render.NewNetworksRenderer(cmd.OutOrStdout(), useColor(app)).RenderCheck(result); err != nil {
				return err
			}
			return runErr
		},
	}
}
