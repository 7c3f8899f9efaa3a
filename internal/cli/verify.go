package cli

import (
	"github.com/gyrostable/clpkit/internal/cli/render"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var (
		constructorArgs string
		wait            bool
	)

	cmd := &cobra.Command{
		Use:   "verify <address> <path:Contract>",
		Short: "Verify a deployed contract on the network's block explorer",
		Long: `Submit the source of a deployed contract to the network's Etherscan-compatible
explorer, compiled with the profile resolved for its source path.

A rejected or failed verification does not affect the deployment; fix the cause and
re-run verify.

Examples:
  clpkit verify 0x1234... contracts/vault/Vault.sol:Vault --network mainnet
  clpkit verify 0x1234... contracts/pools/GyroTwoPool.sol -n polygon --wait
  clpkit verify 0x1234... contracts/Token.sol:Token -n mainnet --constructor-args 0x0000...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.VerifyContract.Run(cmd.Context(), usecase.VerifyContractParams{
				Network:         app.Config.Network,
				Address:         args[0],
				ContractRef:     args[1],
				ConstructorArgs: constructorArgs,
				Wait:            wait,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				if err := renderJSON(cmd, result); err != nil {
					return err
				}
			} else if err := render.NewVerifyRenderer(cmd.OutOrStdout(), useColor(app)).Render(result); err != nil {
				return err
			}
			return result.Failure
		},
	}

	cmd.Flags().StringVar(&constructorArgs, "constructor-args", "", "ABI-encoded constructor arguments (hex)")
	cmd.Flags().BoolVar(&wait, "wait", false, "Poll the explorer until verification completes")

	return cmd
}
