package cli

import (
	"github.com/gyrostable/clpkit/internal/cli/render"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/spf13/cobra"
)

// NewCompilerCmd creates the compiler command
func NewCompilerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compiler",
		Short: "Inspect compiler profiles",
		Long: `Inspect the compiler profiles configured in the [solidity] section of clpkit.toml.

A source file compiles with the override registered for its exact project-relative
path, or with the default profile otherwise.`,
	}

	cmd.AddCommand(newCompilerResolveCmd())
	cmd.AddCommand(newCompilerListCmd())
	return cmd
}

func newCompilerResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>",
		Short: "Show the compiler profile for a source file",
		Example: `  clpkit compiler resolve contracts/vault/Vault.sol
  clpkit compiler resolve contracts/pools/GyroTwoPool.sol --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ResolveCompiler.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return renderJSON(cmd, result)
			}
			return render.NewCompilerRenderer(cmd.OutOrStdout(), useColor(app)).RenderResolved(result)
		},
	}
}

func newCompilerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List compiler profiles and installed versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ResolveCompiler.ListCompilerProfiles(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return renderJSON(cmd, result)
			}
			return render.NewCompilerRenderer(cmd.OutOrStdout(), useColor(app)).RenderProfiles(result)
		},
	}
}

// NewCompileCmd creates the compile command
func NewCompileCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile all sources with their resolved compiler profiles",
		Long: `Walk the source directory, group every .sol file by its resolved compiler
profile and run solc once per group. Every required compiler version must already be
installed; nothing is downloaded.

Use --dry-run to print the compilation units without compiling.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.Compile.Run(cmd.Context(), usecase.CompileParams{DryRun: dryRun})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return renderJSON(cmd, result)
			}
			return render.NewCompilerRenderer(cmd.OutOrStdout(), useColor(app)).RenderCompile(result)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the compilation units without compiling")
	return cmd
}
