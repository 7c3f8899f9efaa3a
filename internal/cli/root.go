package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/gyrostable/clpkit/internal/app"
	"github.com/gyrostable/clpkit/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clpkit",
		Short: "Build and network configuration for the concentrated liquidity pool contracts",
		Long: `clpkit reads clpkit.toml at the project root and answers the questions a
build or deploy pipeline asks: which compiler compiles a source file, what a network
name connects to, which explorer verifies on it and what a pool deployment needs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot)
			bindGlobalFlags(v, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., mainnet, polygon)")
	rootCmd.PersistentFlags().String("config", config.ConfigFileName, "Configuration file relative to the project root")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "build",
		Title: "Build Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "network",
		Title: "Network Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "deployment",
		Title: "Deployment Commands",
	})

	compilerCmd := NewCompilerCmd()
	compilerCmd.GroupID = "build"
	rootCmd.AddCommand(compilerCmd)

	compileCmd := NewCompileCmd()
	compileCmd.GroupID = "build"
	rootCmd.AddCommand(compileCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "network"
	rootCmd.AddCommand(networksCmd)

	explorerCmd := NewExplorerCmd()
	explorerCmd.GroupID = "network"
	rootCmd.AddCommand(explorerCmd)

	verifyCmd := NewVerifyCmd()
	verifyCmd.GroupID = "deployment"
	rootCmd.AddCommand(verifyCmd)

	poolCmd := NewPoolCmd()
	poolCmd.GroupID = "deployment"
	rootCmd.AddCommand(poolCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// globalFlagKeys maps flag names to viper keys
var globalFlagKeys = map[string]string{
	"network":         "network",
	"config":          "config",
	"debug":           "debug",
	"non-interactive": "non_interactive",
	"json":            "json",
	"dry-run":         "dry_run",
}

// bindGlobalFlags binds command flags to viper
func bindGlobalFlags(v *viper.Viper, cmd *cobra.Command) {
	// Visit only walks flags that have been changed
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := globalFlagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})
	if isNonInteractive() {
		v.Set("non_interactive", true)
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// isNonInteractive checks if the environment is non-interactive
func isNonInteractive() bool {
	return os.Getenv("CI") == "true" ||
		os.Getenv("NO_COLOR") != ""
}

// useColor reports whether renderers may emit ANSI colors
func useColor(a *app.App) bool {
	return !a.Config.NonInteractive && !isNonInteractive()
}

// networkArg picks the positional network name, falling back to --network
func networkArg(a *app.App, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.Config.Network
}
