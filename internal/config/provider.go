package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/spf13/viper"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		// Try to find project root
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".clpkit"),
		ConfigFile:     resolveConfigPath(projectRoot, v.GetString("config")),
		Network:        v.GetString("network"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		DryRun:         v.GetBool("dry_run"),
	}

	project, err := LoadProjectConfig(projectRoot, cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}
	cfg.Project = project

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find clpkit.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding clpkit.toml
			return "", fmt.Errorf("not in a clpkit project (%s not found)", ConfigFileName)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".clpkit"))

	// Set up environment variables
	v.SetEnvPrefix("CLPKIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("config", ConfigFileName)
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	return v
}

// ProvideCompilerResolver creates a CompilerResolver for Wire dependency injection
func ProvideCompilerResolver(cfg *config.RuntimeConfig) *CompilerResolver {
	return NewCompilerResolver(cfg.Project.Solidity)
}

// ProvideNetworkRegistry creates a NetworkRegistry for Wire dependency injection
func ProvideNetworkRegistry(cfg *config.RuntimeConfig) *NetworkRegistry {
	return NewNetworkRegistry(cfg.Project.Networks, filepath.Join(cfg.ProjectRoot, cfg.Project.Paths.Cache))
}

// ProvideExplorerRegistry creates an ExplorerRegistry for Wire dependency injection
func ProvideExplorerRegistry(cfg *config.RuntimeConfig) *ExplorerRegistry {
	return NewExplorerRegistry(cfg.Project.Etherscan, cfg.Project.Networks)
}

// ProvideRawConfig loads the unexpanded configuration for credential hints
func ProvideRawConfig(cfg *config.RuntimeConfig) (*RawConfig, error) {
	return LoadRawConfig(cfg.ProjectRoot, cfg.ConfigFile)
}
