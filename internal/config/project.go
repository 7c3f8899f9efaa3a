package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/joho/godotenv"
)

// ConfigFileName is the default project configuration file
const ConfigFileName = "clpkit.toml"

// loadEnvFiles loads .env files from the project root. Variables already present
// in the process environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				slog.Warn("failed to load env file", "file", envFile, "error", err)
			}
		}
	}
}

// LoadProjectConfig loads .env files and parses the given configuration file.
// configFile may be relative to projectRoot. Env references that are unset expand
// to empty strings; credentials are only checked when used.
func LoadProjectConfig(projectRoot, configFile string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	path := resolveConfigPath(projectRoot, configFile)

	raw, meta, err := decodeProjectFile(path)
	if err != nil {
		return nil, err
	}

	if err := validateProjectConfig(raw, meta); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	expandProjectConfig(raw)
	return raw, nil
}

// decodeProjectFile parses the file without env expansion. The metadata tells
// declared zero values apart from omitted keys.
func decodeProjectFile(path string) (*config.ProjectConfig, toml.MetaData, error) {
	var cfg config.ProjectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, meta, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if cfg.Networks == nil {
		cfg.Networks = make(map[string]*config.NetworkProfile)
	}
	for name, network := range cfg.Networks {
		if network == nil {
			network = &config.NetworkProfile{}
			cfg.Networks[name] = network
		}
		network.Name = name
	}
	cfg.Paths = cfg.Paths.WithDefaults()

	return &cfg, meta, nil
}

func resolveConfigPath(projectRoot, configFile string) string {
	if configFile == "" {
		configFile = ConfigFileName
	}
	if filepath.IsAbs(configFile) {
		return configFile
	}
	return filepath.Join(projectRoot, configFile)
}

// validateProjectConfig checks structural invariants on raw (unexpanded) values
func validateProjectConfig(cfg *config.ProjectConfig, meta toml.MetaData) error {
	if cfg.Solidity.Version == "" {
		return fmt.Errorf("%w: [solidity] version is required for the default compiler profile", domain.ErrInvalidConfig)
	}
	for path, override := range cfg.Solidity.Overrides {
		if override.Version == "" {
			return fmt.Errorf("%w: override for %s must set version", domain.ErrInvalidConfig, path)
		}
	}

	for name, network := range cfg.Networks {
		if name == "" {
			return fmt.Errorf("%w: network name cannot be empty", domain.ErrInvalidNetwork)
		}
		if network.URL == "" {
			return fmt.Errorf("%w: network %s has no url", domain.ErrInvalidNetwork, name)
		}
		if network.ChainID == 0 && meta.IsDefined("networks", name, "chain_id") {
			return fmt.Errorf("%w: network %s: %w: chain_id must be a positive integer", domain.ErrInvalidNetwork, name, domain.ErrInvalidChainID)
		}
		if network.Forking != nil && network.Forking.URL == "" {
			return fmt.Errorf("%w: network %s has a forking block without url", domain.ErrInvalidNetwork, name)
		}
	}

	seen := make(map[string]bool)
	for _, chain := range cfg.Etherscan.CustomChains {
		if chain.Network == "" {
			return fmt.Errorf("%w: custom chain entry without network", domain.ErrInvalidConfig)
		}
		if chain.ChainID == 0 {
			return fmt.Errorf("%w: custom chain %s", domain.ErrInvalidChainID, chain.Network)
		}
		if seen[chain.Network] {
			return fmt.Errorf("%w: custom chain %s declared twice", domain.ErrInvalidConfig, chain.Network)
		}
		seen[chain.Network] = true
	}

	return nil
}

// expandProjectConfig replaces ${VAR} references with environment values
func expandProjectConfig(cfg *config.ProjectConfig) {
	for _, network := range cfg.Networks {
		network.URL = os.ExpandEnv(network.URL)
		if network.Forking != nil {
			network.Forking.URL = os.ExpandEnv(network.Forking.URL)
		}
	}

	cfg.Etherscan.APIKey = os.ExpandEnv(cfg.Etherscan.APIKey)
	for name, key := range cfg.Etherscan.APIKeys {
		cfg.Etherscan.APIKeys[name] = os.ExpandEnv(key)
	}
	for i := range cfg.Etherscan.CustomChains {
		urls := &cfg.Etherscan.CustomChains[i].URLs
		urls.APIURL = os.ExpandEnv(urls.APIURL)
		urls.BrowserURL = os.ExpandEnv(urls.BrowserURL)
	}

	cfg.Toolchain.SvmDir = os.ExpandEnv(cfg.Toolchain.SvmDir)
}
