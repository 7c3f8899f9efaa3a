package config

// ProjectConfig represents the full clpkit.toml configuration
type ProjectConfig struct {
	Solidity  SolidityConfig             `toml:"solidity" json:"solidity"`
	Networks  map[string]*NetworkProfile `toml:"networks" json:"networks"`
	Etherscan EtherscanConfig            `toml:"etherscan" json:"etherscan"`
	Paths     PathsConfig                `toml:"paths" json:"paths"`
	Toolchain ToolchainConfig            `toml:"toolchain" json:"toolchain"`
}

// PathsConfig locates project directories relative to the project root
type PathsConfig struct {
	Sources   string `toml:"sources,omitempty" json:"sources,omitempty"`
	Artifacts string `toml:"artifacts,omitempty" json:"artifacts,omitempty"`
	Cache     string `toml:"cache,omitempty" json:"cache,omitempty"`
	Pools     string `toml:"pools,omitempty" json:"pools,omitempty"`
}

// ToolchainConfig points at the local compiler installation
type ToolchainConfig struct {
	SvmDir string `toml:"svm_dir,omitempty" json:"svmDir,omitempty"`
}

// Default directory names, matching the hardhat layout the contracts were built with
const (
	DefaultSourcesDir   = "contracts"
	DefaultArtifactsDir = "artifacts"
	DefaultCacheDir     = "cache"
	DefaultPoolsDir     = "config/pools"
)

// WithDefaults fills unset paths
func (p PathsConfig) WithDefaults() PathsConfig {
	if p.Sources == "" {
		p.Sources = DefaultSourcesDir
	}
	if p.Artifacts == "" {
		p.Artifacts = DefaultArtifactsDir
	}
	if p.Cache == "" {
		p.Cache = DefaultCacheDir
	}
	if p.Pools == "" {
		p.Pools = DefaultPoolsDir
	}
	return p
}
