package config

import "fmt"

// OptimizerSettings controls the solc optimizer. Runs trades deployed bytecode size
// against the gas cost of repeated execution.
type OptimizerSettings struct {
	Enabled bool `toml:"enabled" json:"enabled"`
	Runs    int  `toml:"runs" json:"runs"`
}

// CompilerProfile is a complete compiler selection. Overrides restate every field,
// nothing is inherited from the default profile.
type CompilerProfile struct {
	Version    string            `toml:"version" json:"version"`
	EVMVersion string            `toml:"evm_version,omitempty" json:"evmVersion,omitempty"`
	Optimizer  OptimizerSettings `toml:"optimizer" json:"optimizer"`
}

// Key identifies the profile for grouping files into compilation units
func (p CompilerProfile) Key() string {
	evm := p.EVMVersion
	if evm == "" {
		evm = "default"
	}
	if !p.Optimizer.Enabled {
		return fmt.Sprintf("%s/%s/no-opt", p.Version, evm)
	}
	return fmt.Sprintf("%s/%s/runs-%d", p.Version, evm, p.Optimizer.Runs)
}

// SolidityConfig represents the [solidity] section of clpkit.toml.
// The embedded profile is the default; Overrides are keyed by project-relative path.
type SolidityConfig struct {
	CompilerProfile
	Overrides map[string]CompilerProfile `toml:"overrides,omitempty" json:"overrides,omitempty"`
}

// Default returns the default compiler profile
func (s SolidityConfig) Default() CompilerProfile {
	return s.CompilerProfile
}
