package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/gyrostable/clpkit/internal/domain/config"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// envRefPattern matches every ${VAR_NAME} or $VAR_NAME reference inside a value
var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// EnvRefs returns every variable referenced by a raw value, in order of appearance
func EnvRefs(rawValue string) []string {
	var refs []string
	for _, m := range envRefPattern.FindAllStringSubmatch(rawValue, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		refs = append(refs, name)
	}
	return refs
}

// UnsetEnvRefs returns the referenced variables that are unset or empty
func UnsetEnvRefs(rawValue string) []string {
	var unset []string
	for _, name := range EnvRefs(rawValue) {
		if os.Getenv(name) == "" {
			unset = append(unset, name)
		}
	}
	return unset
}

// GenerateEnvVarName generates a conventional env var name for a network's RPC URL.
// Convention: uppercase, dashes/dots to underscores, append _RPC_URL.
// Examples: polygon -> POLYGON_RPC_URL, polygon-zkevm -> POLYGON_ZKEVM_RPC_URL
func GenerateEnvVarName(networkName string) string {
	return envName(networkName) + "_RPC_URL"
}

// GenerateAPIKeyVarName generates the conventional explorer key variable for a network
func GenerateAPIKeyVarName(networkName string) string {
	return envName(networkName) + "_EXPLORER_API_KEY"
}

func envName(networkName string) string {
	name := strings.ToUpper(networkName)
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}

// RawConfig holds clpkit.toml exactly as written, before env expansion
type RawConfig struct {
	cfg *config.ProjectConfig
}

// LoadRawConfig parses the configuration file without expanding env references
func LoadRawConfig(projectRoot, configFile string) (*RawConfig, error) {
	cfg, _, err := decodeProjectFile(resolveConfigPath(projectRoot, configFile))
	if err != nil {
		return nil, err
	}
	return &RawConfig{cfg: cfg}, nil
}

// NetworkURL returns the unexpanded url of a network
func (r *RawConfig) NetworkURL(network string) (string, bool) {
	profile, ok := r.cfg.Networks[network]
	if !ok {
		return "", false
	}
	return profile.URL, true
}

// APIKeyVariable names the variable the explorer key for network depends on.
// Falls back to the conventional name when the key is a literal or absent.
func (r *RawConfig) APIKeyVariable(network string) string {
	raw, ok := r.cfg.Etherscan.APIKeys[network]
	if !ok {
		raw = r.cfg.Etherscan.APIKey
	}
	if refs := EnvRefs(raw); len(refs) > 0 {
		return refs[0]
	}
	return GenerateAPIKeyVarName(network)
}

// MissingRPCVariables names the env variables a network's url is waiting for:
// the unset references in the raw url, or the conventional name when it is blank.
func (r *RawConfig) MissingRPCVariables(network string) []string {
	raw, ok := r.NetworkURL(network)
	if !ok {
		return nil
	}
	if raw == "" {
		return []string{GenerateEnvVarName(network)}
	}
	if v, isVar := DetectEnvVar(raw); isVar {
		if os.Getenv(v) == "" {
			return []string{v}
		}
		return nil
	}
	return UnsetEnvRefs(raw)
}
