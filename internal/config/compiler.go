package config

import (
	"sort"

	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/samber/lo"
)

// CompilerResolver selects the compiler profile for a source file
type CompilerResolver struct {
	defaultProfile config.CompilerProfile
	overrides      map[string]config.CompilerProfile
}

// NewCompilerResolver creates a resolver over the [solidity] section
func NewCompilerResolver(solidity config.SolidityConfig) *CompilerResolver {
	overrides := make(map[string]config.CompilerProfile, len(solidity.Overrides))
	for path, profile := range solidity.Overrides {
		overrides[path] = profile
	}
	return &CompilerResolver{
		defaultProfile: solidity.Default(),
		overrides:      overrides,
	}
}

// Resolve returns the override registered for exactly this path, or the default profile.
// No glob, prefix or path cleaning is applied. The second return value reports whether
// an override matched.
func (r *CompilerResolver) Resolve(sourcePath string) (config.CompilerProfile, bool) {
	if profile, ok := r.overrides[sourcePath]; ok {
		return profile, true
	}
	return r.defaultProfile, false
}

// Default returns the default compiler profile
func (r *CompilerResolver) Default() config.CompilerProfile {
	return r.defaultProfile
}

// OverridePaths returns the override keys in sorted order
func (r *CompilerResolver) OverridePaths() []string {
	paths := lo.Keys(r.overrides)
	sort.Strings(paths)
	return paths
}

// Versions returns every distinct compiler version referenced by the configuration
func (r *CompilerResolver) Versions() []string {
	seen := map[string]bool{r.defaultProfile.Version: true}
	versions := []string{r.defaultProfile.Version}
	for _, path := range r.OverridePaths() {
		v := r.overrides[path].Version
		if !seen[v] {
			seen[v] = true
			versions = append(versions, v)
		}
	}
	return versions
}
