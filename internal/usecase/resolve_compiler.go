package usecase

import (
	"context"
	"fmt"

	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/samber/lo"
)

// ResolveCompilerResult is the compiler setup for one source file
type ResolveCompilerResult struct {
	SourcePath string                 `json:"sourcePath"`
	Profile    config.CompilerProfile `json:"profile"`
	Overridden bool                   `json:"overridden"`
	BinaryPath string                 `json:"binaryPath,omitempty"`
}

// ResolveCompiler picks the compiler profile for a source file and checks the toolchain has it
type ResolveCompiler struct {
	resolver  CompilerProfileResolver
	toolchain CompilerToolchain
}

// NewResolveCompiler creates a new ResolveCompiler use case
func NewResolveCompiler(resolver CompilerProfileResolver, toolchain CompilerToolchain) *ResolveCompiler {
	return &ResolveCompiler{
		resolver:  resolver,
		toolchain: toolchain,
	}
}

// Run resolves the profile for sourcePath
func (uc *ResolveCompiler) Run(ctx context.Context, sourcePath string) (*ResolveCompilerResult, error) {
	profile, overridden := uc.resolver.Resolve(sourcePath)
	result := &ResolveCompilerResult{
		SourcePath: sourcePath,
		Profile:    profile,
		Overridden: overridden,
	}

	if err := checkInstalled(ctx, uc.toolchain, []string{profile.Version}); err != nil {
		return nil, err
	}

	bin, err := uc.toolchain.BinaryPath(ctx, profile.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to locate solc %s: %w", profile.Version, err)
	}
	result.BinaryPath = bin
	return result, nil
}

// ListCompilerProfilesResult summarises the default profile and every override
type ListCompilerProfilesResult struct {
	Default   config.CompilerProfile            `json:"default"`
	Overrides map[string]config.CompilerProfile `json:"overrides"`
	Versions  []VersionStatus                   `json:"versions"`
}

// VersionStatus tells whether a required compiler version is installed
type VersionStatus struct {
	Version   string `json:"version"`
	Installed bool   `json:"installed"`
}

// ListCompilerProfiles reports all configured profiles and their toolchain status
func (uc *ResolveCompiler) ListCompilerProfiles(ctx context.Context) (*ListCompilerProfilesResult, error) {
	installed, err := uc.toolchain.InstalledVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list installed compilers: %w", err)
	}

	result := &ListCompilerProfilesResult{
		Default:   uc.resolver.Default(),
		Overrides: make(map[string]config.CompilerProfile),
	}
	for _, path := range uc.resolver.OverridePaths() {
		profile, _ := uc.resolver.Resolve(path)
		result.Overrides[path] = profile
	}
	for _, version := range uc.resolver.Versions() {
		result.Versions = append(result.Versions, VersionStatus{
			Version:   version,
			Installed: lo.Contains(installed, version),
		})
	}
	return result, nil
}

// checkInstalled fails with ToolchainMissingVersionError on the first version
// that is not available locally
func checkInstalled(ctx context.Context, toolchain CompilerToolchain, versions []string) error {
	installed, err := toolchain.InstalledVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list installed compilers: %w", err)
	}
	for _, version := range versions {
		if !lo.Contains(installed, version) {
			return &domain.ToolchainMissingVersionError{
				Version:   version,
				Available: installed,
			}
		}
	}
	return nil
}
