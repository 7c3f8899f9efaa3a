package usecase

import (
	"context"

	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/samber/lo"
)

// ShowExplorerResult is the resolved explorer setup for a network
type ShowExplorerResult struct {
	Profile       config.ExplorerProfile `json:"profile"`
	KeyVariable   string                 `json:"keyVariable,omitempty"`
	HasCredential bool                   `json:"hasCredential"`
	Gap           bool                   `json:"gap"`
}

// ShowExplorer resolves the verification profile for one network
type ShowExplorer struct {
	resolver  NetworkResolver
	explorers ExplorerResolver
	hints     CredentialHints
}

// NewShowExplorer creates a new ShowExplorer use case
func NewShowExplorer(resolver NetworkResolver, explorers ExplorerResolver, hints CredentialHints) *ShowExplorer {
	return &ShowExplorer{
		resolver:  resolver,
		explorers: explorers,
		hints:     hints,
	}
}

// Run resolves the explorer for network. A missing API key is reported, not returned as an error.
func (uc *ShowExplorer) Run(ctx context.Context, network string) (*ShowExplorerResult, error) {
	if _, err := uc.resolver.ResolveNetwork(ctx, network); err != nil {
		return nil, err
	}

	profile := uc.explorers.Lookup(network)
	result := &ShowExplorerResult{
		Profile:       profile,
		HasCredential: profile.HasCredential(),
		Gap:           lo.Contains(uc.explorers.Gaps(), network),
	}
	if uc.hints != nil {
		result.KeyVariable = uc.hints.APIKeyVariable(network)
	}
	return result, nil
}
