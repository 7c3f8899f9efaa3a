package usecase

import (
	"context"
	"fmt"

	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
)

// ShowNetworkResult is one network profile with its explorer setup
type ShowNetworkResult struct {
	Network       *config.NetworkProfile `json:"network"`
	ChainID       uint64                 `json:"chainId,omitempty"`
	ChainIDSource string                 `json:"chainIdSource,omitempty"`
	Explorer      config.ExplorerProfile `json:"explorer"`
}

// ShowNetwork resolves a single network by name
type ShowNetwork struct {
	resolver  NetworkResolver
	explorers ExplorerResolver
	selector  NetworkSelector
	config    *config.RuntimeConfig
}

// NewShowNetwork creates a new ShowNetwork use case
func NewShowNetwork(
	cfg *config.RuntimeConfig,
	resolver NetworkResolver,
	explorers ExplorerResolver,
	selector NetworkSelector,
) *ShowNetwork {
	return &ShowNetwork{
		config:    cfg,
		resolver:  resolver,
		explorers: explorers,
		selector:  selector,
	}
}

// Run resolves name. An empty name falls back to --network, then to the
// interactive picker; it never silently picks a network.
func (uc *ShowNetwork) Run(ctx context.Context, name string) (*ShowNetworkResult, error) {
	name, err := selectNetwork(ctx, uc.config, uc.resolver, uc.selector, name)
	if err != nil {
		return nil, err
	}

	network, err := uc.resolver.ResolveNetwork(ctx, name)
	if err != nil {
		return nil, err
	}

	result := &ShowNetworkResult{
		Network:  network,
		Explorer: uc.explorers.Lookup(name),
	}
	if chainID, source, err := uc.resolver.ResolveChainID(ctx, name, false); err == nil {
		result.ChainID = chainID
		result.ChainIDSource = source
	}
	return result, nil
}

// selectNetwork picks the network to operate on: the explicit argument, the
// --network flag, or an interactive choice
func selectNetwork(
	ctx context.Context,
	cfg *config.RuntimeConfig,
	resolver NetworkResolver,
	selector NetworkSelector,
	name string,
) (string, error) {
	if name != "" {
		return name, nil
	}
	if cfg != nil && cfg.Network != "" {
		return cfg.Network, nil
	}
	if selector == nil || (cfg != nil && cfg.NonInteractive) {
		return "", &domain.UnknownNetworkError{}
	}
	names := resolver.GetNetworks(ctx)
	if len(names) == 0 {
		return "", fmt.Errorf("no networks configured: %w", domain.ErrUnknownNetwork)
	}
	return selector.SelectNetwork(ctx, names, "Select network")
}
