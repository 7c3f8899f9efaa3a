package config

import (
	"context"

	"github.com/gyrostable/clpkit/internal/config"
	domainconfig "github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/usecase"
)

// NetworkResolverAdapter adapts the config.NetworkRegistry to the usecase.NetworkResolver interface
type NetworkResolverAdapter struct {
	registry *config.NetworkRegistry
	fetcher  config.ChainIDFetcher
}

// NewNetworkResolverAdapter creates a new adapter. fetcher is only used for
// networks that do not declare a chain ID.
func NewNetworkResolverAdapter(registry *config.NetworkRegistry, fetcher config.ChainIDFetcher) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		registry: registry,
		fetcher:  fetcher,
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	// The underlying registry doesn't use context, but we accept it for interface compatibility
	return a.registry.Names()
}

// ResolveNetwork resolves a network name to its configuration
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.NetworkProfile, error) {
	return a.registry.Resolve(networkName)
}

// ResolveChainID returns the chain ID of a network and where it came from
func (a *NetworkResolverAdapter) ResolveChainID(ctx context.Context, networkName string, probe bool) (uint64, string, error) {
	var fetcher config.ChainIDFetcher
	if probe {
		fetcher = a.fetcher
	}
	chainID, source, err := a.registry.ChainID(ctx, networkName, fetcher)
	return chainID, string(source), err
}

// NetworksForChain returns the configured networks declaring or cached for chainID
func (a *NetworkResolverAdapter) NetworksForChain(chainID uint64) []string {
	return a.registry.NetworksForChain(chainID)
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
