package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/samber/lo"
)

// CheckNetworkResult reports what the live endpoint says about a network
type CheckNetworkResult struct {
	Name            string   `json:"name"`
	URL             string   `json:"url"`
	DeclaredChainID uint64   `json:"declaredChainId,omitempty"`
	LiveChainID     uint64   `json:"liveChainId"`
	LatestBlock     uint64   `json:"latestBlock"`
	ForkURL         string   `json:"forkUrl,omitempty"`
	ForkChainID     uint64   `json:"forkChainId,omitempty"`
	Mismatch        bool     `json:"mismatch"`
	LiveNetworks    []string `json:"liveNetworks,omitempty"`
}

// CheckNetwork connects to a network's RPC endpoint and compares chain IDs.
// It is opt-in: resolution never does this on its own.
type CheckNetwork struct {
	resolver NetworkResolver
	chain    ChainInspector
	progress ProgressSink
}

// NewCheckNetwork creates a new CheckNetwork use case
func NewCheckNetwork(resolver NetworkResolver, chain ChainInspector, progress ProgressSink) *CheckNetwork {
	return &CheckNetwork{
		resolver: resolver,
		chain:    chain,
		progress: progress,
	}
}

// Run probes the network. A declared chain ID that differs from the live one
// is returned as ErrNetworkMismatch together with the result.
func (uc *CheckNetwork) Run(ctx context.Context, name string) (*CheckNetworkResult, error) {
	network, err := uc.resolver.ResolveNetwork(ctx, name)
	if err != nil {
		return nil, err
	}

	result := &CheckNetworkResult{
		Name:            network.Name,
		URL:             network.URL,
		DeclaredChainID: network.ChainID,
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "connecting", Message: fmt.Sprintf("Connecting to %s", name), Spinner: true})
	result.LiveChainID, err = uc.chain.FetchChainID(ctx, network.URL)
	if err != nil {
		uc.progress.Error(fmt.Sprintf("Could not reach %s", name))
		return nil, fmt.Errorf("failed to query chain ID for network %s: %w", name, err)
	}
	result.LatestBlock, err = uc.chain.LatestBlock(ctx, network.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest block for network %s: %w", name, err)
	}

	if network.IsFork() {
		result.ForkURL = network.Forking.URL
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "connecting", Message: "Connecting to fork source", Spinner: true})
		forkChainID, err := uc.chain.FetchChainID(ctx, network.Forking.URL)
		if err != nil {
			uc.progress.Error("Could not reach fork source")
			return nil, fmt.Errorf("failed to query fork source of network %s: %w", name, err)
		}
		result.ForkChainID = forkChainID
	}
	uc.progress.Info(fmt.Sprintf("Connected to %s", name))

	if network.HasChainID() && network.ChainID != result.LiveChainID {
		result.Mismatch = true
		result.LiveNetworks = lo.Without(uc.resolver.NetworksForChain(result.LiveChainID), network.Name)
		err := fmt.Errorf("%w: %s declares chain ID %d but endpoint reports %d",
			domain.ErrNetworkMismatch, name, network.ChainID, result.LiveChainID)
		if len(result.LiveNetworks) > 0 {
			err = fmt.Errorf("%w (configured as %s)", err, strings.Join(result.LiveNetworks, ", "))
		}
		return result, err
	}
	return result, nil
}
