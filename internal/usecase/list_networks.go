package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gyrostable/clpkit/internal/domain"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Probe asks RPC endpoints for chain IDs the configuration leaves unset
	Probe bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus `json:"networks"`
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name          string `json:"name"`
	URL           string `json:"url,omitempty"`
	ChainID       uint64 `json:"chainId,omitempty"`
	ChainIDSource string `json:"chainIdSource,omitempty"`
	ForkURL       string `json:"forkUrl,omitempty"`
	Explorer      bool   `json:"explorer"`
	Error         error  `json:"-"`
}

func (s NetworkStatus) MarshalJSON() ([]byte, error) {
	type plain NetworkStatus
	out := struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain: plain(s)}
	if s.Error != nil {
		out.Error = s.Error.Error()
	}
	return json.Marshal(out)
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver  NetworkResolver
	explorers ExplorerResolver
	hints     CredentialHints
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver, explorers ExplorerResolver, hints CredentialHints) *ListNetworks {
	return &ListNetworks{
		resolver:  resolver,
		explorers: explorers,
		hints:     hints,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{
			Name: name,
		}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = withRPCHint(err, uc.hints, name)
			networks = append(networks, status)
			continue
		}
		status.URL = info.URL
		if info.IsFork() {
			status.ForkURL = info.Forking.URL
		}

		// A missing chain ID is not an error when we are not allowed to probe
		chainID, source, err := uc.resolver.ResolveChainID(ctx, name, params.Probe)
		if err == nil {
			status.ChainID = chainID
			status.ChainIDSource = source
		} else if params.Probe {
			status.Error = err
		}

		explorer := uc.explorers.Lookup(name)
		status.Explorer = explorer.APIURL != "" && explorer.HasCredential()

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}

// withRPCHint names the env variables an unusable network url depends on
func withRPCHint(err error, hints CredentialHints, name string) error {
	if hints == nil || !errors.Is(err, domain.ErrInvalidNetwork) {
		return err
	}
	if vars := hints.MissingRPCVariables(name); len(vars) > 0 {
		return fmt.Errorf("%w (set %s)", err, strings.Join(vars, ", "))
	}
	return err
}
