package usecase

import (
	"context"
	"testing"

	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExplorers() *fakeExplorers {
	return &fakeExplorers{profiles: map[string]config.ExplorerProfile{
		"mainnet": {ChainID: 1, APIKey: "key", APIURL: "https://api.etherscan.io/api", BrowserURL: "https://etherscan.io"},
		"polygon": {ChainID: 137, APIURL: "https://api.polygonscan.com/api"},
	}}
}

func TestListNetworks_Run(t *testing.T) {
	ctx := context.Background()
	uc := NewListNetworks(sampleNetworks(), sampleExplorers(), fakeHints{})

	t.Run("without probing", func(t *testing.T) {
		result, err := uc.Run(ctx, ListNetworksParams{})
		require.NoError(t, err)
		require.Len(t, result.Networks, 3)

		byName := make(map[string]NetworkStatus)
		for _, n := range result.Networks {
			byName[n.Name] = n
		}
		assert.Equal(t, uint64(1), byName["mainnet"].ChainID)
		assert.True(t, byName["mainnet"].Explorer)
		assert.Equal(t, "https://polygon-rpc.com", byName["polygon"].URL)
		assert.Zero(t, byName["polygon"].ChainID)
		assert.NoError(t, byName["polygon"].Error)
		assert.False(t, byName["polygon"].Explorer)
		assert.Equal(t, "https://mainnet.example/v3/abc", byName["localfork"].ForkURL)
	})

	t.Run("with probing", func(t *testing.T) {
		result, err := uc.Run(ctx, ListNetworksParams{Probe: true})
		require.NoError(t, err)
		for _, n := range result.Networks {
			if n.Name == "polygon" {
				assert.Equal(t, uint64(137), n.ChainID)
				assert.Equal(t, "rpc", n.ChainIDSource)
			}
		}
	})
}

func TestListNetworks_RPCHint(t *testing.T) {
	networks := sampleNetworks()
	networks.networks["broken"] = &config.NetworkProfile{}
	networks.invalid = map[string]bool{"broken": true}

	result, err := NewListNetworks(networks, sampleExplorers(), fakeHints{}).Run(context.Background(), ListNetworksParams{})
	require.NoError(t, err)

	for _, n := range result.Networks {
		if n.Name != "broken" {
			assert.NoError(t, n.Error)
			continue
		}
		require.Error(t, n.Error)
		assert.ErrorIs(t, n.Error, domain.ErrInvalidNetwork)
		assert.Contains(t, n.Error.Error(), "set BROKEN_RPC_URL")
	}
}

func TestShowNetwork_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit name", func(t *testing.T) {
		uc := NewShowNetwork(&config.RuntimeConfig{}, sampleNetworks(), sampleExplorers(), nil)
		result, err := uc.Run(ctx, "polygon")
		require.NoError(t, err)
		assert.Equal(t, "polygon", result.Network.Name)
		assert.Equal(t, "https://polygon-rpc.com", result.Network.URL)
		assert.Zero(t, result.ChainID)
		assert.Equal(t, "https://api.polygonscan.com/api", result.Explorer.APIURL)
	})

	t.Run("falls back to --network", func(t *testing.T) {
		uc := NewShowNetwork(&config.RuntimeConfig{Network: "mainnet"}, sampleNetworks(), sampleExplorers(), nil)
		result, err := uc.Run(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), result.ChainID)
		assert.Equal(t, "declared", result.ChainIDSource)
	})

	t.Run("interactive picker", func(t *testing.T) {
		selector := &fakeSelector{choice: "localfork"}
		uc := NewShowNetwork(&config.RuntimeConfig{}, sampleNetworks(), sampleExplorers(), selector)
		result, err := uc.Run(ctx, "")
		require.NoError(t, err)
		assert.True(t, selector.called)
		assert.True(t, result.Network.IsFork())
	})

	t.Run("non-interactive without a name", func(t *testing.T) {
		selector := &fakeSelector{choice: "mainnet"}
		uc := NewShowNetwork(&config.RuntimeConfig{NonInteractive: true}, sampleNetworks(), sampleExplorers(), selector)
		_, err := uc.Run(ctx, "")
		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
		assert.False(t, selector.called)
	})

	t.Run("unknown network", func(t *testing.T) {
		uc := NewShowNetwork(&config.RuntimeConfig{}, sampleNetworks(), sampleExplorers(), nil)
		_, err := uc.Run(ctx, "optimism")
		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
	})
}

func TestCheckNetwork_Run(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		network   string
		chainIDs  map[string]uint64
		wantErr   error
		mismatch  bool
		forkChain uint64
	}{
		{
			name:     "matching chain id",
			network:  "mainnet",
			chainIDs: map[string]uint64{"https://mainnet.example/v3/abc": 1},
		},
		{
			name:     "mismatch",
			network:  "mainnet",
			chainIDs: map[string]uint64{"https://mainnet.example/v3/abc": 5},
			wantErr:  domain.ErrNetworkMismatch,
			mismatch: true,
		},
		{
			name:     "undeclared chain id is never a mismatch",
			network:  "polygon",
			chainIDs: map[string]uint64{"https://polygon-rpc.com": 137},
		},
		{
			name:    "fork reports its source chain",
			network: "localfork",
			chainIDs: map[string]uint64{
				"http://127.0.0.1:8545":          1337,
				"https://mainnet.example/v3/abc": 1,
			},
			forkChain: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCheckNetwork(sampleNetworks(), &fakeChain{chainIDs: tt.chainIDs, block: 42}, NopProgress{})
			result, err := uc.Run(ctx, tt.network)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NotNil(t, result)
			assert.Equal(t, tt.mismatch, result.Mismatch)
			assert.Equal(t, tt.forkChain, result.ForkChainID)
			assert.Equal(t, uint64(42), result.LatestBlock)
		})
	}

	t.Run("mismatch names the network configured for the live chain", func(t *testing.T) {
		chain := &fakeChain{chainIDs: map[string]uint64{"https://mainnet.example/v3/abc": 1337}, block: 1}
		result, err := NewCheckNetwork(sampleNetworks(), chain, NopProgress{}).Run(ctx, "mainnet")
		require.ErrorIs(t, err, domain.ErrNetworkMismatch)
		assert.Equal(t, []string{"localfork"}, result.LiveNetworks)
		assert.Contains(t, err.Error(), "configured as localfork")
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		uc := NewCheckNetwork(sampleNetworks(), &fakeChain{}, NopProgress{})
		_, err := uc.Run(ctx, "mainnet")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestShowExplorer_Run(t *testing.T) {
	ctx := context.Background()
	uc := NewShowExplorer(sampleNetworks(), sampleExplorers(), fakeHints{})

	result, err := uc.Run(ctx, "polygon")
	require.NoError(t, err)
	assert.False(t, result.HasCredential)
	assert.True(t, result.Gap)
	assert.Equal(t, "KEY_FOR_polygon", result.KeyVariable)

	result, err = uc.Run(ctx, "mainnet")
	require.NoError(t, err)
	assert.True(t, result.HasCredential)
	assert.False(t, result.Gap)

	_, err = uc.Run(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
}
