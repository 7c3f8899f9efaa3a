package usecase

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/domain/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	usdc = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	weth = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	dai  = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
)

func sampleBook() *fakeBook {
	return &fakeBook{book: &pool.AddressBook{
		Chains: map[uint64]*pool.ChainAddresses{
			1: {
				Vault:        "0xBA12222222228d8Ba445958a75a0704d566BF2C8",
				PoolOwner:    "0x0000000000000000000000000000000000000011",
				PauseManager: "0x0000000000000000000000000000000000000022",
				Deployer:     "0x0000000000000000000000000000000000000033",
				Factories:    map[string]string{"c2lp": "0x0000000000000000000000000000000000000044"},
				Tokens:       map[string]string{"USDC": usdc, "WETH": weth, "DAI": dai},
			},
		},
		Decimals: map[string]int{"USDC": 6, "WETH": 18},
	}}
}

func samplePools() *fakePools {
	return &fakePools{pools: map[string]*pool.Config{
		"weth-usdc": {
			Name:              "WETH-USDC",
			Kind:              pool.KindTwoCLP,
			Tokens:            []string{"weth", "usdc"},
			Bounds:            []string{"1000", "4000"},
			SwapFeePercentage: "0.0009",
		},
		"usdc-weth": {
			Name:   "USDC-WETH",
			Kind:   pool.KindTwoCLP,
			Tokens: []string{"USDC", "WETH"},
			Bounds: []string{"0.25", "4"},
		},
		"stables": {
			Name:       "3CLP",
			Kind:       pool.KindThreeCLP,
			Tokens:     []string{"USDC", "DAI", "WETH"},
			Root3Alpha: "0.9995",
			Cap:        &pool.CapConfig{Enabled: true, Global: "1000000", PerAddress: "10000"},
		},
		"weighted": {
			Name:     "W",
			Kind:     pool.KindWeighted,
			Tokens:   []string{"WETH", "USDC"},
			Weights:  []string{"0.8", "0.2"},
			PoolType: "weighted-2-tokens",
		},
		"bad-token": {
			Name:   "X",
			Kind:   pool.KindWeighted,
			Tokens: []string{"USDC", "FOO"},
		},
	}}
}

func newPreparePool() *PreparePool {
	return NewPreparePool(&config.RuntimeConfig{Network: "mainnet"}, sampleNetworks(), sampleBook(), samplePools(), nil)
}

func mustFixed(t *testing.T, s string) *big.Int {
	t.Helper()
	v, err := pool.ParseFixed(s)
	require.NoError(t, err)
	return v
}

func TestPreparePool_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("sorted tokens keep bounds", func(t *testing.T) {
		result, err := newPreparePool().Run(ctx, PreparePoolParams{PoolName: "usdc-weth"})
		require.NoError(t, err)
		assert.False(t, result.Flipped)
		assert.Equal(t, []common.Address{common.HexToAddress(usdc), common.HexToAddress(weth)}, result.Params.Tokens)
		require.Len(t, result.Params.Sqrts, 2)
		assert.Equal(t, "500000000000000000", result.Params.Sqrts[0].String())
		assert.Equal(t, "2000000000000000000", result.Params.Sqrts[1].String())
	})

	t.Run("flipped tokens invert and swap bounds", func(t *testing.T) {
		result, err := newPreparePool().Run(ctx, PreparePoolParams{PoolName: "weth-usdc"})
		require.NoError(t, err)
		assert.True(t, result.Flipped)
		assert.Equal(t, common.HexToAddress(usdc), result.Params.Tokens[0])

		wantLower, err := pool.SqrtFixed(big.NewRat(1, 4000))
		require.NoError(t, err)
		wantUpper, err := pool.SqrtFixed(big.NewRat(1, 1000))
		require.NoError(t, err)
		assert.Equal(t, wantLower, result.Params.Sqrts[0])
		assert.Equal(t, wantUpper, result.Params.Sqrts[1])
		assert.Equal(t, -1, result.Params.Sqrts[0].Cmp(result.Params.Sqrts[1]))
		assert.Equal(t, mustFixed(t, "0.0009"), result.Params.SwapFeePercentage)
	})

	t.Run("defaults and actors from the address book", func(t *testing.T) {
		result, err := newPreparePool().Run(ctx, PreparePoolParams{PoolName: "weth-usdc"})
		require.NoError(t, err)
		p := result.Params

		assert.Equal(t, uint64(1), result.ChainID)
		assert.Equal(t, "0x0000000000000000000000000000000000000044", result.Factory)
		assert.True(t, *p.FromFactory)
		assert.Equal(t, common.HexToAddress("0x11"), *p.Owner)
		assert.Equal(t, common.HexToAddress("0x11"), *p.Admin)
		assert.Equal(t, common.HexToAddress("0x22"), *p.PauseManager)
		assert.Equal(t, common.HexToAddress("0x33"), *p.From)
		assert.Equal(t, common.HexToAddress("0xBA12222222228d8Ba445958a75a0704d566BF2C8"), *p.Vault)
		assert.True(t, *p.OracleEnabled)
		assert.Equal(t, pool.WeightedPool, *p.PoolType)
		assert.Equal(t, []*big.Int{pool.One, pool.One}, p.Weights)
		assert.Len(t, p.AssetManagers, 2)
	})

	t.Run("three token pool with cap", func(t *testing.T) {
		result, err := newPreparePool().Run(ctx, PreparePoolParams{PoolName: "stables"})
		require.NoError(t, err)
		p := result.Params

		assert.Equal(t, []common.Address{
			common.HexToAddress(dai),
			common.HexToAddress(usdc),
			common.HexToAddress(weth),
		}, p.Tokens)
		assert.Equal(t, mustFixed(t, "0.9995"), p.Root3Alpha)
		require.NotNil(t, p.Cap)
		assert.True(t, p.Cap.Enabled)
		assert.Equal(t, mustFixed(t, "1000000"), p.Cap.GlobalCap)
		require.NotNil(t, p.Cap.CapManager)
		assert.Equal(t, common.HexToAddress("0x11"), *p.Cap.CapManager)
		assert.False(t, *p.FromFactory)
		assert.Contains(t, result.Warnings, "token 0 (DAI) has no decimals entry")
	})

	t.Run("weights follow token order", func(t *testing.T) {
		result, err := newPreparePool().Run(ctx, PreparePoolParams{PoolName: "weighted"})
		require.NoError(t, err)
		assert.Equal(t, mustFixed(t, "0.2"), result.Params.Weights[0])
		assert.Equal(t, mustFixed(t, "0.8"), result.Params.Weights[1])
		assert.Equal(t, pool.WeightedPool2Tokens, *result.Params.PoolType)
	})

	t.Run("explicit cap manager", func(t *testing.T) {
		pools := samplePools()
		stables := *pools.pools["stables"]
		stables.Cap = &pool.CapConfig{Enabled: true, Global: "1", Manager: "0x0000000000000000000000000000000000000055"}
		pools.pools["stables"] = &stables
		uc := NewPreparePool(&config.RuntimeConfig{Network: "mainnet"}, sampleNetworks(), sampleBook(), pools, nil)

		result, err := uc.Run(ctx, PreparePoolParams{PoolName: "stables"})
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0x55"), *result.Params.Cap.CapManager)
	})

	t.Run("invalid cap manager", func(t *testing.T) {
		pools := samplePools()
		stables := *pools.pools["stables"]
		stables.Cap = &pool.CapConfig{Enabled: true, Manager: "owner"}
		pools.pools["stables"] = &stables
		uc := NewPreparePool(&config.RuntimeConfig{Network: "mainnet"}, sampleNetworks(), sampleBook(), pools, nil)

		_, err := uc.Run(ctx, PreparePoolParams{PoolName: "stables"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cap.manager")
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := newPreparePool().Run(ctx, PreparePoolParams{PoolName: "bad-token"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "FOO")
	})

	t.Run("chain without address book entry", func(t *testing.T) {
		_, err := newPreparePool().Run(ctx, PreparePoolParams{PoolName: "usdc-weth", Network: "polygon"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chain 137")
	})

	t.Run("unknown pool", func(t *testing.T) {
		_, err := newPreparePool().Run(ctx, PreparePoolParams{PoolName: "nope"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPreparePool_ListPools(t *testing.T) {
	names, err := newPreparePool().ListPools(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bad-token", "stables", "usdc-weth", "weighted", "weth-usdc"}, names)
}
