package usecase

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/domain/pool"
)

// PreparePoolParams contains parameters for preparing pool deployment parameters
type PreparePoolParams struct {
	PoolName string
	Network  string
}

// PreparePoolResult holds the fully defaulted parameter bag for one pool
type PreparePoolResult struct {
	Pool     *pool.Config          `json:"pool"`
	Network  string                `json:"network"`
	ChainID  uint64                `json:"chainId"`
	Factory  string                `json:"factory,omitempty"`
	Flipped  bool                  `json:"flipped"`
	Params   pool.DeploymentParams `json:"params"`
	Warnings []string              `json:"warnings,omitempty"`
}

// PreparePool turns a pool definition file into deployment parameters for a network
type PreparePool struct {
	config   *config.RuntimeConfig
	networks NetworkResolver
	book     AddressBookStore
	pools    PoolConfigStore
	selector NetworkSelector
}

// NewPreparePool creates a new PreparePool use case
func NewPreparePool(
	cfg *config.RuntimeConfig,
	networks NetworkResolver,
	book AddressBookStore,
	pools PoolConfigStore,
	selector NetworkSelector,
) *PreparePool {
	return &PreparePool{
		config:   cfg,
		networks: networks,
		book:     book,
		pools:    pools,
		selector: selector,
	}
}

// ListPools returns the names of all pool definition files
func (uc *PreparePool) ListPools(ctx context.Context) ([]string, error) {
	return uc.pools.List(ctx)
}

// Run executes the use case
func (uc *PreparePool) Run(ctx context.Context, params PreparePoolParams) (*PreparePoolResult, error) {
	networkName, err := selectNetwork(ctx, uc.config, uc.networks, uc.selector, params.Network)
	if err != nil {
		return nil, err
	}
	if _, err := uc.networks.ResolveNetwork(ctx, networkName); err != nil {
		return nil, err
	}
	chainID, _, err := uc.networks.ResolveChainID(ctx, networkName, true)
	if err != nil {
		return nil, err
	}

	book, err := uc.book.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load address book: %w", err)
	}
	chain := book.Chain(chainID)
	if chain == nil {
		return nil, fmt.Errorf("no address book entry for chain %d (network %s): %w", chainID, networkName, domain.ErrNotFound)
	}

	cfg, err := uc.pools.Load(ctx, params.PoolName)
	if err != nil {
		return nil, err
	}

	result := &PreparePoolResult{
		Pool:    cfg,
		Network: networkName,
		ChainID: chainID,
	}

	p, flipped, err := buildPoolParams(cfg, chain)
	if err != nil {
		return nil, fmt.Errorf("pool %s: %w", params.PoolName, err)
	}
	result.Flipped = flipped

	defaults := pool.HarnessDefaults()
	defaults.Deployer = parseAddress(chain.Deployer)
	defaults.Owner = parseAddress(chain.PoolOwner)
	defaults.Admin = parseAddress(chain.ProxyAdmin)
	if chain.ProxyAdmin == "" {
		defaults.Admin = defaults.Owner
	}
	defaults.PauseManager = parseAddress(chain.PauseManager)
	defaults.Vault = parseAddress(chain.Vault)
	if factory, ok := chain.Factories[cfg.Kind]; ok && factory != "" {
		defaults.FromFactory = true
		result.Factory = common.HexToAddress(factory).Hex()
	}

	if chain.Vault == "" {
		result.Warnings = append(result.Warnings, "no vault address for this chain; using the zero address")
	}
	for i, token := range p.Tokens {
		symbol := symbolFor(chain, token)
		if _, ok := book.Decimals[symbol]; symbol != "" && !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("token %d (%s) has no decimals entry", i, symbol))
		}
	}

	result.Params = pool.ApplyDefaults(p, defaults)
	return result, nil
}

// buildPoolParams resolves tokens and scales the decimal settings of cfg.
// Only fields the file sets are filled; defaults are applied by the caller.
func buildPoolParams(cfg *pool.Config, chain *pool.ChainAddresses) (pool.DeploymentParams, bool, error) {
	var p pool.DeploymentParams

	addrs := make([]common.Address, len(cfg.Tokens))
	for i, token := range cfg.Tokens {
		addr, ok := chain.Token(token)
		if !ok {
			return p, false, fmt.Errorf("unknown token %q: %w", token, domain.ErrNotFound)
		}
		addrs[i] = addr
	}

	order := sortedOrder(addrs)
	flipped := false
	for i, idx := range order {
		if i != idx {
			flipped = true
		}
	}
	if len(addrs) > 0 {
		p.Tokens = make([]common.Address, len(addrs))
		for i, idx := range order {
			p.Tokens[i] = addrs[idx]
		}
	}

	if len(cfg.Weights) > 0 {
		if len(cfg.Weights) != len(cfg.Tokens) {
			return p, false, fmt.Errorf("%d weights for %d tokens", len(cfg.Weights), len(cfg.Tokens))
		}
		p.Weights = make([]*big.Int, len(order))
		for i, idx := range order {
			w, err := pool.ParseFixed(cfg.Weights[idx])
			if err != nil {
				return p, false, fmt.Errorf("weight %d: %w", idx, err)
			}
			p.Weights[i] = w
		}
	}

	switch cfg.Kind {
	case pool.KindTwoCLP:
		sqrts, err := twoCLPSqrts(cfg, flipped)
		if err != nil {
			return p, false, err
		}
		p.Sqrts = sqrts
	case pool.KindThreeCLP:
		if cfg.Root3Alpha == "" {
			return p, false, fmt.Errorf("root_3_alpha is required for %s pools", cfg.Kind)
		}
		v, err := pool.ParseFixed(cfg.Root3Alpha)
		if err != nil {
			return p, false, fmt.Errorf("root_3_alpha: %w", err)
		}
		p.Root3Alpha = v
	}

	if cfg.SwapFeePercentage != "" {
		fee, err := pool.ParseFixed(cfg.SwapFeePercentage)
		if err != nil {
			return p, false, fmt.Errorf("swap_fee_percentage: %w", err)
		}
		p.SwapFeePercentage = fee
	}
	if cfg.OracleEnabled != nil {
		p.OracleEnabled = pool.Bool(*cfg.OracleEnabled)
	}
	if cfg.PoolType != "" {
		pt, err := pool.ParseWeightedPoolType(cfg.PoolType)
		if err != nil {
			return p, false, err
		}
		p.PoolType = &pt
	}
	if cfg.Cap != nil {
		capParams, err := buildCap(cfg.Cap)
		if err != nil {
			return p, false, err
		}
		p.Cap = capParams
	}

	return p, flipped, nil
}

// twoCLPSqrts converts the price range of a 2-token pool to square roots.
// When sorting swapped the tokens, the range is inverted and its ends swapped.
func twoCLPSqrts(cfg *pool.Config, flipped bool) ([]*big.Int, error) {
	if len(cfg.Tokens) != 2 {
		return nil, fmt.Errorf("%s pools need exactly 2 tokens, got %d", cfg.Kind, len(cfg.Tokens))
	}
	if len(cfg.Bounds) != 2 {
		return nil, fmt.Errorf("%s pools need a [lower, upper] price range", cfg.Kind)
	}
	lower, err := pool.ParseDecimal(cfg.Bounds[0])
	if err != nil {
		return nil, fmt.Errorf("lower bound: %w", err)
	}
	upper, err := pool.ParseDecimal(cfg.Bounds[1])
	if err != nil {
		return nil, fmt.Errorf("upper bound: %w", err)
	}
	if lower.Sign() <= 0 || upper.Sign() <= 0 {
		return nil, fmt.Errorf("price bounds must be positive")
	}
	if flipped {
		lower, upper = new(big.Rat).Inv(upper), new(big.Rat).Inv(lower)
	}

	sqrtLower, err := pool.SqrtFixed(lower)
	if err != nil {
		return nil, err
	}
	sqrtUpper, err := pool.SqrtFixed(upper)
	if err != nil {
		return nil, err
	}
	return []*big.Int{sqrtLower, sqrtUpper}, nil
}

func buildCap(c *pool.CapConfig) (*pool.CapParams, error) {
	out := &pool.CapParams{Enabled: c.Enabled, GlobalCap: big.NewInt(0), PerAddressCap: big.NewInt(0)}
	if c.Global != "" {
		v, err := pool.ParseFixed(c.Global)
		if err != nil {
			return nil, fmt.Errorf("cap.global: %w", err)
		}
		out.GlobalCap = v
	}
	if c.PerAddress != "" {
		v, err := pool.ParseFixed(c.PerAddress)
		if err != nil {
			return nil, fmt.Errorf("cap.per_address: %w", err)
		}
		out.PerAddressCap = v
	}
	if c.Manager != "" {
		if !common.IsHexAddress(c.Manager) {
			return nil, fmt.Errorf("cap.manager: invalid address %q", c.Manager)
		}
		out.CapManager = pool.Address(common.HexToAddress(c.Manager))
	}
	return out, nil
}

// sortedOrder returns the indices of addrs ordered case-insensitively by hex string
func sortedOrder(addrs []common.Address) []int {
	order := make([]int, len(addrs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return strings.ToLower(addrs[order[i]].Hex()) < strings.ToLower(addrs[order[j]].Hex())
	})
	return order
}

func symbolFor(chain *pool.ChainAddresses, addr common.Address) string {
	for symbol, a := range chain.Tokens {
		if common.HexToAddress(a) == addr {
			return symbol
		}
	}
	return ""
}

func parseAddress(s string) common.Address {
	if s == "" {
		return common.Address{}
	}
	return common.HexToAddress(s)
}
