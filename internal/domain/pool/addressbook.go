package pool

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ChainAddresses lists the well-known contracts and actors on one chain
type ChainAddresses struct {
	Vault          string            `yaml:"vault,omitempty"`
	QueryProcessor string            `yaml:"query_processor,omitempty"`
	GyroConfig     string            `yaml:"gyro_config,omitempty"`
	ProxyAdmin     string            `yaml:"proxy_admin,omitempty"`
	PoolOwner      string            `yaml:"pool_owner,omitempty"`
	PauseManager   string            `yaml:"pause_manager,omitempty"`
	Deployer       string            `yaml:"deployer,omitempty"`
	Factories      map[string]string `yaml:"factories,omitempty"`
	Tokens         map[string]string `yaml:"tokens,omitempty"`
}

// AddressBook maps chain IDs to their address sets, plus token decimals shared across chains
type AddressBook struct {
	Chains   map[uint64]*ChainAddresses `yaml:"chains"`
	Decimals map[string]int             `yaml:"decimals,omitempty"`
}

// Chain returns the entry for chainID, or nil
func (b *AddressBook) Chain(chainID uint64) *ChainAddresses {
	if b == nil || b.Chains == nil {
		return nil
	}
	return b.Chains[chainID]
}

// Token resolves a token symbol (case-insensitive) or a literal address
func (c *ChainAddresses) Token(symbolOrAddress string) (common.Address, bool) {
	if common.IsHexAddress(symbolOrAddress) {
		return common.HexToAddress(symbolOrAddress), true
	}
	if c == nil {
		return common.Address{}, false
	}
	for symbol, addr := range c.Tokens {
		if strings.EqualFold(symbol, symbolOrAddress) {
			return common.HexToAddress(addr), true
		}
	}
	return common.Address{}, false
}

// Merge overlays other on top of b, entry by entry
func (b *AddressBook) Merge(other *AddressBook) {
	if other == nil {
		return
	}
	if b.Chains == nil {
		b.Chains = make(map[uint64]*ChainAddresses)
	}
	if b.Decimals == nil {
		b.Decimals = make(map[string]int)
	}
	for chainID, entry := range other.Chains {
		existing, ok := b.Chains[chainID]
		if !ok || existing == nil {
			b.Chains[chainID] = entry
			continue
		}
		existing.merge(entry)
	}
	for symbol, decimals := range other.Decimals {
		b.Decimals[symbol] = decimals
	}
}

func (c *ChainAddresses) merge(o *ChainAddresses) {
	if o == nil {
		return
	}
	pick := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	pick(&c.Vault, o.Vault)
	pick(&c.QueryProcessor, o.QueryProcessor)
	pick(&c.GyroConfig, o.GyroConfig)
	pick(&c.ProxyAdmin, o.ProxyAdmin)
	pick(&c.PoolOwner, o.PoolOwner)
	pick(&c.PauseManager, o.PauseManager)
	pick(&c.Deployer, o.Deployer)
	if len(o.Factories) > 0 && c.Factories == nil {
		c.Factories = make(map[string]string)
	}
	for k, v := range o.Factories {
		c.Factories[k] = v
	}
	if len(o.Tokens) > 0 && c.Tokens == nil {
		c.Tokens = make(map[string]string)
	}
	for k, v := range o.Tokens {
		c.Tokens[k] = v
	}
}
