package config

// ForkingConfig marks a network as a local simulation replaying state from URL
type ForkingConfig struct {
	URL         string `toml:"url" json:"url"`
	BlockNumber uint64 `toml:"block_number,omitempty" json:"blockNumber,omitempty"`
}

// NetworkProfile represents a [networks.<name>] section in clpkit.toml
type NetworkProfile struct {
	Name    string         `toml:"-" json:"name"`
	URL     string         `toml:"url" json:"url"`
	ChainID uint64         `toml:"chain_id,omitempty" json:"chainId,omitempty"` // 0 when not declared
	Forking *ForkingConfig `toml:"forking,omitempty" json:"forking,omitempty"`
}

// IsFork reports whether the profile replays state from a remote chain
func (n *NetworkProfile) IsFork() bool {
	return n != nil && n.Forking != nil
}

// HasChainID reports whether a chain ID was declared in configuration
func (n *NetworkProfile) HasChainID() bool {
	return n != nil && n.ChainID != 0
}
