package config

// EtherscanConfig represents the [etherscan] section of clpkit.toml.
// Either a single global APIKey or a per-network APIKeys mapping may be set.
type EtherscanConfig struct {
	APIKey       string            `toml:"api_key,omitempty" json:"apiKey,omitempty"`
	APIKeys      map[string]string `toml:"api_keys,omitempty" json:"apiKeys,omitempty"`
	CustomChains []CustomChain     `toml:"custom_chains,omitempty" json:"customChains,omitempty"`
}

// CustomChain registers an explorer the standard integration does not know about
type CustomChain struct {
	Network string       `toml:"network" json:"network"`
	ChainID uint64       `toml:"chain_id" json:"chainId"`
	URLs    ExplorerURLs `toml:"urls" json:"urls"`
}

// ExplorerURLs holds the API and browser endpoints of a block explorer
type ExplorerURLs struct {
	APIURL     string `toml:"api_url" json:"apiURL"`
	BrowserURL string `toml:"browser_url" json:"browserURL"`
}

// ExplorerProfile is the resolved verification setup for one network.
// APIKey may be empty; that only fails once a verification call is made.
type ExplorerProfile struct {
	Network    string `json:"network"`
	ChainID    uint64 `json:"chainId,omitempty"`
	APIKey     string `json:"-"`
	APIURL     string `json:"apiURL,omitempty"`
	BrowserURL string `json:"browserURL,omitempty"`
	Custom     bool   `json:"custom"`
}

// HasCredential reports whether an API key is available
func (e ExplorerProfile) HasCredential() bool {
	return e.APIKey != ""
}
