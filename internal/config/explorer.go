package config

import (
	"sort"

	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/samber/lo"
)

// standardExplorer describes an explorer the verification client knows natively
type standardExplorer struct {
	APIURL     string
	BrowserURL string
}

// standardExplorers is keyed by chain ID
var standardExplorers = map[uint64]standardExplorer{
	1:        {"https://api.etherscan.io/api", "https://etherscan.io"},
	5:        {"https://api-goerli.etherscan.io/api", "https://goerli.etherscan.io"},
	11155111: {"https://api-sepolia.etherscan.io/api", "https://sepolia.etherscan.io"},
	10:       {"https://api-optimistic.etherscan.io/api", "https://optimistic.etherscan.io"},
	137:      {"https://api.polygonscan.com/api", "https://polygonscan.com"},
	80001:    {"https://api-testnet.polygonscan.com/api", "https://mumbai.polygonscan.com"},
	1101:     {"https://api-zkevm.polygonscan.com/api", "https://zkevm.polygonscan.com"},
	8453:     {"https://api.basescan.org/api", "https://basescan.org"},
	42161:    {"https://api.arbiscan.io/api", "https://arbiscan.io"},
	43114:    {"https://api.snowtrace.io/api", "https://snowtrace.io"},
	56:       {"https://api.bscscan.com/api", "https://bscscan.com"},
	250:      {"https://api.ftmscan.com/api", "https://ftmscan.com"},
	42220:    {"https://api.celoscan.io/api", "https://celoscan.io"},
}

// standardChainIDs maps the conventional network names to chain IDs, for
// networks that neither declare a chain ID nor appear in custom_chains.
var standardChainIDs = map[string]uint64{
	"mainnet":   1,
	"goerli":    5,
	"sepolia":   11155111,
	"optimism":  10,
	"polygon":   137,
	"mumbai":    80001,
	"zkevm":     1101,
	"base":      8453,
	"arbitrum":  42161,
	"avalanche": 43114,
	"bsc":       56,
	"fantom":    250,
	"celo":      42220,
}

// ExplorerRegistry resolves verification credentials and endpoints per network
type ExplorerRegistry struct {
	etherscan config.EtherscanConfig
	networks  map[string]*config.NetworkProfile
}

// NewExplorerRegistry creates a registry over the [etherscan] and [networks] sections
func NewExplorerRegistry(etherscan config.EtherscanConfig, networks map[string]*config.NetworkProfile) *ExplorerRegistry {
	return &ExplorerRegistry{
		etherscan: etherscan,
		networks:  networks,
	}
}

// Lookup returns the explorer profile for a network. A network without an entry
// yields an empty API key instead of an error so deployment can proceed unverified.
func (r *ExplorerRegistry) Lookup(network string) config.ExplorerProfile {
	profile := config.ExplorerProfile{
		Network: network,
		APIKey:  r.apiKey(network),
	}

	for _, chain := range r.etherscan.CustomChains {
		if chain.Network == network {
			profile.ChainID = chain.ChainID
			profile.APIURL = chain.URLs.APIURL
			profile.BrowserURL = chain.URLs.BrowserURL
			profile.Custom = true
			return profile
		}
	}

	profile.ChainID = r.chainID(network)
	if explorer, ok := standardExplorers[profile.ChainID]; ok {
		profile.APIURL = explorer.APIURL
		profile.BrowserURL = explorer.BrowserURL
	}
	return profile
}

// apiKey prefers a per-network key over the global one
func (r *ExplorerRegistry) apiKey(network string) string {
	if key, ok := r.etherscan.APIKeys[network]; ok {
		return key
	}
	return r.etherscan.APIKey
}

func (r *ExplorerRegistry) chainID(network string) uint64 {
	if profile, ok := r.networks[network]; ok && profile.HasChainID() {
		return profile.ChainID
	}
	return standardChainIDs[network]
}

// Gaps lists configured networks that cannot be verified: no API key or no
// known explorer endpoint. Forks are skipped, they have no explorer.
func (r *ExplorerRegistry) Gaps() []string {
	var gaps []string
	for _, name := range lo.Keys(r.networks) {
		if r.networks[name].IsFork() {
			continue
		}
		profile := r.Lookup(name)
		if !profile.HasCredential() || profile.APIURL == "" {
			gaps = append(gaps, name)
		}
	}
	sort.Strings(gaps)
	return gaps
}
