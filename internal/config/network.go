package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

const maxSuggestions = 3

// ChainIDFetcher asks an RPC endpoint for its chain ID
type ChainIDFetcher interface {
	FetchChainID(ctx context.Context, rpcURL string) (uint64, error)
}

// ChainIDSource tells where a chain ID came from
type ChainIDSource string

const (
	ChainIDDeclared ChainIDSource = "declared"
	ChainIDCached   ChainIDSource = "cached"
	ChainIDProbed   ChainIDSource = "rpc"
)

// NetworkRegistry resolves symbolic network names to their profiles
type NetworkRegistry struct {
	cacheDir string
	networks map[string]*config.NetworkProfile
	cache    *NetworkCache
	mu       sync.RWMutex
}

// NetworkCache caches chain ID lookups for networks that don't declare one
type NetworkCache struct {
	Networks   map[string]uint64   `json:"networks"`   // name -> chainID
	RPCs       map[string]uint64   `json:"rpcs"`       // rpcURL -> chainID
	ChainNames map[uint64][]string `json:"chainNames"` // chainID -> names
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// NewNetworkRegistry creates a registry over the [networks] section.
// cacheDir may be empty to disable the on-disk chain ID cache.
func NewNetworkRegistry(networks map[string]*config.NetworkProfile, cacheDir string) *NetworkRegistry {
	r := &NetworkRegistry{
		cacheDir: cacheDir,
		networks: make(map[string]*config.NetworkProfile, len(networks)),
	}
	for name, network := range networks {
		r.networks[name] = network
	}

	// Load cache
	r.loadCache()

	return r
}

// Names returns all configured network names, sorted
func (r *NetworkRegistry) Names() []string {
	names := lo.Keys(r.networks)
	sort.Strings(names)
	return names
}

// Resolve returns a copy of the named profile. Unknown names never fall back to another
// network. The declared chain ID is not compared with the live one here.
func (r *NetworkRegistry) Resolve(name string) (*config.NetworkProfile, error) {
	if name == "" {
		return nil, &domain.UnknownNetworkError{}
	}

	network, ok := r.networks[name]
	if !ok {
		return nil, &domain.UnknownNetworkError{
			Name:        name,
			Suggestions: r.suggest(name),
		}
	}

	if network.URL == "" {
		return nil, fmt.Errorf("%w: network %s has an empty url after env expansion", domain.ErrInvalidNetwork, name)
	}
	if network.Forking != nil && network.Forking.URL == "" {
		return nil, fmt.Errorf("%w: network %s is a fork without a fork source url", domain.ErrInvalidNetwork, name)
	}

	resolved := *network
	if network.Forking != nil {
		forking := *network.Forking
		resolved.Forking = &forking
	}
	return &resolved, nil
}

// suggest returns the closest configured names for a typo
func (r *NetworkRegistry) suggest(name string) []string {
	names := r.Names()

	var suggestions []string
	for _, candidate := range names {
		if strings.EqualFold(candidate, name) {
			suggestions = append(suggestions, candidate)
		}
	}

	for _, match := range fuzzy.Find(strings.ToLower(name), lowerAll(names)) {
		if len(suggestions) >= maxSuggestions {
			break
		}
		candidate := names[match.Index]
		if !lo.Contains(suggestions, candidate) {
			suggestions = append(suggestions, candidate)
		}
	}
	return suggestions
}

// ChainID returns the declared chain ID, or a cached/probed one when the
// configuration leaves it unset.
func (r *NetworkRegistry) ChainID(ctx context.Context, name string, fetcher ChainIDFetcher) (uint64, ChainIDSource, error) {
	network, err := r.Resolve(name)
	if err != nil {
		return 0, "", err
	}
	if network.HasChainID() {
		return network.ChainID, ChainIDDeclared, nil
	}

	// Check cache first
	r.mu.RLock()
	chainID, cached := r.cache.Networks[name]
	if !cached {
		chainID, cached = r.cache.RPCs[network.URL]
	}
	r.mu.RUnlock()
	if cached {
		return chainID, ChainIDCached, nil
	}

	if fetcher == nil {
		return 0, "", fmt.Errorf("chain ID for network %s is not declared and no RPC probe is available", name)
	}

	chainID, err = fetcher.FetchChainID(ctx, network.URL)
	if err != nil {
		return 0, "", fmt.Errorf("failed to fetch chain ID for network %s: %w", name, err)
	}

	r.updateCache(name, network.URL, chainID)
	return chainID, ChainIDProbed, nil
}

// NetworksForChain returns configured networks declaring or cached for chainID
func (r *NetworkRegistry) NetworksForChain(chainID uint64) []string {
	var names []string
	for _, name := range r.Names() {
		if r.networks[name].ChainID == chainID {
			names = append(names, name)
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.cache.ChainNames[chainID] {
		if _, ok := r.networks[name]; ok && !lo.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func (r *NetworkRegistry) cachePath() string {
	return filepath.Join(r.cacheDir, "chainIds.json")
}

// loadCache loads the chain ID cache from disk
func (r *NetworkRegistry) loadCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = newNetworkCache()
	if r.cacheDir == "" {
		return
	}

	data, err := os.ReadFile(r.cachePath())
	if err != nil {
		// Cache doesn't exist yet, that's fine
		return
	}

	if err := json.Unmarshal(data, &r.cache); err != nil || r.cache == nil {
		// Invalid cache, start fresh
		r.cache = newNetworkCache()
		return
	}
	if r.cache.Networks == nil {
		r.cache.Networks = make(map[string]uint64)
	}
	if r.cache.RPCs == nil {
		r.cache.RPCs = make(map[string]uint64)
	}
	if r.cache.ChainNames == nil {
		r.cache.ChainNames = make(map[uint64][]string)
	}
}

// updateCache records a probed chain ID and persists the cache
func (r *NetworkRegistry) updateCache(networkName, rpcURL string, chainID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Networks[networkName] = chainID
	r.cache.RPCs[rpcURL] = chainID
	if !lo.Contains(r.cache.ChainNames[chainID], networkName) {
		r.cache.ChainNames[chainID] = append(r.cache.ChainNames[chainID], networkName)
	}
	r.cache.UpdatedAt = time.Now()

	// the cache only saves probes, a failed write is not fatal
	if err := r.saveCache(); err != nil {
		slog.Debug("failed to save chain ID cache", "dir", r.cacheDir, "error", err)
	}
}

// saveCache saves the cache to disk
func (r *NetworkRegistry) saveCache() error {
	if r.cacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(r.cacheDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.cachePath(), data, 0644)
}

func newNetworkCache() *NetworkCache {
	return &NetworkCache{
		Networks:   make(map[string]uint64),
		RPCs:       make(map[string]uint64),
		ChainNames: make(map[uint64][]string),
		UpdatedAt:  time.Now(),
	}
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
