package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/domain/pool"
	"github.com/samber/lo"
)

type fakeCompilerResolver struct {
	def       config.CompilerProfile
	overrides map[string]config.CompilerProfile
}

func (f *fakeCompilerResolver) Resolve(path string) (config.CompilerProfile, bool) {
	if p, ok := f.overrides[path]; ok {
		return p, true
	}
	return f.def, false
}

func (f *fakeCompilerResolver) Default() config.CompilerProfile { return f.def }

func (f *fakeCompilerResolver) OverridePaths() []string {
	paths := make([]string, 0, len(f.overrides))
	for p := range f.overrides {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (f *fakeCompilerResolver) Versions() []string {
	versions := []string{f.def.Version}
	for _, p := range f.overrides {
		if p.Version != f.def.Version {
			versions = append(versions, p.Version)
		}
	}
	return versions
}

type fakeToolchain struct {
	installed []string
}

func (f *fakeToolchain) InstalledVersions(context.Context) ([]string, error) {
	return f.installed, nil
}

func (f *fakeToolchain) BinaryPath(_ context.Context, version string) (string, error) {
	return "/svm/" + version + "/solc-" + version, nil
}

func (f *fakeToolchain) LongVersion(_ context.Context, version string) (string, error) {
	return "v" + version + "+commit.deadbeef", nil
}

type fakeSources struct {
	files    []string
	contents map[string]string
	// imports lists what each source imports
	imports map[string][]string
}

func (f *fakeSources) ListSources(context.Context, string) ([]string, error) {
	return f.files, nil
}

func (f *fakeSources) Locate(_ context.Context, name string) (string, error) {
	if _, ok := f.contents[name]; ok || lo.Contains(f.files, name) {
		return name, nil
	}
	return "", fmt.Errorf("%s: %w", name, domain.ErrNotFound)
}

func (f *fakeSources) CollectSources(_ context.Context, entries []string) (map[string]string, error) {
	sources := make(map[string]string)
	queue := append([]string(nil), entries...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, seen := sources[name]; seen {
			continue
		}
		src, ok := f.contents[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w", name, domain.ErrNotFound)
		}
		sources[name] = src
		queue = append(queue, f.imports[name]...)
	}
	return sources, nil
}

type fakeRunner struct {
	units []CompilationUnit
	err   error
}

func (f *fakeRunner) Compile(_ context.Context, unit CompilationUnit, _ string) (*UnitOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.units = append(f.units, unit)
	return &UnitOutput{Key: unit.Key, Contracts: unit.Sources}, nil
}

type fakeNetworks struct {
	networks map[string]*config.NetworkProfile
	probed   map[string]uint64
	invalid  map[string]bool
}

func (f *fakeNetworks) GetNetworks(context.Context) []string {
	names := make([]string, 0, len(f.networks))
	for n := range f.networks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (f *fakeNetworks) ResolveNetwork(_ context.Context, name string) (*config.NetworkProfile, error) {
	n, ok := f.networks[name]
	if !ok {
		return nil, &domain.UnknownNetworkError{Name: name}
	}
	if f.invalid[name] {
		return nil, fmt.Errorf("%w: network %s has an empty url", domain.ErrInvalidNetwork, name)
	}
	copied := *n
	copied.Name = name
	return &copied, nil
}

func (f *fakeNetworks) ResolveChainID(ctx context.Context, name string, probe bool) (uint64, string, error) {
	n, err := f.ResolveNetwork(ctx, name)
	if err != nil {
		return 0, "", err
	}
	if n.HasChainID() {
		return n.ChainID, "declared", nil
	}
	if id, ok := f.probed[name]; ok && probe {
		return id, "rpc", nil
	}
	return 0, "", fmt.Errorf("chain ID for %s unknown", name)
}

func (f *fakeNetworks) NetworksForChain(chainID uint64) []string {
	var names []string
	for _, name := range f.GetNetworks(context.Background()) {
		if f.networks[name].ChainID == chainID || (f.probed[name] == chainID && chainID != 0) {
			names = append(names, name)
		}
	}
	return names
}

type fakeExplorers struct {
	profiles map[string]config.ExplorerProfile
}

func (f *fakeExplorers) Lookup(network string) config.ExplorerProfile {
	p := f.profiles[network]
	p.Network = network
	return p
}

func (f *fakeExplorers) Gaps() []string {
	var gaps []string
	for name, p := range f.profiles {
		if !p.HasCredential() || p.APIURL == "" {
			gaps = append(gaps, name)
		}
	}
	sort.Strings(gaps)
	return gaps
}

type fakeHints struct{}

func (fakeHints) APIKeyVariable(network string) string { return "KEY_FOR_" + network }

func (fakeHints) MissingRPCVariables(network string) []string {
	if network == "broken" {
		return []string{"BROKEN_RPC_URL"}
	}
	return nil
}

type fakeChain struct {
	chainIDs map[string]uint64
	block    uint64
}

func (f *fakeChain) FetchChainID(_ context.Context, url string) (uint64, error) {
	id, ok := f.chainIDs[url]
	if !ok {
		return 0, fmt.Errorf("dial %s: connection refused", url)
	}
	return id, nil
}

func (f *fakeChain) LatestBlock(context.Context, string) (uint64, error) {
	return f.block, nil
}

type fakeVerifier struct {
	submitErr error
	statuses  []*VerificationStatus
	requests  []VerificationRequest
	polls     int
}

func (f *fakeVerifier) Submit(_ context.Context, _ config.ExplorerProfile, req VerificationRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return "guid-1", nil
}

func (f *fakeVerifier) CheckStatus(context.Context, config.ExplorerProfile, string) (*VerificationStatus, error) {
	status := f.statuses[f.polls]
	if f.polls < len(f.statuses)-1 {
		f.polls++
	}
	return status, nil
}

type fakeBook struct {
	book *pool.AddressBook
}

func (f *fakeBook) Load(context.Context) (*pool.AddressBook, error) { return f.book, nil }

type fakePools struct {
	pools map[string]*pool.Config
}

func (f *fakePools) List(context.Context) ([]string, error) {
	names := make([]string, 0, len(f.pools))
	for n := range f.pools {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakePools) Load(_ context.Context, name string) (*pool.Config, error) {
	cfg, ok := f.pools[name]
	if !ok {
		return nil, fmt.Errorf("pool %s: %w", name, domain.ErrNotFound)
	}
	return cfg, nil
}

type fakeSelector struct {
	choice string
	called bool
}

func (f *fakeSelector) SelectNetwork(_ context.Context, _ []string, _ string) (string, error) {
	f.called = true
	return f.choice, nil
}

type fakeManifest struct {
	written *CompilePlan
}

func (f *fakeManifest) WriteManifest(_ context.Context, plan *CompilePlan) (string, error) {
	f.written = plan
	return "artifacts/compiler-profiles.json", nil
}

func sampleCompilerResolver() *fakeCompilerResolver {
	def := config.CompilerProfile{Version: "0.7.1", Optimizer: config.OptimizerSettings{Enabled: true, Runs: 9999}}
	vault := def
	vault.Optimizer.Runs = 1500
	return &fakeCompilerResolver{
		def:       def,
		overrides: map[string]config.CompilerProfile{"contracts/Vault.sol": vault},
	}
}

func sampleNetworks() *fakeNetworks {
	return &fakeNetworks{
		networks: map[string]*config.NetworkProfile{
			"mainnet": {URL: "https://mainnet.example/v3/abc", ChainID: 1},
			"polygon": {URL: "https://polygon-rpc.com"},
			"localfork": {
				URL:     "http://127.0.0.1:8545",
				ChainID: 1337,
				Forking: &config.ForkingConfig{URL: "https://mainnet.example/v3/abc"},
			},
		},
		probed: map[string]uint64{"polygon": 137},
	}
}
