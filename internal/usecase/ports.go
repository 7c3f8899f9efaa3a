package usecase

import (
	"context"

	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/domain/pool"
)

// CompilerProfileResolver selects compiler profiles per source path
type CompilerProfileResolver interface {
	Resolve(sourcePath string) (config.CompilerProfile, bool)
	Default() config.CompilerProfile
	OverridePaths() []string
	Versions() []string
}

// CompilerToolchain reports which compiler versions are installed locally
type CompilerToolchain interface {
	InstalledVersions(ctx context.Context) ([]string, error)
	BinaryPath(ctx context.Context, version string) (string, error)
	// LongVersion returns the full build string, e.g. v0.7.1+commit.8d00100c
	LongVersion(ctx context.Context, version string) (string, error)
}

// CompilerRunner runs the compiler for one compilation unit
type CompilerRunner interface {
	Compile(ctx context.Context, unit CompilationUnit, outDir string) (*UnitOutput, error)
}

// SourceRepository lists and reads contract sources. Sources are named the way
// solc names them: project-relative paths, or package paths such as
// @balancer-labs/v2-vault/contracts/Vault.sol that live under node_modules.
type SourceRepository interface {
	ListSources(ctx context.Context, dir string) ([]string, error)
	// Locate returns the project-relative file backing a source name
	Locate(ctx context.Context, name string) (string, error)
	// CollectSources reads the entries and everything they import, keyed by source name
	CollectSources(ctx context.Context, entries []string) (map[string]string, error)
}

// CompileManifestWriter records which profile compiled which source
type CompileManifestWriter interface {
	WriteManifest(ctx context.Context, plan *CompilePlan) (string, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.NetworkProfile, error)
	// ResolveChainID returns the declared chain ID, falling back to the cache and,
	// when probe is set, to the RPC endpoint. source is "declared", "cached" or "rpc".
	ResolveChainID(ctx context.Context, networkName string, probe bool) (chainID uint64, source string, err error)
	// NetworksForChain lists configured networks known to run chainID
	NetworksForChain(chainID uint64) []string
}

// ExplorerResolver resolves verification endpoints and credentials
type ExplorerResolver interface {
	Lookup(network string) config.ExplorerProfile
	Gaps() []string
}

// CredentialHints names the env variables credentials and endpoints are read from
type CredentialHints interface {
	APIKeyVariable(network string) string
	MissingRPCVariables(network string) []string
}

// ChainInspector queries a live JSON-RPC endpoint
type ChainInspector interface {
	FetchChainID(ctx context.Context, rpcURL string) (uint64, error)
	LatestBlock(ctx context.Context, rpcURL string) (uint64, error)
}

// ContractVerifier submits sources to an Etherscan-compatible explorer
type ContractVerifier interface {
	Submit(ctx context.Context, explorer config.ExplorerProfile, req VerificationRequest) (guid string, err error)
	CheckStatus(ctx context.Context, explorer config.ExplorerProfile, guid string) (*VerificationStatus, error)
}

// AddressBookStore loads the per-chain address book
type AddressBookStore interface {
	Load(ctx context.Context) (*pool.AddressBook, error)
}

// PoolConfigStore loads pool definition files
type PoolConfigStore interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, name string) (*pool.Config, error)
}

// NetworkSelector lets the operator pick a network explicitly
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string, prompt string) (string, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
