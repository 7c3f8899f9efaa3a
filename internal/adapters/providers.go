package adapters

import (
	"github.com/google/wire"
	"github.com/gyrostable/clpkit/internal/adapters/addressbook"
	"github.com/gyrostable/clpkit/internal/adapters/blockchain"
	internalconfig "github.com/gyrostable/clpkit/internal/adapters/config"
	"github.com/gyrostable/clpkit/internal/adapters/fs"
	"github.com/gyrostable/clpkit/internal/adapters/interactive"
	"github.com/gyrostable/clpkit/internal/adapters/pools"
	"github.com/gyrostable/clpkit/internal/adapters/progress"
	"github.com/gyrostable/clpkit/internal/adapters/toolchain"
	"github.com/gyrostable/clpkit/internal/adapters/verification"
	"github.com/gyrostable/clpkit/internal/config"
	"github.com/gyrostable/clpkit/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewSourceRepositoryAdapter,
	wire.Bind(new(usecase.SourceRepository), new(*fs.SourceRepositoryAdapter)),

	fs.NewManifestWriterAdapter,
	wire.Bind(new(usecase.CompileManifestWriter), new(*fs.ManifestWriterAdapter)),

	addressbook.NewStoreAdapter,
	wire.Bind(new(usecase.AddressBookStore), new(*addressbook.StoreAdapter)),

	pools.NewStoreAdapter,
	wire.Bind(new(usecase.PoolConfigStore), new(*pools.StoreAdapter)),
)

// ToolchainSet provides the local compiler
var ToolchainSet = wire.NewSet(
	toolchain.NewSvmToolchain,
	wire.Bind(new(usecase.CompilerToolchain), new(*toolchain.SvmToolchain)),

	toolchain.NewSolcRunner,
	wire.Bind(new(usecase.CompilerRunner), new(*toolchain.SolcRunner)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),

	progress.ProvideProgressSink,
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideCompilerResolver,
	wire.Bind(new(usecase.CompilerProfileResolver), new(*config.CompilerResolver)),

	config.ProvideNetworkRegistry,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),

	config.ProvideExplorerRegistry,
	wire.Bind(new(usecase.ExplorerResolver), new(*config.ExplorerRegistry)),

	config.ProvideRawConfig,
	wire.Bind(new(usecase.CredentialHints), new(*config.RawConfig)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.ChainInspector), new(*blockchain.CheckerAdapter)),
	wire.Bind(new(config.ChainIDFetcher), new(*blockchain.CheckerAdapter)),
)

// VerificationSet provides the block explorer client
var VerificationSet = wire.NewSet(
	verification.NewEtherscanClient,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.EtherscanClient)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ToolchainSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
	VerificationSet,
)
