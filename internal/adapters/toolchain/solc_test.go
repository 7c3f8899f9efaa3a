package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gyrostable/clpkit/internal/adapters/fs"
	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const solcOutput = `{"errors":[{"severity":"warning","formattedMessage":"Warning: unused variable"}],"contracts":{"contracts/Vault.sol":{"Vault":{"abi":[]}},"contracts/Math.sol":{"Math":{"abi":[]}}}}`

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newRunner(root string) *SolcRunner {
	cfg := &config.RuntimeConfig{ProjectRoot: root, Project: &config.ProjectConfig{}}
	return NewSolcRunner(cfg, fs.NewSourceRepositoryAdapter(cfg), discardLogger())
}

func TestSolcRunner_Compile(t *testing.T) {
	root := t.TempDir()
	svm := t.TempDir()
	writeSource(t, root, "contracts/Vault.sol", `import "./Math.sol";
contract Vault {}`)
	writeSource(t, root, "contracts/Math.sol", "library Math {}")
	installSolc(t, svm, "0.7.1", "cat > /dev/null; echo '"+solcOutput+"'")

	runner := newRunner(root)
	unit := usecase.CompilationUnit{
		Key:        "0.7.1/default/runs-1500",
		Profile:    config.CompilerProfile{Version: "0.7.1", Optimizer: config.OptimizerSettings{Enabled: true, Runs: 1500}},
		Sources:    []string{"contracts/Vault.sol"},
		BinaryPath: filepath.Join(svm, "0.7.1", "solc-0.7.1"),
	}
	outDir := filepath.Join(root, "artifacts")

	out, err := runner.Compile(context.Background(), unit, outDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"contracts/Vault.sol:Vault"}, out.Contracts)
	assert.Equal(t, []string{"Warning: unused variable"}, out.Warnings)
	assert.FileExists(t, filepath.Join(outDir, "contracts", "Vault.sol", "Vault.json"))
	assert.NoFileExists(t, filepath.Join(outDir, "contracts", "Math.sol", "Math.json"))
}

func TestSolcRunner_CompileErrors(t *testing.T) {
	root := t.TempDir()
	runner := newRunner(root)

	_, err := runner.processOutput(usecase.CompilationUnit{}, []byte(`{"errors":[{"severity":"error","formattedMessage":"ParserError: expected ';'"}]}`), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ParserError")
}

func TestSolcRunner_BuildInput(t *testing.T) {
	const vaultPath = "@balancer-labs/v2-vault/contracts/Vault.sol"

	root := t.TempDir()
	writeSource(t, root, "contracts/Pool.sol", `import "`+vaultPath+`";
contract Pool {}`)
	writeSource(t, root, "node_modules/"+vaultPath, `import "./interfaces/IVault.sol";
contract Vault {}`)
	writeSource(t, root, "node_modules/@balancer-labs/v2-vault/contracts/interfaces/IVault.sol", "interface IVault {}")
	runner := newRunner(root)
	ctx := context.Background()

	t.Run("project source embeds package imports", func(t *testing.T) {
		input, err := runner.buildInput(ctx, usecase.CompilationUnit{
			Profile: config.CompilerProfile{Version: "0.7.1", EVMVersion: "istanbul", Optimizer: config.OptimizerSettings{Enabled: true, Runs: 9999}},
			Sources: []string{"contracts/Pool.sol"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"@balancer-labs/v2-vault/contracts/Vault.sol",
			"@balancer-labs/v2-vault/contracts/interfaces/IVault.sol",
			"contracts/Pool.sol",
		}, input.SourceNames())
		assert.Equal(t, "interface IVault {}", input.Sources["@balancer-labs/v2-vault/contracts/interfaces/IVault.sol"].Content)
		assert.Equal(t, "istanbul", input.Settings.EVMVersion)
		assert.Equal(t, 9999, input.Settings.Optimizer.Runs)
		assert.Len(t, input.Settings.OutputSelection, 1)
		assert.Contains(t, input.Settings.OutputSelection, "contracts/Pool.sol")
	})

	t.Run("overridden package source is selected on its own", func(t *testing.T) {
		input, err := runner.buildInput(ctx, usecase.CompilationUnit{
			Profile: config.CompilerProfile{Version: "0.7.1", Optimizer: config.OptimizerSettings{Enabled: true, Runs: 1500}},
			Sources: []string{vaultPath},
		})
		require.NoError(t, err)
		assert.Len(t, input.Sources, 2)
		assert.Equal(t, 1500, input.Settings.Optimizer.Runs)
		assert.Contains(t, input.Settings.OutputSelection, vaultPath)
		assert.NotContains(t, input.Settings.OutputSelection, "contracts/Pool.sol")
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := runner.buildInput(ctx, usecase.CompilationUnit{Key: "k", Sources: []string{"missing.sol"}})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
