package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vaultAddress = "0xBA12222222228d8Ba445958a75a0704d566BF2C8"

func newVerifyContract(verifier *fakeVerifier) *VerifyContract {
	return NewVerifyContract(
		&config.RuntimeConfig{NonInteractive: true},
		sampleNetworks(),
		sampleExplorers(),
		fakeHints{},
		sampleCompilerResolver(),
		&fakeToolchain{installed: []string{"0.7.1"}},
		&fakeSources{
			contents: map[string]string{
				"contracts/Vault.sol":                `import "./libraries/FixedPoint.sol"; contract Vault {}`,
				"contracts/libraries/FixedPoint.sol": "library FixedPoint {}",
				"contracts/pools/Unresolved.sol":     `import "@missing/Lib.sol"; contract Unresolved {}`,
			},
			imports: map[string][]string{
				"contracts/Vault.sol":            {"contracts/libraries/FixedPoint.sol"},
				"contracts/pools/Unresolved.sol": {"@missing/Lib.sol"},
			},
		},
		verifier,
		nil,
		NopProgress{},
	)
}

func TestParseContractRef(t *testing.T) {
	tests := []struct {
		ref      string
		path     string
		contract string
		wantErr  bool
	}{
		{"contracts/Vault.sol:Vault", "contracts/Vault.sol", "Vault", false},
		{"contracts/pools/Pool.sol", "contracts/pools/Pool.sol", "Pool", false},
		{"contracts/Vault.sol:", "contracts/Vault.sol", "Vault", false},
		{":Vault", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			path, name, err := ParseContractRef(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.path, path)
			assert.Equal(t, tt.contract, name)
		})
	}
}

func TestVerifyContract_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("submits with the override profile", func(t *testing.T) {
		verifier := &fakeVerifier{}
		result, err := newVerifyContract(verifier).Run(ctx, VerifyContractParams{
			Network:         "mainnet",
			Address:         vaultAddress,
			ContractRef:     "contracts/Vault.sol:Vault",
			ConstructorArgs: "0xabcd",
		})
		require.NoError(t, err)
		assert.NoError(t, result.Failure)
		assert.Equal(t, "guid-1", result.GUID)
		assert.True(t, result.Pending)
		assert.Equal(t, "https://etherscan.io/address/"+vaultAddress+"#code", result.URL)

		require.Len(t, verifier.requests, 1)
		req := verifier.requests[0]
		assert.Equal(t, 1500, req.Runs)
		assert.True(t, req.OptimizationUsed)
		assert.Equal(t, "v0.7.1+commit.deadbeef", req.CompilerVersion)
		assert.Equal(t, "abcd", req.ConstructorArgs)
		assert.Equal(t, "contracts/Vault.sol", req.SourcePath)
		require.NotNil(t, req.Input)
		assert.Equal(t, []string{"contracts/Vault.sol", "contracts/libraries/FixedPoint.sol"}, req.Input.SourceNames())
		assert.Equal(t, 1500, req.Input.Settings.Optimizer.Runs)
		assert.Contains(t, req.Input.Settings.OutputSelection, "contracts/Vault.sol")
	})

	t.Run("unresolvable import is a local error", func(t *testing.T) {
		verifier := &fakeVerifier{}
		_, err := newVerifyContract(verifier).Run(ctx, VerifyContractParams{
			Network:     "mainnet",
			Address:     vaultAddress,
			ContractRef: "contracts/pools/Unresolved.sol:Unresolved",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, verifier.requests)
	})

	t.Run("waits for the verdict", func(t *testing.T) {
		verifier := &fakeVerifier{statuses: []*VerificationStatus{
			{Pending: true, Message: "Pending in queue"},
			{Verified: true, Message: "Pass - Verified"},
		}}
		result, err := newVerifyContract(verifier).Run(ctx, VerifyContractParams{
			Network:      "mainnet",
			Address:      vaultAddress,
			ContractRef:  "contracts/Vault.sol:Vault",
			Wait:         true,
			PollInterval: time.Millisecond,
		})
		require.NoError(t, err)
		assert.NoError(t, result.Failure)
		assert.True(t, result.Verified)
		assert.False(t, result.Pending)
	})

	t.Run("rejection is a non-fatal failure", func(t *testing.T) {
		verifier := &fakeVerifier{statuses: []*VerificationStatus{
			{Message: "Fail - Unable to verify"},
		}}
		result, err := newVerifyContract(verifier).Run(ctx, VerifyContractParams{
			Network:      "mainnet",
			Address:      vaultAddress,
			ContractRef:  "contracts/Vault.sol:Vault",
			Wait:         true,
			PollInterval: time.Millisecond,
		})
		require.NoError(t, err)
		require.Error(t, result.Failure)
		assert.ErrorIs(t, result.Failure, domain.ErrVerificationFailed)
		assert.Contains(t, result.Failure.Error(), "Unable to verify")
	})

	t.Run("submission error is a non-fatal failure", func(t *testing.T) {
		verifier := &fakeVerifier{submitErr: errors.New("rate limited")}
		result, err := newVerifyContract(verifier).Run(ctx, VerifyContractParams{
			Network:     "mainnet",
			Address:     vaultAddress,
			ContractRef: "contracts/Vault.sol:Vault",
		})
		require.NoError(t, err)
		assert.ErrorIs(t, result.Failure, domain.ErrVerificationFailed)
	})

	t.Run("missing credential surfaces at call time", func(t *testing.T) {
		verifier := &fakeVerifier{}
		result, err := newVerifyContract(verifier).Run(ctx, VerifyContractParams{
			Network:     "polygon",
			Address:     vaultAddress,
			ContractRef: "contracts/Vault.sol:Vault",
		})
		require.NoError(t, err)
		assert.ErrorIs(t, result.Failure, domain.ErrMissingCredential)

		var missing *domain.MissingCredentialError
		require.ErrorAs(t, result.Failure, &missing)
		assert.Equal(t, "KEY_FOR_polygon", missing.Variable)
		assert.Empty(t, verifier.requests)
	})

	t.Run("unknown network is fatal", func(t *testing.T) {
		_, err := newVerifyContract(&fakeVerifier{}).Run(ctx, VerifyContractParams{
			Network:     "goerli",
			Address:     vaultAddress,
			ContractRef: "contracts/Vault.sol:Vault",
		})
		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
	})

	t.Run("invalid address is fatal", func(t *testing.T) {
		_, err := newVerifyContract(&fakeVerifier{}).Run(ctx, VerifyContractParams{
			Network:     "mainnet",
			Address:     "0x1234",
			ContractRef: "contracts/Vault.sol:Vault",
		})
		assert.Error(t, err)
	})

	t.Run("unreadable source is fatal", func(t *testing.T) {
		_, err := newVerifyContract(&fakeVerifier{}).Run(ctx, VerifyContractParams{
			Network:     "mainnet",
			Address:     vaultAddress,
			ContractRef: "contracts/Missing.sol:Missing",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
