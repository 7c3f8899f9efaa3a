package verification

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient() *EtherscanClient {
	return NewEtherscanClient(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func respond(w http.ResponseWriter, status, result string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(etherscanResponse{Status: status, Message: "OK", Result: result})
}

func TestEtherscanClient_Submit(t *testing.T) {
	var form map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		form = make(map[string]string)
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		respond(w, "1", "guid-123")
	}))
	defer server.Close()

	profile := config.CompilerProfile{Version: "0.7.1", Optimizer: config.OptimizerSettings{Enabled: true, Runs: 1500}}
	sources := map[string]string{
		"contracts/Vault.sol":             `import "./interfaces/IVault.sol"; contract Vault {}`,
		"contracts/interfaces/IVault.sol": "interface IVault {}",
	}
	explorer := config.ExplorerProfile{Network: "mainnet", ChainID: 1, APIKey: "secret", APIURL: server.URL}
	guid, err := newClient().Submit(context.Background(), explorer, usecase.VerificationRequest{
		Address:          common.HexToAddress("0xBA12222222228d8Ba445958a75a0704d566BF2C8"),
		SourcePath:       "contracts/Vault.sol",
		ContractName:     "Vault",
		Input:            usecase.NewStandardJSONInput(profile, sources, []string{"contracts/Vault.sol"}),
		CompilerVersion:  "v0.7.1+commit.f4a555be",
		OptimizationUsed: true,
		Runs:             1500,
		ConstructorArgs:  "abcd",
	})
	require.NoError(t, err)
	assert.Equal(t, "guid-123", guid)

	assert.Equal(t, "secret", form["apikey"])
	assert.Equal(t, "verifysourcecode", form["action"])
	assert.Equal(t, "1500", form["runs"])
	assert.Equal(t, "1", form["optimizationUsed"])
	assert.Equal(t, "abcd", form["constructorArguements"])
	assert.Equal(t, "1", form["chainid"])
	assert.Equal(t, "0xBA12222222228d8Ba445958a75a0704d566BF2C8", form["contractaddress"])
	assert.Equal(t, "solidity-standard-json-input", form["codeformat"])
	assert.Equal(t, "contracts/Vault.sol:Vault", form["contractname"])

	var submitted usecase.StandardJSONInput
	require.NoError(t, json.Unmarshal([]byte(form["sourceCode"]), &submitted))
	assert.Equal(t, "Solidity", submitted.Language)
	assert.Equal(t, []string{"contracts/Vault.sol", "contracts/interfaces/IVault.sol"}, submitted.SourceNames())
	assert.Equal(t, 1500, submitted.Settings.Optimizer.Runs)
}

func TestEtherscanClient_SubmitWithoutSources(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	explorer := config.ExplorerProfile{Network: "mainnet", APIKey: "k", APIURL: server.URL}
	_, err := newClient().Submit(context.Background(), explorer, usecase.VerificationRequest{ContractName: "Vault"})
	require.Error(t, err)
	assert.False(t, called)
}

func TestEtherscanClient_SubmitRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, "0", "Invalid API Key")
	}))
	defer server.Close()

	explorer := config.ExplorerProfile{Network: "mainnet", APIKey: "bad", APIURL: server.URL}
	input := usecase.NewStandardJSONInput(config.CompilerProfile{Version: "0.7.1"}, map[string]string{"A.sol": "contract A {}"}, []string{"A.sol"})
	_, err := newClient().Submit(context.Background(), explorer, usecase.VerificationRequest{Input: input})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key")
}

func TestEtherscanClient_MissingCredential(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := newClient().Submit(context.Background(), config.ExplorerProfile{Network: "polygon", APIURL: server.URL}, usecase.VerificationRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.False(t, called)
}

func TestEtherscanClient_CheckStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		result string
		want   usecase.VerificationStatus
	}{
		{"pending", "0", "Pending in queue", usecase.VerificationStatus{Pending: true, Message: "Pending in queue"}},
		{"verified", "1", "Pass - Verified", usecase.VerificationStatus{Verified: true, Message: "Pass - Verified"}},
		{"already verified", "0", "Already Verified", usecase.VerificationStatus{Verified: true, Message: "Already Verified"}},
		{"failed", "0", "Fail - Unable to verify", usecase.VerificationStatus{Message: "Fail - Unable to verify"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "checkverifystatus", r.URL.Query().Get("action"))
				assert.Equal(t, "guid-1", r.URL.Query().Get("guid"))
				respond(w, tt.status, tt.result)
			}))
			defer server.Close()

			explorer := config.ExplorerProfile{Network: "mainnet", APIKey: "k", APIURL: server.URL}
			status, err := newClient().CheckStatus(context.Background(), explorer, "guid-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, *status)
		})
	}
}

func TestEtherscanClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	explorer := config.ExplorerProfile{Network: "mainnet", APIKey: "k", APIURL: server.URL}
	_, err := newClient().CheckStatus(context.Background(), explorer, "guid-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
