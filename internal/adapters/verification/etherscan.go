package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/usecase"
)

// etherscanResponse is the envelope every Etherscan-compatible API answers with
type etherscanResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// EtherscanClient submits sources to Etherscan-compatible explorers.
// Each call is a single request; failed calls are not retried.
type EtherscanClient struct {
	client *http.Client
	log    *slog.Logger
}

// NewEtherscanClient creates a new explorer client
func NewEtherscanClient(log *slog.Logger) *EtherscanClient {
	return &EtherscanClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With("component", "EtherscanClient"),
	}
}

// Submit posts a verifysourcecode request and returns the GUID to poll
func (c *EtherscanClient) Submit(ctx context.Context, explorer config.ExplorerProfile, req usecase.VerificationRequest) (string, error) {
	if err := requireCredential(explorer); err != nil {
		return "", err
	}
	if req.Input == nil {
		return "", fmt.Errorf("no sources to submit for %s", req.ContractName)
	}
	input, err := json.Marshal(req.Input)
	if err != nil {
		return "", fmt.Errorf("failed to encode sources: %w", err)
	}

	data := url.Values{}
	data.Set("apikey", explorer.APIKey)
	data.Set("module", "contract")
	data.Set("action", "verifysourcecode")
	data.Set("contractaddress", req.Address.Hex())
	data.Set("sourceCode", string(input))
	data.Set("codeformat", "solidity-standard-json-input")
	data.Set("contractname", req.SourcePath+":"+req.ContractName)
	data.Set("compilerversion", req.CompilerVersion)
	data.Set("optimizationUsed", boolToString(req.OptimizationUsed))
	if req.OptimizationUsed {
		data.Set("runs", strconv.Itoa(req.Runs))
	}
	if req.ConstructorArgs != "" {
		data.Set("constructorArguements", req.ConstructorArgs) // Note: Etherscan typo
	}
	if req.EVMVersion != "" {
		data.Set("evmversion", req.EVMVersion)
	}
	if explorer.ChainID != 0 {
		data.Set("chainid", strconv.FormatUint(explorer.ChainID, 10))
	}

	c.log.Debug("submitting verification", "network", explorer.Network, "address", req.Address.Hex(), "contract", req.ContractName, "sources", len(req.Input.Sources))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, explorer.APIURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	result, err := c.do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to submit verification: %w", err)
	}
	if result.Status != "1" {
		return "", fmt.Errorf("explorer rejected submission: %s", result.Result)
	}
	return result.Result, nil
}

// CheckStatus asks the explorer for the outcome of a submission
func (c *EtherscanClient) CheckStatus(ctx context.Context, explorer config.ExplorerProfile, guid string) (*usecase.VerificationStatus, error) {
	if err := requireCredential(explorer); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("apikey", explorer.APIKey)
	params.Set("module", "contract")
	params.Set("action", "checkverifystatus")
	params.Set("guid", guid)
	if explorer.ChainID != 0 {
		params.Set("chainid", strconv.FormatUint(explorer.ChainID, 10))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, explorer.APIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	result, err := c.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to check status: %w", err)
	}

	lower := strings.ToLower(result.Result)
	switch {
	case strings.Contains(lower, "pending"):
		return &usecase.VerificationStatus{Pending: true, Message: result.Result}, nil
	case strings.Contains(lower, "already verified"):
		return &usecase.VerificationStatus{Verified: true, Message: result.Result}, nil
	case result.Status == "1":
		return &usecase.VerificationStatus{Verified: true, Message: result.Result}, nil
	default:
		return &usecase.VerificationStatus{Message: result.Result}, nil
	}
}

func (c *EtherscanClient) do(req *http.Request) (*etherscanResponse, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("explorer returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result etherscanResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

func requireCredential(explorer config.ExplorerProfile) error {
	if !explorer.HasCredential() {
		return &domain.MissingCredentialError{Network: explorer.Network}
	}
	if explorer.APIURL == "" {
		return fmt.Errorf("no explorer API URL configured for network %s", explorer.Network)
	}
	return nil
}

func boolToString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Ensure the adapter implements the interface
var _ usecase.ContractVerifier = (*EtherscanClient)(nil)
