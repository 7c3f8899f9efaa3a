package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gyrostable/clpkit/internal/domain"
	"github.com/gyrostable/clpkit/internal/domain/config"
)

// VerificationRequest is everything an Etherscan-compatible explorer needs
type VerificationRequest struct {
	Address          common.Address
	SourcePath       string
	ContractName     string
	Input            *StandardJSONInput // the source and everything it imports
	CompilerVersion  string // long form, e.g. v0.7.1+commit.8d00100c
	OptimizationUsed bool
	Runs             int
	EVMVersion       string
	ConstructorArgs  string // hex without 0x
}

// VerificationStatus is the explorer's answer to a status query
type VerificationStatus struct {
	Pending  bool
	Verified bool
	Message  string
}

// VerifyContractParams contains parameters for verifying one contract
type VerifyContractParams struct {
	Network         string
	Address         string
	ContractRef     string // path/to/File.sol:ContractName
	ConstructorArgs string
	Wait            bool
	PollInterval    time.Duration
	MaxPolls        int
}

// VerifyContractResult contains the outcome. Failure is set when the explorer
// rejected the submission; the deployment itself is unaffected.
type VerifyContractResult struct {
	Network  string                 `json:"network"`
	Address  string                 `json:"address"`
	Contract string                 `json:"contract"`
	Profile  config.CompilerProfile `json:"profile"`
	Explorer config.ExplorerProfile `json:"explorer"`
	GUID     string                 `json:"guid,omitempty"`
	Verified bool                   `json:"verified"`
	Pending  bool                   `json:"pending"`
	URL      string                 `json:"url,omitempty"`
	Failure  error                  `json:"-"`
}

// MarshalJSON adds the failure message, which error values do not carry through encoding/json
func (r VerifyContractResult) MarshalJSON() ([]byte, error) {
	type plain VerifyContractResult
	out := struct {
		plain
		Failure string `json:"failure,omitempty"`
	}{plain: plain(r)}
	if r.Failure != nil {
		out.Failure = r.Failure.Error()
	}
	return json.Marshal(out)
}

// VerifyContract submits a deployed contract's source for verification
type VerifyContract struct {
	config    *config.RuntimeConfig
	networks  NetworkResolver
	explorers ExplorerResolver
	hints     CredentialHints
	compilers CompilerProfileResolver
	toolchain CompilerToolchain
	sources   SourceRepository
	verifier  ContractVerifier
	selector  NetworkSelector
	progress  ProgressSink
}

// NewVerifyContract creates a new VerifyContract use case
func NewVerifyContract(
	cfg *config.RuntimeConfig,
	networks NetworkResolver,
	explorers ExplorerResolver,
	hints CredentialHints,
	compilers CompilerProfileResolver,
	toolchain CompilerToolchain,
	sources SourceRepository,
	verifier ContractVerifier,
	selector NetworkSelector,
	progress ProgressSink,
) *VerifyContract {
	return &VerifyContract{
		config:    cfg,
		networks:  networks,
		explorers: explorers,
		hints:     hints,
		compilers: compilers,
		toolchain: toolchain,
		sources:   sources,
		verifier:  verifier,
		selector:  selector,
		progress:  progress,
	}
}

// ParseContractRef splits "path/File.sol:Name". Without a name the file stem is used.
func ParseContractRef(ref string) (path, name string, err error) {
	path, name, found := strings.Cut(ref, ":")
	if path == "" {
		return "", "", fmt.Errorf("invalid contract reference %q: missing source path", ref)
	}
	if !found || name == "" {
		base := path[strings.LastIndex(path, "/")+1:]
		name = strings.TrimSuffix(base, ".sol")
	}
	return path, name, nil
}

// Run executes the use case. Only local problems (unknown network, bad
// reference, unreadable source) are returned as errors.
func (uc *VerifyContract) Run(ctx context.Context, params VerifyContractParams) (*VerifyContractResult, error) {
	if !common.IsHexAddress(params.Address) {
		return nil, fmt.Errorf("invalid contract address %q", params.Address)
	}
	sourcePath, contractName, err := ParseContractRef(params.ContractRef)
	if err != nil {
		return nil, err
	}

	networkName, err := selectNetwork(ctx, uc.config, uc.networks, uc.selector, params.Network)
	if err != nil {
		return nil, err
	}
	if _, err := uc.networks.ResolveNetwork(ctx, networkName); err != nil {
		return nil, err
	}

	address := common.HexToAddress(params.Address)
	profile, _ := uc.compilers.Resolve(sourcePath)
	explorer := uc.explorers.Lookup(networkName)
	result := &VerifyContractResult{
		Network:  networkName,
		Address:  address.Hex(),
		Contract: sourcePath + ":" + contractName,
		Profile:  profile,
		Explorer: explorer,
	}

	if !explorer.HasCredential() {
		result.Failure = &domain.MissingCredentialError{
			Network:  networkName,
			Variable: uc.keyVariable(networkName),
		}
		return result, nil
	}
	if explorer.APIURL == "" {
		result.Failure = uc.failure(result, "no explorer API URL known for this network", nil)
		return result, nil
	}

	sources, err := uc.sources.CollectSources(ctx, []string{sourcePath})
	if err != nil {
		return nil, fmt.Errorf("failed to collect sources for %s: %w", sourcePath, err)
	}

	longVersion, err := uc.toolchain.LongVersion(ctx, profile.Version)
	if err != nil {
		return nil, err
	}

	req := VerificationRequest{
		Address:          address,
		SourcePath:       sourcePath,
		ContractName:     contractName,
		Input:            NewStandardJSONInput(profile, sources, []string{sourcePath}),
		CompilerVersion:  longVersion,
		OptimizationUsed: profile.Optimizer.Enabled,
		Runs:             profile.Optimizer.Runs,
		EVMVersion:       profile.EVMVersion,
		ConstructorArgs:  strings.TrimPrefix(params.ConstructorArgs, "0x"),
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "submitting", Message: fmt.Sprintf("Submitting %s", contractName), Spinner: true})
	guid, err := uc.verifier.Submit(ctx, explorer, req)
	if err != nil {
		uc.progress.Error("Submission rejected")
		result.Failure = uc.failure(result, "", err)
		return result, nil
	}
	result.GUID = guid
	result.Pending = true
	if explorer.BrowserURL != "" {
		result.URL = strings.TrimSuffix(explorer.BrowserURL, "/") + "/address/" + result.Address + "#code"
	}

	if !params.Wait {
		uc.progress.Info(fmt.Sprintf("Submitted %s (guid %s)", contractName, guid))
		return result, nil
	}

	status, err := uc.poll(ctx, explorer, guid, params)
	if err != nil {
		result.Failure = uc.failure(result, "", err)
		return result, nil
	}
	result.Pending = status.Pending
	result.Verified = status.Verified
	if !status.Pending && !status.Verified {
		result.Failure = uc.failure(result, status.Message, nil)
		uc.progress.Error(fmt.Sprintf("Verification failed: %s", status.Message))
	} else if status.Verified {
		uc.progress.Info(fmt.Sprintf("Verified %s", contractName))
	}
	return result, nil
}

func (uc *VerifyContract) poll(ctx context.Context, explorer config.ExplorerProfile, guid string, params VerifyContractParams) (*VerificationStatus, error) {
	interval := params.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	maxPolls := params.MaxPolls
	if maxPolls <= 0 {
		maxPolls = 12
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var status *VerificationStatus
	for i := 0; i < maxPolls; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "waiting", Current: i + 1, Total: maxPolls, Message: "Waiting for explorer", Spinner: true})

		var err error
		status, err = uc.verifier.CheckStatus(ctx, explorer, guid)
		if err != nil {
			return nil, err
		}
		if !status.Pending {
			return status, nil
		}
	}
	return status, nil
}

func (uc *VerifyContract) keyVariable(network string) string {
	if uc.hints == nil {
		return ""
	}
	return uc.hints.APIKeyVariable(network)
}

func (uc *VerifyContract) failure(result *VerifyContractResult, reason string, err error) error {
	var missing *domain.MissingCredentialError
	if errors.As(err, &missing) {
		return missing
	}
	return &domain.VerificationError{
		Network: result.Network,
		Address: result.Address,
		Reason:  reason,
		Err:     err,
	}
}
