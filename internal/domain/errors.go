package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrUnknownNetwork is returned when a network name is not in the registry
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrInvalidNetwork is returned when a network profile is malformed
	ErrInvalidNetwork = errors.New("invalid network configuration")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrNetworkMismatch is returned when the live chain ID differs from the declared one
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrToolchainMissingVersion is returned when a compiler version is not installed
	ErrToolchainMissingVersion = errors.New("compiler version not installed")

	// ErrMissingCredential is returned when an API call needs a key that is not configured
	ErrMissingCredential = errors.New("missing credential")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")

	// ErrInvalidConfig is returned when clpkit.toml cannot be used
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UnknownNetworkError carries the requested name and close matches from the registry
type UnknownNetworkError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownNetworkError) Error() string {
	if e.Name == "" {
		return "network not specified"
	}
	msg := fmt.Sprintf("unknown network '%s'", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *UnknownNetworkError) Unwrap() error { return ErrUnknownNetwork }

// ToolchainMissingVersionError reports a compiler version the local toolchain cannot provide.
// Remedy is operator action: install the compiler, then re-run.
type ToolchainMissingVersionError struct {
	Version   string
	Available []string
}

func (e *ToolchainMissingVersionError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("solc %s is not installed (no compiler versions found)", e.Version)
	}
	return fmt.Sprintf("solc %s is not installed (available: %s)", e.Version, strings.Join(e.Available, ", "))
}

func (e *ToolchainMissingVersionError) Unwrap() error { return ErrToolchainMissingVersion }

// MissingCredentialError names the network and the env variable expected to hold a key
type MissingCredentialError struct {
	Network  string
	Variable string
}

func (e *MissingCredentialError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("no explorer API key for network %s (set %s)", e.Network, e.Variable)
	}
	return fmt.Sprintf("no explorer API key for network %s", e.Network)
}

func (e *MissingCredentialError) Unwrap() error { return ErrMissingCredential }

// VerificationError describes a rejected or failed verification submission.
// It never invalidates the deployment itself.
type VerificationError struct {
	Network string
	Address string
	Reason  string
	Err     error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("verification of %s on %s failed: %v", e.Address, e.Network, e.Err)
	}
	return fmt.Sprintf("verification of %s on %s failed: %s", e.Address, e.Network, e.Reason)
}

func (e *VerificationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrVerificationFailed, e.Err}
	}
	return []error{ErrVerificationFailed}
}
