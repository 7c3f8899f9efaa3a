package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gyrostable/clpkit/internal/config"
	"github.com/gyrostable/clpkit/internal/usecase"
)

const defaultDialTimeout = 10 * time.Second

// CheckerAdapter queries JSON-RPC endpoints using ethclient.
// Each call dials, queries and closes; nothing is kept between calls.
type CheckerAdapter struct {
	timeout time.Duration
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{timeout: defaultDialTimeout}
}

// FetchChainID asks the endpoint for its chain ID
func (c *CheckerAdapter) FetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	var chainID uint64
	err := c.withClient(ctx, rpcURL, func(ctx context.Context, client *ethclient.Client) error {
		id, err := client.ChainID(ctx)
		if err != nil {
			return fmt.Errorf("failed to get chain ID: %w", err)
		}
		chainID = id.Uint64()
		return nil
	})
	return chainID, err
}

// LatestBlock returns the current block number of the endpoint
func (c *CheckerAdapter) LatestBlock(ctx context.Context, rpcURL string) (uint64, error) {
	var block uint64
	err := c.withClient(ctx, rpcURL, func(ctx context.Context, client *ethclient.Client) error {
		n, err := client.BlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to get block number: %w", err)
		}
		block = n
		return nil
	})
	return block, err
}

func (c *CheckerAdapter) withClient(ctx context.Context, rpcURL string, fn func(context.Context, *ethclient.Client) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	return fn(ctx, client)
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.ChainInspector = (*CheckerAdapter)(nil)
	_ config.ChainIDFetcher  = (*CheckerAdapter)(nil)
)
