package pool

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// WeightedPoolType selects the Balancer pool flavour a test deployment instantiates
type WeightedPoolType uint8

const (
	WeightedPool WeightedPoolType = iota
	WeightedPool2Tokens
	LiquidityBootstrappingPool
	InvestmentPool
)

var poolTypeNames = map[WeightedPoolType]string{
	WeightedPool:               "weighted",
	WeightedPool2Tokens:        "weighted-2-tokens",
	LiquidityBootstrappingPool: "liquidity-bootstrapping",
	InvestmentPool:             "investment",
}

func (t WeightedPoolType) String() string {
	if name, ok := poolTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("pool-type(%d)", uint8(t))
}

// ParseWeightedPoolType parses the names produced by String
func ParseWeightedPoolType(s string) (WeightedPoolType, error) {
	for t, name := range poolTypeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown pool type %q", s)
}

func (t WeightedPoolType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *WeightedPoolType) UnmarshalText(b []byte) error {
	parsed, err := ParseWeightedPoolType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DeploymentParams is the parameter bag for instantiating a pool in a test context.
// Every field is optional; nil means "let the harness pick the default".
// No cross-field constraints are checked here: weight normalisation and token/weight
// ordering are enforced by the pool contract.
type DeploymentParams struct {
	Tokens                      []common.Address  `json:"tokens,omitempty"`
	Weights                     []*big.Int        `json:"weights,omitempty"`
	Sqrts                       []*big.Int        `json:"sqrts,omitempty"`
	Root3Alpha                  *big.Int          `json:"root3Alpha,omitempty"`
	AssetManagers               []common.Address  `json:"assetManagers,omitempty"`
	SwapFeePercentage           *big.Int          `json:"swapFeePercentage,omitempty"`
	PauseWindowDuration         *big.Int          `json:"pauseWindowDuration,omitempty"`
	BufferPeriodDuration        *big.Int          `json:"bufferPeriodDuration,omitempty"`
	OracleEnabled               *bool             `json:"oracleEnabled,omitempty"`
	SwapEnabledOnStart          *bool             `json:"swapEnabledOnStart,omitempty"`
	ManagementSwapFeePercentage *big.Int          `json:"managementSwapFeePercentage,omitempty"`
	Owner                       *common.Address   `json:"owner,omitempty"`
	Admin                       *common.Address   `json:"admin,omitempty"`
	From                        *common.Address   `json:"from,omitempty"`
	Vault                       *common.Address   `json:"vault,omitempty"`
	FromFactory                 *bool             `json:"fromFactory,omitempty"`
	PoolType                    *WeightedPoolType `json:"poolType,omitempty"`
	Cap                         *CapParams        `json:"cap,omitempty"`
	PauseManager                *common.Address   `json:"pauseManager,omitempty"`
}

// CapParams limits liquidity while a pool is being rolled out
type CapParams struct {
	Enabled       bool            `json:"enabled"`
	GlobalCap     *big.Int        `json:"globalCap"`
	PerAddressCap *big.Int        `json:"perAddressCap"`
	CapManager    *common.Address `json:"capManager,omitempty"` // may change the caps later; defaults to the pool owner
}

// Bool returns a pointer to b, for filling optional flags
func Bool(b bool) *bool { return &b }

// Address returns a pointer to a, for filling optional actors
func Address(a common.Address) *common.Address { return &a }
