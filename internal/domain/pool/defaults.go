package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	day   = 24 * 60 * 60
	month = 30 * day
)

// One is 1.0 in 18-decimal fixed point
var One = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// Defaults holds the values the test harness substitutes for omitted fields
type Defaults struct {
	SwapFeePercentage           *big.Int
	PauseWindowDuration         *big.Int
	BufferPeriodDuration        *big.Int
	ManagementSwapFeePercentage *big.Int
	OracleEnabled               bool
	SwapEnabledOnStart          bool
	FromFactory                 bool
	PoolType                    WeightedPoolType

	// Actors; zero addresses when the chain has no entry in the address book
	Deployer     common.Address
	Owner        common.Address
	Admin        common.Address
	PauseManager common.Address
	Vault        common.Address
}

// HarnessDefaults returns the defaults used when deploying pools in tests
func HarnessDefaults() Defaults {
	return Defaults{
		SwapFeePercentage:           big.NewInt(1e16),
		PauseWindowDuration:         big.NewInt(3 * month),
		BufferPeriodDuration:        big.NewInt(month),
		ManagementSwapFeePercentage: big.NewInt(0),
		OracleEnabled:               true,
		SwapEnabledOnStart:          true,
		FromFactory:                 false,
		PoolType:                    WeightedPool,
	}
}

// ApplyDefaults returns a copy of p where every omitted field is taken from d.
// Fields already set are kept as-is.
func ApplyDefaults(p DeploymentParams, d Defaults) DeploymentParams {
	out := p

	if out.Weights == nil && len(out.Tokens) > 0 {
		out.Weights = make([]*big.Int, len(out.Tokens))
		for i := range out.Weights {
			out.Weights[i] = new(big.Int).Set(One)
		}
	}
	if out.AssetManagers == nil && len(out.Tokens) > 0 {
		out.AssetManagers = make([]common.Address, len(out.Tokens))
	}
	if out.SwapFeePercentage == nil {
		out.SwapFeePercentage = copyInt(d.SwapFeePercentage)
	}
	if out.PauseWindowDuration == nil {
		out.PauseWindowDuration = copyInt(d.PauseWindowDuration)
	}
	if out.BufferPeriodDuration == nil {
		out.BufferPeriodDuration = copyInt(d.BufferPeriodDuration)
	}
	if out.ManagementSwapFeePercentage == nil {
		out.ManagementSwapFeePercentage = copyInt(d.ManagementSwapFeePercentage)
	}
	if out.OracleEnabled == nil {
		out.OracleEnabled = Bool(d.OracleEnabled)
	}
	if out.SwapEnabledOnStart == nil {
		out.SwapEnabledOnStart = Bool(d.SwapEnabledOnStart)
	}
	if out.FromFactory == nil {
		out.FromFactory = Bool(d.FromFactory)
	}
	if out.PoolType == nil {
		pt := d.PoolType
		out.PoolType = &pt
	}
	if out.From == nil {
		out.From = Address(d.Deployer)
	}
	if out.Owner == nil {
		out.Owner = Address(d.Owner)
	}
	if out.Admin == nil {
		out.Admin = Address(d.Admin)
	}
	if out.PauseManager == nil {
		out.PauseManager = Address(d.PauseManager)
	}
	if out.Vault == nil {
		out.Vault = Address(d.Vault)
	}
	if out.Cap != nil && out.Cap.CapManager == nil {
		c := *out.Cap
		c.CapManager = Address(*out.Owner)
		out.Cap = &c
	}
	return out
}

func copyInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}
