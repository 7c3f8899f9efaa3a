package pool

// Config represents a pool definition file in config/pools/<name>.yaml (or .json)
type Config struct {
	Name              string     `yaml:"name" json:"name"`
	Symbol            string     `yaml:"symbol" json:"symbol"`
	Kind              string     `yaml:"kind,omitempty" json:"kind,omitempty"` // c2lp, c3lp or weighted
	Tokens            []string   `yaml:"tokens" json:"tokens"`
	Weights           []string   `yaml:"weights,omitempty" json:"weights,omitempty"`
	Bounds            []string   `yaml:"bounds,omitempty" json:"bounds,omitempty"` // c2lp price range
	Root3Alpha        string     `yaml:"root_3_alpha,omitempty" json:"root_3_alpha,omitempty"`
	SwapFeePercentage string     `yaml:"swap_fee_percentage" json:"swap_fee_percentage"`
	OracleEnabled     *bool      `yaml:"oracle_enabled,omitempty" json:"oracle_enabled,omitempty"`
	PoolType          string     `yaml:"pool_type,omitempty" json:"pool_type,omitempty"`
	Cap               *CapConfig `yaml:"cap,omitempty" json:"cap,omitempty"`
}

// CapConfig holds cap amounts as decimal strings in token units
type CapConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	Global     string `yaml:"global" json:"global"`
	PerAddress string `yaml:"per_address" json:"per_address"`
	Manager    string `yaml:"manager,omitempty" json:"manager,omitempty"`
}

// Pool kinds understood by the parameter harness
const (
	KindTwoCLP   = "c2lp"
	KindThreeCLP = "c3lp"
	KindWeighted = "weighted"
)
