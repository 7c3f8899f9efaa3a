package usecase

import (
	"sort"

	"github.com/gyrostable/clpkit/internal/domain/config"
)

// StandardJSONInput is the solc --standard-json input document. Explorers
// accept the same document for solidity-standard-json-input verification.
type StandardJSONInput struct {
	Language string                        `json:"language"`
	Sources  map[string]StandardJSONSource `json:"sources"`
	Settings StandardJSONSettings          `json:"settings"`
}

type StandardJSONSource struct {
	Content string `json:"content"`
}

type StandardJSONSettings struct {
	Optimizer       config.OptimizerSettings       `json:"optimizer"`
	EVMVersion      string                         `json:"evmVersion,omitempty"`
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

var artifactOutputs = []string{"abi", "evm.bytecode.object", "evm.deployedBytecode.object", "metadata"}

// NewStandardJSONInput builds the document for sources (unit name to content).
// Output is only requested for the selected units; the rest are dependencies
// compiled under the same profile.
func NewStandardJSONInput(profile config.CompilerProfile, sources map[string]string, selected []string) *StandardJSONInput {
	input := &StandardJSONInput{
		Language: "Solidity",
		Sources:  make(map[string]StandardJSONSource, len(sources)),
		Settings: StandardJSONSettings{
			Optimizer:       profile.Optimizer,
			EVMVersion:      profile.EVMVersion,
			OutputSelection: make(map[string]map[string][]string, len(selected)),
		},
	}
	for name, content := range sources {
		input.Sources[name] = StandardJSONSource{Content: content}
	}
	for _, name := range selected {
		input.Settings.OutputSelection[name] = map[string][]string{"*": artifactOutputs}
	}
	return input
}

// SourceNames returns the unit names in the document, sorted
func (in *StandardJSONInput) SourceNames() []string {
	names := make([]string, 0, len(in.Sources))
	for name := range in.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
