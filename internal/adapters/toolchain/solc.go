package toolchain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/samber/lo"
)

// standardOutput is the subset of solc's output we keep
type standardOutput struct {
	Errors []struct {
		Severity         string `json:"severity"`
		FormattedMessage string `json:"formattedMessage"`
		Message          string `json:"message"`
	} `json:"errors"`
	Contracts map[string]map[string]json.RawMessage `json:"contracts"`
}

// SolcRunner compiles a unit with solc --standard-json and writes one artifact per contract
type SolcRunner struct {
	projectRoot string
	sources     usecase.SourceRepository
	log         *slog.Logger
}

// NewSolcRunner creates a new solc runner
func NewSolcRunner(cfg *config.RuntimeConfig, sources usecase.SourceRepository, log *slog.Logger) *SolcRunner {
	return &SolcRunner{
		projectRoot: cfg.ProjectRoot,
		sources:     sources,
		log:         log.With("component", "SolcRunner"),
	}
}

// Compile runs the unit's compiler over its sources
func (r *SolcRunner) Compile(ctx context.Context, unit usecase.CompilationUnit, outDir string) (*usecase.UnitOutput, error) {
	input, err := r.buildInput(ctx, unit)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode compiler input: %w", err)
	}

	start := time.Now()
	r.log.Debug("running solc", "bin", unit.BinaryPath, "key", unit.Key, "sources", len(unit.Sources), "inputs", len(input.Sources))

	cmd := exec.CommandContext(ctx, unit.BinaryPath, "--standard-json", "--allow-paths", r.projectRoot)
	cmd.Dir = r.projectRoot
	cmd.Stdin = bytes.NewReader(payload)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.Output()
	if err != nil {
		r.log.Error("solc failed", "error", err, "stderr", stderr.String())
		return nil, fmt.Errorf("solc failed: %w\nOutput: %s", err, stderr.String())
	}
	r.log.Debug("solc finished", "key", unit.Key, "duration", time.Since(start))

	return r.processOutput(unit, stdout, outDir)
}

// buildInput embeds every source the unit imports, so solc never reads the filesystem
func (r *SolcRunner) buildInput(ctx context.Context, unit usecase.CompilationUnit) (*usecase.StandardJSONInput, error) {
	sources, err := r.sources.CollectSources(ctx, unit.Sources)
	if err != nil {
		return nil, fmt.Errorf("failed to collect sources for %s: %w", unit.Key, err)
	}
	return usecase.NewStandardJSONInput(unit.Profile, sources, unit.Sources), nil
}

func (r *SolcRunner) processOutput(unit usecase.CompilationUnit, stdout []byte, outDir string) (*usecase.UnitOutput, error) {
	var out standardOutput
	if err := json.Unmarshal(stdout, &out); err != nil {
		return nil, fmt.Errorf("failed to parse solc output: %w", err)
	}

	result := &usecase.UnitOutput{Key: unit.Key}
	var errs []string
	for _, e := range out.Errors {
		msg := strings.TrimSpace(e.FormattedMessage)
		if msg == "" {
			msg = e.Message
		}
		if e.Severity == "error" {
			errs = append(errs, msg)
		} else {
			result.Warnings = append(result.Warnings, msg)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("compilation failed:\n%s", strings.Join(errs, "\n"))
	}

	for source, contracts := range out.Contracts {
		// dependencies belong to the unit that selects them
		if !lo.Contains(unit.Sources, source) {
			continue
		}
		dir := filepath.Join(outDir, source)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
		for name, artifact := range contracts {
			path := filepath.Join(dir, name+".json")
			if err := os.WriteFile(path, artifact, 0644); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", path, err)
			}
			result.Contracts = append(result.Contracts, source+":"+name)
		}
	}
	sort.Strings(result.Contracts)
	return result, nil
}

// Ensure the adapter implements the interface
var _ usecase.CompilerRunner = (*SolcRunner)(nil)
