package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/samber/lo"
)

// CompilationUnit groups the sources that share one compiler profile
type CompilationUnit struct {
	Key        string                 `json:"key"`
	Profile    config.CompilerProfile `json:"profile"`
	Sources    []string               `json:"sources"`
	BinaryPath string                 `json:"binaryPath,omitempty"`
}

// CompilePlan is the full set of compilation units for a project
type CompilePlan struct {
	SourceDir string            `json:"sourceDir"`
	OutDir    string            `json:"outDir"`
	Units     []CompilationUnit `json:"units"`
}

// SourceCount returns the number of sources across all units
func (p *CompilePlan) SourceCount() int {
	n := 0
	for _, u := range p.Units {
		n += len(u.Sources)
	}
	return n
}

// UnitOutput is what the compiler produced for one unit
type UnitOutput struct {
	Key       string   `json:"key"`
	Contracts []string `json:"contracts"`
	Warnings  []string `json:"warnings,omitempty"`
}

// CompileResult contains the outcome of a compile run
type CompileResult struct {
	Plan     *CompilePlan  `json:"plan"`
	Outputs  []*UnitOutput `json:"outputs,omitempty"`
	Manifest string        `json:"manifest,omitempty"`
	DryRun   bool          `json:"dryRun"`
}

// PlanCompile walks the source directory, adds overridden sources found elsewhere,
// and groups files by resolved profile
type PlanCompile struct {
	config    *config.RuntimeConfig
	sources   SourceRepository
	resolver  CompilerProfileResolver
	toolchain CompilerToolchain
}

// NewPlanCompile creates a new PlanCompile use case
func NewPlanCompile(
	cfg *config.RuntimeConfig,
	sources SourceRepository,
	resolver CompilerProfileResolver,
	toolchain CompilerToolchain,
) *PlanCompile {
	return &PlanCompile{
		config:    cfg,
		sources:   sources,
		resolver:  resolver,
		toolchain: toolchain,
	}
}

// Run builds the plan. Every version it needs must be installed.
func (uc *PlanCompile) Run(ctx context.Context) (*CompilePlan, error) {
	paths := uc.config.Project.Paths.WithDefaults()
	files, err := uc.sources.ListSources(ctx, paths.Sources)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources in %s: %w", paths.Sources, err)
	}

	// Overridden dependencies (e.g. the Balancer Vault under node_modules) are
	// compiled as units of their own so the override applies to their artifacts.
	for _, key := range uc.resolver.OverridePaths() {
		if lo.Contains(files, key) {
			continue
		}
		if _, err := uc.sources.Locate(ctx, key); err != nil {
			slog.Debug("compiler override has no source", "path", key)
			continue
		}
		files = append(files, key)
	}

	units := make(map[string]*CompilationUnit)
	for _, file := range files {
		profile, _ := uc.resolver.Resolve(file)
		key := profile.Key()
		unit, ok := units[key]
		if !ok {
			unit = &CompilationUnit{Key: key, Profile: profile}
			units[key] = unit
		}
		unit.Sources = append(unit.Sources, file)
	}

	plan := &CompilePlan{
		SourceDir: paths.Sources,
		OutDir:    paths.Artifacts,
	}
	versions := make([]string, 0, len(units))
	for _, unit := range units {
		sort.Strings(unit.Sources)
		plan.Units = append(plan.Units, *unit)
		versions = append(versions, unit.Profile.Version)
	}
	sort.Slice(plan.Units, func(i, j int) bool { return plan.Units[i].Key < plan.Units[j].Key })
	sort.Strings(versions)

	if err := checkInstalled(ctx, uc.toolchain, versions); err != nil {
		return nil, err
	}
	for i := range plan.Units {
		bin, err := uc.toolchain.BinaryPath(ctx, plan.Units[i].Profile.Version)
		if err != nil {
			return nil, fmt.Errorf("failed to locate solc %s: %w", plan.Units[i].Profile.Version, err)
		}
		plan.Units[i].BinaryPath = bin
	}

	slog.Debug("compile plan ready", "units", len(plan.Units), "sources", plan.SourceCount())
	return plan, nil
}

// CompileHook runs around the default compile action. Either function may be nil.
type CompileHook struct {
	Name string
	Pre  func(ctx context.Context, plan *CompilePlan) error
	Post func(ctx context.Context, result *CompileResult) error
}

// CompileTask is the named compile step. Hooks are registered once, at wiring time.
type CompileTask struct {
	name  string
	hooks []CompileHook
}

// NewCompileTask creates the compile step with the given hooks, run in order
func NewCompileTask(hooks ...CompileHook) *CompileTask {
	return &CompileTask{name: "compile", hooks: hooks}
}

// Name returns the task name
func (t *CompileTask) Name() string { return t.name }

// Hooks returns the registered hook names
func (t *CompileTask) Hooks() []string {
	names := make([]string, 0, len(t.hooks))
	for _, h := range t.hooks {
		names = append(names, h.Name)
	}
	return names
}

// ProvideCompileTask registers the default hooks: the artifact manifest is written after every compile
func ProvideCompileTask(manifest CompileManifestWriter) *CompileTask {
	return NewCompileTask(CompileHook{
		Name: "manifest",
		Post: func(ctx context.Context, result *CompileResult) error {
			path, err := manifest.WriteManifest(ctx, result.Plan)
			if err != nil {
				return err
			}
			result.Manifest = path
			return nil
		},
	})
}

// CompileParams contains parameters for compiling
type CompileParams struct {
	DryRun bool
}

// Compile plans the build and runs every compilation unit through the compile task
type Compile struct {
	config   *config.RuntimeConfig
	planner  *PlanCompile
	task     *CompileTask
	runner   CompilerRunner
	progress ProgressSink
}

// NewCompile creates a new Compile use case
func NewCompile(
	cfg *config.RuntimeConfig,
	planner *PlanCompile,
	task *CompileTask,
	runner CompilerRunner,
	progress ProgressSink,
) *Compile {
	return &Compile{
		config:   cfg,
		planner:  planner,
		task:     task,
		runner:   runner,
		progress: progress,
	}
}

// Run executes the use case
func (uc *Compile) Run(ctx context.Context, params CompileParams) (*CompileResult, error) {
	plan, err := uc.planner.Run(ctx)
	if err != nil {
		return nil, err
	}
	result := &CompileResult{Plan: plan, DryRun: params.DryRun}
	if params.DryRun {
		return result, nil
	}

	for _, hook := range uc.task.hooks {
		if hook.Pre == nil {
			continue
		}
		if err := hook.Pre(ctx, plan); err != nil {
			return nil, fmt.Errorf("%s pre-hook %s failed: %w", uc.task.name, hook.Name, err)
		}
	}

	outDir := filepath.Join(uc.config.ProjectRoot, plan.OutDir)
	for i, unit := range plan.Units {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "compiling",
			Current: i + 1,
			Total:   len(plan.Units),
			Message: fmt.Sprintf("solc %s (%d files)", unit.Profile.Version, len(unit.Sources)),
			Spinner: true,
		})
		out, err := uc.runner.Compile(ctx, unit, outDir)
		if err != nil {
			uc.progress.Error(fmt.Sprintf("compilation failed for %s", unit.Key))
			return nil, fmt.Errorf("failed to compile %s: %w", unit.Key, err)
		}
		result.Outputs = append(result.Outputs, out)
	}
	uc.progress.Info(fmt.Sprintf("compiled %d files in %d units", plan.SourceCount(), len(plan.Units)))

	for _, hook := range uc.task.hooks {
		if hook.Post == nil {
			continue
		}
		if err := hook.Post(ctx, result); err != nil {
			return nil, fmt.Errorf("%s post-hook %s failed: %w", uc.task.name, hook.Name, err)
		}
	}
	return result, nil
}
