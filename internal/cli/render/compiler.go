package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/gyrostable/clpkit/internal/domain/config"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

// CompilerRenderer renders compiler profile lookups and compile runs
type CompilerRenderer struct {
	out   io.Writer
	color bool
}

// NewCompilerRenderer creates a new compiler renderer
func NewCompilerRenderer(out io.Writer, color bool) *CompilerRenderer {
	return &CompilerRenderer{out: out, color: color}
}

// RenderResolved renders the profile picked for a single source
func (r *CompilerRenderer) RenderResolved(result *usecase.ResolveCompilerResult) error {
	source := "default"
	if result.Overridden {
		source = style(r.color, color.FgYellow).Sprint("override")
	}
	style(r.color, color.FgWhite, color.Bold).Fprintf(r.out, "%s\n", result.SourcePath)

	t := newTable()
	t.SetColumnConfigs(leftAligned(2))
	t.AppendRow(table.Row{"Profile", source})
	appendProfileRows(t, result.Profile)
	t.AppendRow(table.Row{"Binary", orDash(result.BinaryPath)})
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderProfiles renders the default profile, overrides and installed versions
func (r *CompilerRenderer) RenderProfiles(result *usecase.ListCompilerProfilesResult) error {
	header := style(r.color, color.FgCyan, color.Bold)

	header.Fprintln(r.out, "Default profile:")
	t := newTable()
	t.SetColumnConfigs(leftAligned(2))
	appendProfileRows(t, result.Default)
	fmt.Fprintln(r.out, t.Render())

	if len(result.Overrides) > 0 {
		fmt.Fprintln(r.out)
		header.Fprintln(r.out, "Overrides:")
		ot := newTable()
		ot.AppendHeader(table.Row{"SOURCE", "VERSION", "EVM", "OPTIMIZER"})
		ot.SetColumnConfigs(leftAligned(4))
		paths := lo.Keys(result.Overrides)
		sort.Strings(paths)
		for _, path := range paths {
			p := result.Overrides[path]
			ot.AppendRow(table.Row{path, p.Version, orDash(p.EVMVersion), optimizerLabel(p.Optimizer)})
		}
		fmt.Fprintln(r.out, ot.Render())
	}

	fmt.Fprintln(r.out)
	header.Fprintln(r.out, "Toolchain:")
	for _, v := range result.Versions {
		if v.Installed {
			fmt.Fprintf(r.out, "  %s solc %s\n", style(r.color, color.FgGreen).Sprint("✓"), v.Version)
		} else {
			fmt.Fprintf(r.out, "  %s solc %s %s\n", style(r.color, color.FgRed).Sprint("✗"), v.Version,
				style(r.color, color.Faint).Sprint("(not installed)"))
		}
	}
	return nil
}

// RenderCompile renders a compile plan or the outputs of a compile run
func (r *CompilerRenderer) RenderCompile(result *usecase.CompileResult) error {
	plan := result.Plan
	header := style(r.color, color.FgCyan, color.Bold)
	if result.DryRun {
		header.Fprintf(r.out, "Compile plan: %d sources in %d units\n", plan.SourceCount(), len(plan.Units))
	} else {
		header.Fprintf(r.out, "Compiled %d sources in %d units\n", plan.SourceCount(), len(plan.Units))
	}

	outputs := lo.KeyBy(result.Outputs, func(o *usecase.UnitOutput) string { return o.Key })
	for _, unit := range plan.Units {
		fmt.Fprintln(r.out)
		style(r.color, color.FgWhite, color.Bold).Fprintf(r.out, "solc %s", unit.Profile.Version)
		fmt.Fprintf(r.out, " %s\n", style(r.color, color.Faint).Sprintf("(evm %s, %s)",
			orDash(unit.Profile.EVMVersion), optimizerLabel(unit.Profile.Optimizer)))
		for _, src := range unit.Sources {
			fmt.Fprintf(r.out, "  %s\n", src)
		}
		if out, ok := outputs[unit.Key]; ok {
			fmt.Fprintf(r.out, "  %s\n", style(r.color, color.FgGreen).Sprintf("→ %d contracts", len(out.Contracts)))
			for _, w := range out.Warnings {
				fmt.Fprintf(r.out, "  %s\n", FormatWarning(w))
			}
		}
	}

	if result.Manifest != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "Manifest: %s\n", result.Manifest)
	}
	return nil
}

func appendProfileRows(t table.Writer, p config.CompilerProfile) {
	t.AppendRow(table.Row{"Version", p.Version})
	t.AppendRow(table.Row{"EVM version", orDash(p.EVMVersion)})
	t.AppendRow(table.Row{"Optimizer", optimizerLabel(p.Optimizer)})
}

func optimizerLabel(o config.OptimizerSettings) string {
	if !o.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("%d runs", o.Runs)
}
