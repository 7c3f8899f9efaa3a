package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// VerifyRenderer renders contract verification outcomes
type VerifyRenderer struct {
	out   io.Writer
	color bool
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer, color bool) *VerifyRenderer {
	return &VerifyRenderer{out: out, color: color}
}

// Render renders the verification outcome
func (r *VerifyRenderer) Render(result *usecase.VerifyContractResult) error {
	t := newTable()
	t.SetColumnConfigs(leftAligned(2))
	t.AppendRow(table.Row{"Contract", result.Contract})
	t.AppendRow(table.Row{"Address", result.Address})
	t.AppendRow(table.Row{"Network", result.Network})
	t.AppendRow(table.Row{"Compiler", fmt.Sprintf("solc %s, %s", result.Profile.Version, optimizerLabel(result.Profile.Optimizer))})
	if result.GUID != "" {
		t.AppendRow(table.Row{"GUID", result.GUID})
	}
	fmt.Fprintln(r.out, t.Render())

	switch {
	case result.Failure != nil:
		fmt.Fprintln(r.out, style(r.color, color.FgRed).Sprintf("❌ Verification failed: %v", result.Failure))
		fmt.Fprintln(r.out, style(r.color, color.Faint).Sprint("The deployment is unaffected; re-run verify once the issue is fixed."))
	case result.Verified:
		fmt.Fprintln(r.out, style(r.color, color.FgGreen).Sprint("✅ Verified"))
	case result.Pending:
		fmt.Fprintln(r.out, style(r.color, color.FgYellow).Sprint("⏳ Submitted, verification pending"))
	}
	if result.URL != "" {
		fmt.Fprintf(r.out, "   %s\n", result.URL)
	}
	return nil
}
