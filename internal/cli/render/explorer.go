package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// ExplorerRenderer renders resolved verification profiles
type ExplorerRenderer struct {
	out   io.Writer
	color bool
}

// NewExplorerRenderer creates a new explorer renderer
func NewExplorerRenderer(out io.Writer, color bool) *ExplorerRenderer {
	return &ExplorerRenderer{out: out, color: color}
}

// Render renders the explorer profile of a network
func (r *ExplorerRenderer) Render(result *usecase.ShowExplorerResult) error {
	p := result.Profile
	kind := "standard"
	if p.Custom {
		kind = "custom chain"
	}
	style(r.color, color.FgWhite, color.Bold).Fprintf(r.out, "Explorer for %s ", p.Network)
	fmt.Fprintln(r.out, style(r.color, color.Faint).Sprintf("(%s)", title(kind)))

	t := newTable()
	t.SetColumnConfigs(leftAligned(2))
	if p.ChainID != 0 {
		t.AppendRow(table.Row{"Chain ID", p.ChainID})
	}
	t.AppendRow(table.Row{"API", orDash(p.APIURL)})
	t.AppendRow(table.Row{"Browser", orDash(p.BrowserURL)})
	key := credentialLabel(r.color, result.HasCredential)
	if !result.HasCredential && result.KeyVariable != "" {
		key += style(r.color, color.Faint).Sprintf(" (set %s)", result.KeyVariable)
	}
	t.AppendRow(table.Row{"API key", key})
	fmt.Fprintln(r.out, t.Render())

	if result.Gap {
		fmt.Fprintln(r.out, FormatWarning("no explorer endpoint known for this chain; add an [[etherscan.custom_chains]] entry"))
	}
	return nil
}
