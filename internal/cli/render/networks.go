package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// NetworksRenderer renders network lists and details
type NetworksRenderer struct {
	out   io.Writer
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, color bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		color: color,
	}
}

// RenderNetworksList renders the list of networks
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in clpkit.toml [networks]")
		return nil
	}

	header := style(r.color, color.FgCyan, color.Bold)
	ok := style(r.color, color.FgGreen)
	bad := style(r.color, color.FgRed)
	faint := style(r.color, color.Faint)

	header.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable()
	t.SetColumnConfigs(leftAligned(5))
	for _, network := range result.Networks {
		if network.Error != nil {
			t.AppendRow(table.Row{bad.Sprint("❌ " + network.Name), bad.Sprintf("Error: %v", network.Error), "", "", ""})
			continue
		}

		chainID := faint.Sprint("unknown")
		if network.ChainID != 0 {
			chainID = strconv.FormatUint(network.ChainID, 10)
			if network.ChainIDSource != "declared" {
				chainID += faint.Sprintf(" (%s)", network.ChainIDSource)
			}
		}

		kind := ""
		if network.ForkURL != "" {
			kind = style(r.color, color.FgYellow).Sprint("fork")
		}
		explorer := faint.Sprint("no explorer")
		if network.Explorer {
			explorer = "explorer ✓"
		}

		t.AppendRow(table.Row{ok.Sprint("✅ " + network.Name), "Chain ID: " + chainID, kind, explorer, faint.Sprint(network.URL)})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderNetwork renders one network with its explorer
func (r *NetworksRenderer) RenderNetwork(result *usecase.ShowNetworkResult) error {
	label := style(r.color, color.FgWhite, color.Bold)
	faint := style(r.color, color.Faint)

	network := result.Network
	label.Fprintf(r.out, "Network: %s\n", network.Name)

	t := newTable()
	t.SetColumnConfigs(leftAligned(2))
	t.AppendRow(table.Row{"URL", network.URL})
	if result.ChainID != 0 {
		t.AppendRow(table.Row{"Chain ID", fmt.Sprintf("%d %s", result.ChainID, faint.Sprintf("(%s)", result.ChainIDSource))})
	} else {
		t.AppendRow(table.Row{"Chain ID", faint.Sprint("not declared (run `clpkit networks check` to probe)")})
	}
	if network.IsFork() {
		fork := network.Forking.URL
		if network.Forking.BlockNumber != 0 {
			fork += fmt.Sprintf(" @ block %d", network.Forking.BlockNumber)
		}
		t.AppendRow(table.Row{"Fork of", fork})
	}
	t.AppendRow(table.Row{"Explorer API", orDash(result.Explorer.APIURL)})
	t.AppendRow(table.Row{"Explorer", orDash(result.Explorer.BrowserURL)})
	t.AppendRow(table.Row{"API key", credentialLabel(r.color, result.Explorer.HasCredential())})
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderCheck renders a live endpoint check
func (r *NetworksRenderer) RenderCheck(result *usecase.CheckNetworkResult) error {
	t := newTable()
	t.SetColumnConfigs(leftAligned(2))
	t.AppendRow(table.Row{"Endpoint", result.URL})
	t.AppendRow(table.Row{"Live chain ID", result.LiveChainID})
	if result.DeclaredChainID != 0 {
		t.AppendRow(table.Row{"Declared chain ID", result.DeclaredChainID})
	}
	t.AppendRow(table.Row{"Latest block", result.LatestBlock})
	if result.ForkURL != "" {
		t.AppendRow(table.Row{"Fork source chain ID", result.ForkChainID})
	}
	fmt.Fprintln(r.out, t.Render())

	if result.Mismatch {
		fmt.Fprintln(r.out, style(r.color, color.FgRed).Sprintf("❌ %s declares chain %d but the endpoint is chain %d",
			result.Name, result.DeclaredChainID, result.LiveChainID))
		if len(result.LiveNetworks) > 0 {
			fmt.Fprintf(r.out, "   chain %d is configured as %s\n", result.LiveChainID, strings.Join(result.LiveNetworks, ", "))
		}
		return nil
	}
	fmt.Fprintln(r.out, style(r.color, color.FgGreen).Sprintf("✅ %s is reachable", result.Name))
	return nil
}

func credentialLabel(enabled, has bool) string {
	if has {
		return style(enabled, color.FgGreen).Sprint("configured")
	}
	return style(enabled, color.FgYellow).Sprint("missing")
}
