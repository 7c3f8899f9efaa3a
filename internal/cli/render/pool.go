package render

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/gyrostable/clpkit/internal/domain/pool"
	"github.com/gyrostable/clpkit/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

// PoolRenderer renders pool parameter bags
type PoolRenderer struct {
	out   io.Writer
	color bool
}

// NewPoolRenderer creates a new pool renderer
func NewPoolRenderer(out io.Writer, color bool) *PoolRenderer {
	return &PoolRenderer{out: out, color: color}
}

// RenderList renders the available pool definitions
func (r *PoolRenderer) RenderList(names []string) error {
	if len(names) == 0 {
		fmt.Fprintln(r.out, "No pool definitions found")
		return nil
	}
	for _, name := range names {
		fmt.Fprintf(r.out, "  %s\n", name)
	}
	return nil
}

// RenderParams renders the defaulted deployment parameters for one pool
func (r *PoolRenderer) RenderParams(result *usecase.PreparePoolResult) error {
	faint := style(r.color, color.Faint)
	style(r.color, color.FgWhite, color.Bold).Fprintf(r.out, "%s (%s)", result.Pool.Name, result.Pool.Symbol)
	fmt.Fprintf(r.out, " %s\n", faint.Sprintf("on %s, chain %d", result.Network, result.ChainID))

	p := result.Params
	t := newTable()
	t.SetColumnConfigs(leftAligned(2))
	t.AppendRow(table.Row{"Kind", title(result.Pool.Kind)})
	if p.PoolType != nil {
		t.AppendRow(table.Row{"Pool type", title(p.PoolType.String())})
	}
	t.AppendRow(table.Row{"Tokens", joinAddresses(p.Tokens)})
	if result.Flipped {
		t.AppendRow(table.Row{"", faint.Sprint("token order flipped to sort by address")})
	}
	appendInts(t, "Weights", p.Weights)
	appendInts(t, "Sqrts", p.Sqrts)
	if p.Root3Alpha != nil {
		t.AppendRow(table.Row{"Root3Alpha", p.Root3Alpha.String()})
	}
	appendInt(t, "Swap fee", p.SwapFeePercentage)
	appendInt(t, "Management fee", p.ManagementSwapFeePercentage)
	appendInt(t, "Pause window", p.PauseWindowDuration)
	appendInt(t, "Buffer period", p.BufferPeriodDuration)
	appendBool(t, "Oracle enabled", p.OracleEnabled)
	appendBool(t, "Swap on start", p.SwapEnabledOnStart)
	appendAddress(t, "Vault", p.Vault)
	appendAddress(t, "Owner", p.Owner)
	appendAddress(t, "Admin", p.Admin)
	appendAddress(t, "From", p.From)
	appendAddress(t, "Pause manager", p.PauseManager)
	if p.FromFactory != nil && *p.FromFactory {
		t.AppendRow(table.Row{"Factory", result.Factory})
	}
	if p.Cap != nil {
		t.AppendRow(table.Row{"Cap", capLabel(p.Cap)})
		appendAddress(t, "Cap Manager", p.Cap.CapManager)
	}
	fmt.Fprintln(r.out, t.Render())

	for _, w := range result.Warnings {
		fmt.Fprintln(r.out, FormatWarning(w))
	}
	return nil
}

func appendInts(t table.Writer, label string, values []*big.Int) {
	if len(values) == 0 {
		return
	}
	t.AppendRow(table.Row{label, strings.Join(lo.Map(values, func(v *big.Int, _ int) string { return v.String() }), ", ")})
}

func appendInt(t table.Writer, label string, v *big.Int) {
	if v != nil {
		t.AppendRow(table.Row{label, v.String()})
	}
}

func appendBool(t table.Writer, label string, v *bool) {
	if v != nil {
		t.AppendRow(table.Row{label, *v})
	}
}

func appendAddress(t table.Writer, label string, v *common.Address) {
	if v != nil {
		t.AppendRow(table.Row{label, v.Hex()})
	}
}

func joinAddresses(addrs []common.Address) string {
	return strings.Join(lo.Map(addrs, func(a common.Address, _ int) string { return a.Hex() }), "\n")
}

func capLabel(c *pool.CapParams) string {
	if !c.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("global %s, per address %s", c.GlobalCap, c.PerAddressCap)
}
