// Package output renders CLI-facing views of gateway data.
package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/rankgate/rankgate/internal/core"
)

// FormatPlans renders the plan catalog as an ASCII table.
func FormatPlans(plans []core.Plan) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Tier", "Price", "Reports/Month", "Rate", "Burst", "Features"})

	for _, p := range plans {
		t.AppendRow(table.Row{
			string(p.Tier),
			fmt.Sprintf("$%d/mo", p.PriceUSD),
			ceilingLabel(p),
			fmt.Sprintf("%.2f/s", p.Rate),
			p.Burst,
			strings.Join(p.Features, ", "),
		})
	}

	return t.Render()
}

func ceilingLabel(p core.Plan) string {
	if p.Unlimited() {
		return "unlimited"
	}
	return fmt.Sprintf("%d", p.ReportsPerMonth)
}
