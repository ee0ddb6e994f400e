package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/username/datecalc/internal/ops"
)

func (a *app) print(res *ops.Result) error {
	if a.jsonOutput {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	switch res.Op {
	case ops.OpIsBusinessDay:
		if *res.BusinessDay {
			color.New(color.FgGreen).Fprintf(a.out, "%s is a business day\n", res.Formatted)
		} else {
			color.New(color.FgYellow).Fprintf(a.out, "%s is not a business day\n", res.Formatted)
		}
	case ops.OpTotals:
		t := res.Totals
		fmt.Fprintf(a.out, "days:    %d\n", t.Days)
		fmt.Fprintf(a.out, "hours:   %d\n", t.Hours)
		fmt.Fprintf(a.out, "minutes: %d\n", t.Minutes)
		fmt.Fprintf(a.out, "seconds: %d\n", t.Seconds)
	case ops.OpDecompose:
		c := res.Components
		sign := ""
		if res.Negative {
			sign = "-"
		}
		fmt.Fprintf(a.out, "%syears=%d months=%d days=%d hours=%d minutes=%d seconds=%d\n",
			sign, c.Years, c.Months, c.Days, c.Hours, c.Minutes, c.Seconds)
	case ops.OpRenderDuration:
		fmt.Fprintln(a.out, res.Text)
	default:
		fmt.Fprintln(a.out, res.Formatted)
	}
	return nil
}
