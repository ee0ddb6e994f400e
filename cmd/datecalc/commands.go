package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/datecalc/internal/calmath"
	"github.com/username/datecalc/internal/dateerr"
	"github.com/username/datecalc/internal/ops"
)

// instantArg maps the "now" keyword onto the current time
func (a *app) instantArg(arg string) string {
	if strings.EqualFold(arg, "now") {
		return a.now().UTC().Format(time.RFC3339Nano)
	}
	return arg
}

func addDeltaFlags(cmd *cobra.Command, d *calmath.Delta) {
	cmd.Flags().IntVarP(&d.Years, "years", "y", 0, "Years")
	cmd.Flags().IntVarP(&d.Months, "months", "M", 0, "Months")
	cmd.Flags().IntVarP(&d.Weeks, "weeks", "w", 0, "Weeks")
	cmd.Flags().IntVarP(&d.Days, "days", "d", 0, "Days")
	cmd.Flags().IntVarP(&d.Hours, "hours", "H", 0, "Hours")
	cmd.Flags().IntVarP(&d.Minutes, "minutes", "m", 0, "Minutes")
	cmd.Flags().IntVarP(&d.Seconds, "seconds", "s", 0, "Seconds")
}

func addZoneFlags(cmd *cobra.Command, req *ops.Request, withPattern bool) {
	cmd.Flags().StringVar(&req.Timezone, "tz", "", "Timezone for calendar math and display (default from config)")
	if withPattern {
		cmd.Flags().StringVarP(&req.Pattern, "format", "f", "", "Output format: rfc3339, iso8601, date, display or a Go layout")
	}
}

// shiftCmd builds the add and subtract commands
func (a *app) shiftCmd(op string) *cobra.Command {
	req := ops.Request{Op: op}
	verb := "Add calendar units to"
	if op == ops.OpSubtract {
		verb = "Subtract calendar units from"
	}

	cmd := &cobra.Command{
		Use:     op + " <instant>",
		Short:   verb + " an instant",
		Example: "  datecalc " + op + " 2025-01-31 --months 1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Base = a.instantArg(args[0])
			return a.execute(req)
		},
	}

	addDeltaFlags(cmd, &req.Delta)
	addZoneFlags(cmd, &req, true)
	return cmd
}

func (a *app) businessCmd() *cobra.Command {
	req := ops.Request{Op: ops.OpBusinessShift}
	var days int

	cmd := &cobra.Command{
		Use:     "business <instant>",
		Short:   "Move an instant by a number of business days",
		Example: "  datecalc business 2025-08-11 --days 5\n  datecalc business now --days -2 --non-business fri,sat",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("days") {
				req.Days = &days
			}
			req.Base = a.instantArg(args[0])
			return a.execute(req)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "Signed number of business days")
	cmd.Flags().StringSliceVar(&req.NonBusinessDays, "non-business", nil, "Non-business weekdays (default from config)")
	addZoneFlags(cmd, &req, true)
	return cmd
}

func (a *app) isBusinessDayCmd() *cobra.Command {
	req := ops.Request{Op: ops.OpIsBusinessDay}

	cmd := &cobra.Command{
		Use:   "is-business-day <instant>",
		Short: "Check whether an instant falls on a business day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Base = a.instantArg(args[0])
			return a.execute(req)
		},
	}

	cmd.Flags().StringSliceVar(&req.NonBusinessDays, "non-business", nil, "Non-business weekdays (default from config)")
	addZoneFlags(cmd, &req, false)
	return cmd
}

// pairCmd builds a command that takes two instants
func (a *app) pairCmd(op, use, short string, setup func(*cobra.Command, *ops.Request)) *cobra.Command {
	req := ops.Request{Op: op}

	cmd := &cobra.Command{
		Use:   use + " <from> <to>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Base = a.instantArg(args[0])
			req.Other = a.instantArg(args[1])
			return a.execute(req)
		},
	}

	if setup != nil {
		setup(cmd, &req)
	}
	return cmd
}

func (a *app) diffCmd() *cobra.Command {
	return a.pairCmd(ops.OpTotals, "diff", "Total days, hours, minutes and seconds between two instants", nil)
}

func (a *app) decomposeCmd() *cobra.Command {
	return a.pairCmd(ops.OpDecompose, "decompose", "Calendar breakdown of the time between two instants",
		func(cmd *cobra.Command, req *ops.Request) {
			addZoneFlags(cmd, req, false)
		})
}

func (a *app) durationCmd() *cobra.Command {
	var maxUnits int
	return a.pairCmd(ops.OpRenderDuration, "duration", "Describe the time between two instants in words",
		func(cmd *cobra.Command, req *ops.Request) {
			addZoneFlags(cmd, req, false)
			cmd.Flags().StringVarP(&req.Verbosity, "verbosity", "V", "", "compact, standard or verbose (default from config)")
			cmd.Flags().IntVarP(&maxUnits, "max-units", "n", 0, "Maximum number of units; 0 shows all (default from config)")
			cmd.PreRun = func(cmd *cobra.Command, args []string) {
				if cmd.Flags().Changed("max-units") {
					req.MaxUnits = &maxUnits
				}
			}
		})
}

// execCmd runs JSON requests read from stdin, one per line, and writes one
// JSON result per line.
func (a *app) execCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec",
		Short: "Run JSON requests from stdin",
		Long: "Reads one JSON request per line, e.g.\n" +
			`  {"op":"add","base":"2025-01-31","delta":{"months":1}}` + "\n" +
			"Supported operations: " + strings.Join(ops.Operations, ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execStream(cmd.InOrStdin())
		},
	}
}

func (a *app) execStream(in io.Reader) error {
	dec := json.NewDecoder(in)
	enc := json.NewEncoder(a.out)

	for {
		var req ops.Request
		if err := dec.Decode(&req); err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("failed to decode request: %w", err)
		}

		if strings.EqualFold(req.Base, "now") {
			req.Base = a.instantArg(req.Base)
		}
		if strings.EqualFold(req.Other, "now") {
			req.Other = a.instantArg(req.Other)
		}

		res, err := a.engine.Execute(req)
		if err != nil {
			if err := enc.Encode(errorResult{Op: req.Op, Kind: dateerr.KindOf(err).String(), Error: err.Error()}); err != nil {
				return err
			}
			continue
		}
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
}

type errorResult struct {
	Op    string `json:"op"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

func (a *app) execute(req ops.Request) error {
	res, err := a.engine.Execute(req)
	if err != nil {
		return err
	}
	return a.print(res)
}
