package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/haldorsen/stackbound/internal/analyzer"
	"github.com/haldorsen/stackbound/internal/diag"
	"github.com/haldorsen/stackbound/internal/palette"
)

// writeTable prints one row per function, sorted by total stack
// descending so the worst offenders lead the report, followed by a
// diagnostics section. No third-party table-rendering library turned up
// anywhere in this codebase's dependency tree, so this leans on
// text/tabwriter the way the standard library itself expects column
// output to be built.
func writeTable(w io.Writer, result *analyzer.Result, color bool) {
	funcs := result.Functions()
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].TotalStack > funcs[j].TotalStack })

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FUNCTION\tADDRESS\tOWN\tTOTAL\tFLAGS")
	for _, f := range funcs {
		flags := functionFlags(f)
		addr := palette.Dim(color, fmt.Sprintf("0x%x", f.Address))
		total := fmt.Sprintf("%d", f.TotalStack)
		if f.TotalIsLowerBound {
			total = palette.Paint(color, diag.SeverityWarning, total+"+")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", f.Name, addr, f.OwnStack, total, flags)
	}
	tw.Flush()

	if len(result.Diagnostics) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "diagnostics:")
	for _, d := range result.Diagnostics {
		fmt.Fprintln(w, " ", palette.Paint(color, d.Kind.Severity(), d.String()))
	}
}

func functionFlags(f analyzer.FunctionResult) string {
	var flags string
	if f.InCycle {
		flags += "cycle "
	}
	if f.External {
		flags += "external "
	}
	return flags
}

type jsonFunction struct {
	Name              string `json:"name"`
	Address           uint64 `json:"address"`
	OwnStack          uint64 `json:"own_stack"`
	TotalStack        uint64 `json:"total_stack"`
	TotalIsLowerBound bool   `json:"total_is_lower_bound"`
	InCycle           bool   `json:"in_cycle"`
	External          bool   `json:"external"`
}

type jsonDiagnostic struct {
	Kind     string `json:"kind"`
	Function string `json:"function"`
	Address  uint64 `json:"address"`
	Target   uint64 `json:"target,omitempty"`
	Message  string `json:"message"`
}

type jsonReport struct {
	Functions   []jsonFunction   `json:"functions"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

func writeJSON(w io.Writer, result *analyzer.Result) error {
	funcs := result.Functions()
	report := jsonReport{
		Functions:   make([]jsonFunction, len(funcs)),
		Diagnostics: make([]jsonDiagnostic, len(result.Diagnostics)),
	}
	for i, f := range funcs {
		report.Functions[i] = jsonFunction{
			Name:              f.Name,
			Address:           f.Address,
			OwnStack:          f.OwnStack,
			TotalStack:        f.TotalStack,
			TotalIsLowerBound: f.TotalIsLowerBound,
			InCycle:           f.InCycle,
			External:          f.External,
		}
	}
	for i, d := range result.Diagnostics {
		report.Diagnostics[i] = jsonDiagnostic{
			Kind:     d.Kind.String(),
			Function: d.Function,
			Address:  d.Address,
			Target:   d.Target,
			Message:  d.String(),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
