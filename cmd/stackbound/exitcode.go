package main

import "github.com/haldorsen/stackbound/internal/diag"

// Exit code policy lives entirely here, outside the analyzer core: the
// core never decides how worrying its own diagnostics are to a calling
// script, it just reports them.
const (
	exitClean         = 0
	exitWarnings      = 1
	exitErrors        = 2
	exitUsage         = 86
	exitInternalError = 3
)

func exitCodeFor(diags diag.List) int {
	switch diags.WorstSeverity() {
	case diag.SeverityError:
		return exitErrors
	case diag.SeverityWarning:
		return exitWarnings
	default:
		return exitClean
	}
}
