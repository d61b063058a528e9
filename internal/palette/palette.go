// Package palette maps diagnostic severities onto the ANSI escape codes
// used to color terminal reports. No color library turned up anywhere in
// this project's dependency tree, so this follows the same shape as the
// codebase's other named lookup tables (its NES mapper and palette
// tables): a map literal plus a lookup function with a safe fallback.
package palette

import (
	"fmt"

	"github.com/haldorsen/stackbound/internal/diag"
)

const (
	reset  = "\x1b[0m"
	red    = "\x1b[31m"
	yellow = "\x1b[33m"
	cyan   = "\x1b[36m"
	gray   = "\x1b[90m"
)

var severityColor = map[diag.Severity]string{
	diag.SeverityInfo:    cyan,
	diag.SeverityWarning: yellow,
	diag.SeverityError:   red,
}

// Color returns the ANSI escape code for a severity, or the reset code if
// the severity is unrecognized.
func Color(s diag.Severity) string {
	if c, ok := severityColor[s]; ok {
		return c
	}
	return reset
}

// Paint wraps text in the color for severity s, if enabled is true.
// Disabling color is a no-op pass-through rather than a second code path,
// so callers never have to branch on it themselves.
func Paint(enabled bool, s diag.Severity, text string) string {
	if !enabled {
		return text
	}
	return fmt.Sprintf("%s%s%s", Color(s), text, reset)
}

// Dim renders text in the low-emphasis gray used for addresses and other
// incidental detail in a report.
func Dim(enabled bool, text string) string {
	if !enabled {
		return text
	}
	return fmt.Sprintf("%s%s%s", gray, text, reset)
}
