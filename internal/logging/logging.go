// Package logging is the ambient logging hook used by the rest of the
// tool. It follows the same shape as the logger the disassembly engine
// this project grew out of used: a narrow interface, a no-op default, and
// package-level setters rather than threading a logger through every call.
package logging

import "fmt"

// Logger receives one-line progress and diagnostic messages.
type Logger interface {
	Log(msg string)
}

type discardLogger struct{}

func (discardLogger) Log(string) {}

var (
	logger    Logger = discardLogger{}
	logEnable        = false
)

// SetLogger installs the Logger used by the rest of the package tree. A
// nil Logger restores the default no-op logger.
func SetLogger(impl Logger) {
	if impl == nil {
		logger = discardLogger{}
		return
	}
	logger = impl
}

// SetLogEnable turns logging on or off without disturbing which Logger is
// installed.
func SetLogEnable(enable bool) {
	logEnable = enable
}

// Logf formats and logs a message if logging is enabled.
func Logf(format string, args ...interface{}) {
	if !logEnable {
		return
	}
	logger.Log(fmt.Sprintf(format, args...))
}
