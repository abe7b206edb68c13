package utils

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

const DefaultAssertMsg = "ERROR!"

// AlwaysAssert terminates the process with msg if isExpressionTrue is false.
// It is the only fail-fast check in the core and is meant for setup code,
// never for per-cell kernel bodies. Termination goes through the standard
// logrus logger, so its ExitFunc decides how the process ends.
func AlwaysAssert(isExpressionTrue bool, msg ...string) {
	if isExpressionTrue {
		return
	}
	message := DefaultAssertMsg
	if len(msg) != 0 && len(msg[0]) != 0 {
		message = msg[0]
	}
	logrus.WithField("stack", string(debug.Stack())).Fatal(message)
}
