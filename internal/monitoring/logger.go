// Package monitoring holds the module's pluggable diagnostic logger.
package monitoring

import "log"

// Logf emits a diagnostic line. It defaults to log.Printf; callers that
// embed this library in a per-cycle planning loop typically redirect or
// mute it via SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger swaps the package logger. A nil argument installs a no-op
// logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
