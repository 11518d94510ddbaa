// Package wmlog configures the structured logger shared by every
// package in the core, following the teacher's logrus setup
// (store/root.go's log.Info/log.WithFields idiom) instead of the
// standard library's log package.
package wmlog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Configure installs level and dest as the package-wide logrus
// defaults. dest defaults to os.Stderr when nil.
func Configure(level logrus.Level, dest io.Writer) {
	if dest == nil {
		dest = os.Stderr
	}
	logrus.SetOutput(dest)
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// Fields is a re-export of logrus.Fields so callers need not import
// logrus directly for the common case of structured log calls.
type Fields = logrus.Fields

// Get returns the shared logger instance, for code that wants to hold
// on to a *logrus.Logger rather than use the package-level functions.
func Get() *logrus.Logger {
	return logrus.StandardLogger()
}
