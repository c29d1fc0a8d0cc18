// Package logging sets up the process-wide logrus logger, in the same
// style as the teacher lineage's "grab logrus.StandardLogger(), configure
// it once at startup" pattern in cli/cmd/up.go.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

const defaultLogPath = "./safe-sql.log"

// New configures and returns a FieldLogger writing to path (or
// defaultLogPath if empty). If the file cannot be opened, it falls back
// to stdout rather than failing the invocation over a logging problem.
func New(path string) logrus.FieldLogger {
	logger := logrus.StandardLogger()
	logger.SetLevel(logrus.InfoLevel)

	if path == "" {
		path = defaultLogPath
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.WithError(err).Warnf("could not open log file %s, logging to stdout", path)
		logger.SetOutput(os.Stdout)
		return logger
	}
	logger.SetOutput(f)
	return logger
}
