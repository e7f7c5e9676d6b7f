// Package console is a logger backend printing to stderr through
// charmbracelet/log.
package console

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// ConsoleLogger implements logger.Instance.
type ConsoleLogger struct {
	logger *log.Logger
}

// ConsoleLoggerParams configures a ConsoleLogger.
type ConsoleLoggerParams struct {
	Debug  bool
	Prefix string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// NewConsoleLogger creates a console logger.
func NewConsoleLogger(params ConsoleLoggerParams) *ConsoleLogger {
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	out := params.Output
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleLogger{
		logger: log.NewWithOptions(out, log.Options{
			ReportTimestamp: true,
			Level:           level,
			Prefix:          params.Prefix,
		}),
	}
}

func (c *ConsoleLogger) Debug(message string, keyvals ...any) { c.logger.Debug(message, keyvals...) }
func (c *ConsoleLogger) Info(message string, keyvals ...any)  { c.logger.Info(message, keyvals...) }
func (c *ConsoleLogger) Warn(message string, keyvals ...any)  { c.logger.Warn(message, keyvals...) }
func (c *ConsoleLogger) Error(message string, keyvals ...any) { c.logger.Error(message, keyvals...) }
func (c *ConsoleLogger) Fatal(message string, keyvals ...any) { c.logger.Fatal(message, keyvals...) }
