// Package logger configures the process-wide loggers. Op carries operational
// logs on stderr; User carries clean user-facing output on stdout. Library
// packages receive their data already loaded and stay logger-free; logging
// happens at the edges (commands, fetcher, dev server).
package logger

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	// Op is the operational logger: timestamps, levels, fields, stderr.
	Op *logrus.Logger

	// User is the user-facing logger: plain messages on stdout.
	User *logrus.Logger
)

func init() {
	Op = logrus.New()
	Op.SetOutput(os.Stderr)
	Op.SetLevel(logrus.InfoLevel)

	User = logrus.New()
	User.SetOutput(os.Stdout)
	User.SetLevel(logrus.InfoLevel)
	User.SetFormatter(&plainFormatter{})
}

// Setup applies the CLI logging flags. verbose enables debug logs, jsonLogs
// switches the operational stream to JSON for automation, quiet suppresses
// everything below warnings on both streams.
func Setup(verbose bool, jsonLogs bool, quiet bool) {
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	if quiet {
		level = logrus.WarnLevel
	}
	Op.SetLevel(level)
	User.SetLevel(level)

	if jsonLogs {
		Op.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	Op.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   isTerminal(os.Stderr),
		DisableColors: !isTerminal(os.Stderr),
	})
}

// SetOutput redirects both streams; tests use this to capture output.
func SetOutput(w io.Writer) {
	Op.SetOutput(w)
	User.SetOutput(w)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// plainFormatter prints just the message, newline-terminated.
type plainFormatter struct{}

func (f *plainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return append([]byte(entry.Message), '\n'), nil
}
