package logger

import (
	"io"
	"strings"
	"sync"
)

// Log levels accepted in Options.Level.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings accepted in Options.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options describes the process logger. Zero values fall back to info level, console
// output on stdout and the name "authgate".
type Options struct {
	Level  string
	Format string
	Name   string
	Output io.Writer
}

func (o Options) withDefaults() Options {
	o.Level = strings.ToLower(strings.TrimSpace(o.Level))
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	if o.Format != FormatJSON {
		o.Format = FormatConsole
	}
	if o.Name == "" {
		o.Name = "authgate"
	}
	return o
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process logger. The first call fixes its options; later calls
// return the same instance whatever they pass.
func Get(opts Options) *Logger {
	once.Do(func() {
		globalLogger = New(opts)
	})
	return globalLogger
}
