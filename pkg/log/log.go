// Package log wraps go-kit/log with a named context, optional caller
// information, and per-context exclusion: the logging shape used by this
// module's parser and CLI.
package log

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	klog "github.com/go-kit/kit/log"
)

// Used for debug dumping only, never for the stable Value renderer.
var spd = spew.ConfigState{ContinueOnMethod: true, Indent: "\t", MaxDepth: 0}

// Config configures a Logger.
type Config struct {
	Name      string      // Shows up in log output as field "name".
	Logger    klog.Logger // The underlying go-kit logger.
	Caller    bool        // Include caller information in log output.
	CallDepth int         // Call stack depth to report when Caller is set.
	Excludes  []string    // Named contexts to silently drop.
}

// Std returns a Config that logs logfmt lines to stderr under the given
// name context.
func Std(name string, excludes ...string) Config {
	return Config{
		Name:     name,
		Logger:   klog.NewLogfmtLogger(klog.NewSyncWriter(os.Stderr)),
		Excludes: excludes,
	}
}

// Logger implements a small structured-logging facade over go-kit/log.
type Logger struct {
	name      string
	Caller    bool
	CallDepth int
	log       klog.Logger
	excludes  []string
}

// NewLogger wraps a logger with a name context and caller information. If
// the named context is in the excludes slice, all logging to it is dropped.
func NewLogger(conf Config) Logger {
	return Logger{
		name:      conf.Name,
		Caller:    conf.Caller,
		CallDepth: conf.CallDepth,
		log:       conf.Logger,
		excludes:  conf.Excludes,
	}
}

func (l Logger) isExcluded() bool {
	for _, v := range l.excludes {
		if v == l.name {
			return true
		}
	}
	return false
}

// StdLogger returns the wrapped go-kit logger.
func (l Logger) StdLogger() klog.Logger { return l.log }

// Msg logs a message to the log context.
func (l Logger) Msg(message string) error {
	if l.isExcluded() {
		return nil
	}
	logr := l.withPrefix()
	return logr.Log("msg", message)
}

// Msgr logs a message with additional key/value fields.
func (l Logger) Msgr(message string, keyvals ...interface{}) error {
	if l.isExcluded() {
		return nil
	}
	logr := klog.WithPrefix(l.log, "name", l.name, "msg", message)
	if l.Caller {
		logr = klog.WithPrefix(l.log, "name", l.name, "caller", klog.Caller(l.CallDepth+2), "msg", message)
	}
	return logr.Log(keyvals...)
}

// Err logs an error to the log context.
func (l Logger) Err(err error) error {
	if l.isExcluded() {
		return nil
	}
	return l.withPrefix().Log("error", err.Error())
}

// Log satisfies the go-kit Logger interface.
func (l Logger) Log(keyvals ...interface{}) error {
	if l.isExcluded() {
		return nil
	}
	return l.withPrefix().Log(keyvals...)
}

func (l Logger) withPrefix() klog.Logger {
	if l.Caller {
		return klog.WithPrefix(l.log, "name", l.name, "caller", klog.Caller(l.CallDepth+2))
	}
	return klog.WithPrefix(l.log, "name", l.name)
}

// Dump pretty-prints v into the "obj" field of a "dump" message. Intended
// for interactive debugging, never for production diagnostics.
func (l Logger) Dump(v interface{}) {
	WithCallDepth(l, l.CallDepth+1).Msgr("dump", "obj", spd.Sdump(v))
}

// WithCallDepth returns a copy of l reporting callers callDepth frames up.
func WithCallDepth(l Logger, callDepth int) Logger {
	return NewLogger(Config{
		Name:      l.name,
		Logger:    l.log,
		Caller:    true,
		CallDepth: callDepth,
		Excludes:  l.excludes,
	})
}
