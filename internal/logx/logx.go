// Package logx wraps charmbracelet/log with the two extra levels this
// backend's callers expect: Trace (below Debug, for per-ioctl
// chatter) and Critical (above Error, for conditions that force a
// backend shutdown). Every log call site in the module goes through
// here instead of holding its own *log.Logger, so the level plumbing
// and default field set live in one place.
package logx

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Custom levels, registered below DebugLevel and above ErrorLevel so
// they sort correctly against charmbracelet/log's built-in levels.
const (
	TraceLevel    = log.Level(-8)
	CriticalLevel = log.Level(10)
)

var base *log.Logger

func init() {
	base = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	base.SetLevel(levelFromEnv())
}

func levelFromEnv() log.Level {
	return ParseLevel(os.Getenv("KMSDRM_LOG_LEVEL"))
}

// ParseLevel maps a KMSDRM_LOG_LEVEL-style name to a log.Level,
// defaulting to InfoLevel for anything unrecognized (including an
// empty string). Exported for cmd/kmsprobe's --log-level flag.
func ParseLevel(name string) log.Level {
	switch strings.ToUpper(name) {
	case "TRACE":
		return TraceLevel
	case "DEBUG":
		return log.DebugLevel
	case "WARN", "WARNING":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	case "CRITICAL":
		return CriticalLevel
	default:
		return log.InfoLevel
	}
}

// SetLevel overrides the level derived from KMSDRM_LOG_LEVEL, used by
// cmd/kmsprobe to honor its --log-level flag.
func SetLevel(l log.Level) {
	base.SetLevel(l)
}

// With returns a logger scoped to a fixed set of key/value fields
// (e.g. "gpu", "/dev/dri/card0"), so a Backend or Output can carry its
// own identity through every subsequent log call without repeating
// it.
func With(keyvals ...interface{}) *log.Logger {
	return base.With(keyvals...)
}

func Trace(msg interface{}, keyvals ...interface{}) {
	base.Log(TraceLevel, msg, keyvals...)
}

func Debug(msg interface{}, keyvals ...interface{}) {
	base.Debug(msg, keyvals...)
}

func Info(msg interface{}, keyvals ...interface{}) {
	base.Info(msg, keyvals...)
}

func Warn(msg interface{}, keyvals ...interface{}) {
	base.Warn(msg, keyvals...)
}

func Error(msg interface{}, keyvals ...interface{}) {
	base.Error(msg, keyvals...)
}

func Critical(msg interface{}, keyvals ...interface{}) {
	base.Log(CriticalLevel, msg, keyvals...)
}
