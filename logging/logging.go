// Package logging holds the process wide logger shared by the geokernel packages.
//
// The logger is a zap SugaredLogger swapped atomically, so SetLogger and
// SetVerbosityLevel may be called while other goroutines are logging.
package logging

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// VerbosityLevel orders log output from silent to most verbose.
type VerbosityLevel int

const (
	VerbosityOff VerbosityLevel = iota
	VerbosityFatal
	VerbosityError
	VerbosityWarning
	VerbosityInfo
	VerbosityDebug
)

// offLevel is above every level zap emits, which silences the logger.
const offLevel = zapcore.FatalLevel + 1

var (
	level     = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	loggerPtr atomic.Pointer[zap.SugaredLogger]
)

func init() {
	loggerPtr.Store(newDefaultLogger())
}

func newDefaultLogger() *zap.SugaredLogger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), level)

	return zap.New(core).Named("geokernel").Sugar()
}

// Logger returns the current logger.
func Logger() *zap.SugaredLogger {
	return loggerPtr.Load()
}

// SetLogger replaces the logger. The verbosity level set with SetVerbosityLevel
// still filters its output. Pass nil to restore the default stderr logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		loggerPtr.Store(newDefaultLogger())
		return
	}
	loggerPtr.Store(l.WithOptions(zap.IncreaseLevel(level)).Sugar())
}

// SetVerbosityLevel changes which messages are emitted.
func SetVerbosityLevel(v VerbosityLevel) {
	level.SetLevel(toZapLevel(v))
}

// GetVerbosityLevel returns the current verbosity level.
func GetVerbosityLevel() VerbosityLevel {
	switch level.Level() {
	case zapcore.DebugLevel:
		return VerbosityDebug
	case zapcore.InfoLevel:
		return VerbosityInfo
	case zapcore.WarnLevel:
		return VerbosityWarning
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel:
		return VerbosityError
	case zapcore.FatalLevel:
		return VerbosityFatal
	default:
		return VerbosityOff
	}
}

func toZapLevel(v VerbosityLevel) zapcore.Level {
	switch {
	case v <= VerbosityOff:
		return offLevel
	case v == VerbosityFatal:
		return zapcore.FatalLevel
	case v == VerbosityError:
		return zapcore.ErrorLevel
	case v == VerbosityWarning:
		return zapcore.WarnLevel
	case v == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// String returns the lower case name of the level.
func (v VerbosityLevel) String() string {
	switch v {
	case VerbosityOff:
		return "off"
	case VerbosityFatal:
		return "fatal"
	case VerbosityError:
		return "error"
	case VerbosityWarning:
		return "warning"
	case VerbosityInfo:
		return "info"
	case VerbosityDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseVerbosityLevel is the inverse of String.
func ParseVerbosityLevel(s string) (VerbosityLevel, bool) {
	for v := VerbosityOff; v <= VerbosityDebug; v++ {
		if v.String() == s {
			return v, true
		}
	}
	return VerbosityInfo, false
}
