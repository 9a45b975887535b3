package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Levels accepted by New.
const (
	LevelError = "error"
	LevelInfo  = "info"
	LevelDebug = "debug"
)

// New returns a logr.Logger writing console-encoded zap output to w. Check
// output goes to stdout, so w is normally stderr.
func New(w io.Writer, level string) (logr.Logger, error) {
	var lvl zapcore.Level
	switch strings.ToLower(level) {
	case LevelError, "":
		lvl = zapcore.ErrorLevel
	case LevelInfo:
		lvl = zapcore.InfoLevel
	case LevelDebug:
		// logr V(1) maps to zap level -1
		lvl = zapcore.DebugLevel
	default:
		return logr.Discard(), fmt.Errorf("unsupported log level %q (want %s|%s|%s)", level, LevelError, LevelInfo, LevelDebug)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(lvl),
	)
	return zapr.NewLogger(zap.New(core)), nil
}
