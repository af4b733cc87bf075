// Package logging sets up the process-wide zap logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the shared logger. It defaults to a no-op logger so packages can log
// before Init runs (mostly in tests).
var L = zap.NewNop()

// Init builds the shared logger. Development mode uses a colored console
// encoder with caller info; production emits JSON. An unknown level falls
// back to info.
func Init(level string, development bool) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if development {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(os.Stderr), lvl)
	opts := []zap.Option{zap.AddCaller()}
	if development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	L = zap.New(core, opts...)
	return L
}

// Sync flushes buffered entries; call it on shutdown.
func Sync() {
	_ = L.Sync()
}
