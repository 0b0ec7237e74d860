package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// toZapLevel maps a level name to zap; unknown names mean info.
func toZapLevel(level string) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel, "warning":
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	if format == FormatJSON {
		cfg.TimeKey = "ts"
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// New builds a logger from opts without touching the process-wide instance.
func New(opts Options) *Logger {
	opts = opts.withDefaults()

	var ws zapcore.WriteSyncer = os.Stdout
	if opts.Output != nil {
		ws = zapcore.AddSync(opts.Output)
	}
	core := zapcore.NewCore(newEncoder(opts.Format), zapcore.Lock(ws), zap.NewAtomicLevelAt(toZapLevel(opts.Level)))

	return &Logger{
		SugaredLogger: zap.New(core, zap.AddCaller()).Sugar().Named(opts.Name),
	}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
