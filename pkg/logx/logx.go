package logx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

type Config struct {
	Level                string // debug|info|warn|error
	FilePath             string // e.g. "logs/giftcards_{start}.log"; empty disables the file
	ConsoleOnly          bool
	HideSecretsInConsole bool // redact key material on the console
}

var StartTime = time.Now()

var (
	global  = zap.NewNop()
	sugar   = global.Sugar()
	fileOut *os.File
)

// Init replaces the global logger. Until it is called logging is a no-op.
func Init(cfg Config) error {
	level := parseLevel(cfg.Level)

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "lvl",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	consoleEncCfg := encCfg
	consoleEncCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if term.IsTerminal(int(os.Stdout.Fd())) {
		consoleEncCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	fileEncCfg := encCfg
	fileEncCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncCfg), zapcore.Lock(os.Stdout), level)
	if cfg.HideSecretsInConsole {
		consoleCore = newMaskingCore(consoleCore)
	}
	cores := []zapcore.Core{consoleCore}

	if cfg.FilePath != "" && !cfg.ConsoleOnly {
		resolved := resolvePath(cfg.FilePath)
		if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
			return fmt.Errorf("create logs dir: %w", err)
		}
		f, err := os.OpenFile(resolved, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		fileOut = f
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEncCfg), zapcore.AddSync(f), level))
	}

	logger := zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.PanicLevel),
	)
	zap.ReplaceGlobals(logger)

	global = logger
	sugar = logger.Sugar()
	return nil
}

// Close flushes and closes the log file, if any.
func Close() {
	_ = global.Sync()
	if fileOut != nil {
		_ = fileOut.Sync()
		_ = fileOut.Close()
		fileOut = nil
	}
}

func S() *zap.SugaredLogger { return sugar }

func With(name string) *zap.SugaredLogger { return sugar.Named(name) }

func resolvePath(tmpl string) string {
	return strings.NewReplacer(
		"{start}", StartTime.Format("2006-01-02_15-04-05"),
		"{pid}", fmt.Sprintf("%d", os.Getpid()),
	).Replace(tmpl)
}

func parseLevel(lvl string) zapcore.LevelEnabler {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error", "err":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
