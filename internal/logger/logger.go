package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	L       *zap.Logger
	S       *zap.SugaredLogger
	logFile *os.File
)

// Init initializes the global logger
// Logs are written to ~/.config/depedit/depedit.log
func Init(debug bool) error {
	logPath, err := getLogPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}

	// Open log file, appending across runs
	logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	// Configure encoder
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// Edit rejections and commands are only logged at debug level
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	// Create core that writes to file
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		level,
	)

	// Skip one frame so the caller is the package using the helpers below
	Use(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)))

	S.Infow("logger initialized", "path", logPath, "debug", debug)
	return nil
}

// Use installs l as the global logger. Tests use it with zaptest/observer.
func Use(l *zap.Logger) {
	L = l
	if l == nil {
		S = nil
		return
	}
	S = l.Sugar()
}

// Close flushes and closes the logger
func Close() {
	if L != nil {
		_ = L.Sync()
	}
	Use(nil)
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// getLogPath returns the path to the log file
func getLogPath() (string, error) {
	if v := os.Getenv("DEPEDIT_LOG_FILE"); v != "" {
		return v, nil
	}

	if v := os.Getenv("DEPEDIT_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "depedit.log"), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "depedit", "depedit.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "depedit", "depedit.log"), nil
}

// Convenience functions for common logging patterns

func Debug(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Debugw(msg, keysAndValues...)
	}
}

func Info(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Infow(msg, keysAndValues...)
	}
}

func Warn(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Warnw(msg, keysAndValues...)
	}
}

func Error(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Errorw(msg, keysAndValues...)
	}
}
