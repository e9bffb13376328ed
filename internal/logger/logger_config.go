package logger

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/mini-maxit/acick/internal/workspace"
	"github.com/mini-maxit/acick/pkg/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	timeKey   = "time"
	levelKey  = "level"
	sourceKey = "source"
	msgKey    = "msg"
)

var (
	sugarLogger *zap.SugaredLogger
	mu          sync.Mutex
	debug       bool
)

// SetDebug lowers the level of both cores to debug. It must be called before the first logger is created.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debug = enabled
	if sugarLogger != nil {
		_ = sugarLogger.Sync()
		sugarLogger = nil
	}
}

// getLogPath returns the absolute path to the log file in the data directory.
func getLogPath() string {
	if logDir := os.Getenv(constants.EnvLogDir); logDir != "" {
		if abs, err := workspace.FromShellPath(logDir); err == nil {
			return abs.Join(constants.LogFileName).String()
		}
	}
	dataDir, err := workspace.DataDir()
	if err != nil {
		return filepath.Join(os.TempDir(), constants.AppName, constants.LogDirName, constants.LogFileName)
	}
	return dataDir.Join(constants.LogDirName).Join(constants.LogFileName).String()
}

func initializeLogger() {
	logPath := getLogPath()

	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		logPath = filepath.Join(os.TempDir(), constants.LogFileName)
	}

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
		LocalTime:  true,
	})

	stdWriter := zapcore.AddSync(os.Stderr)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        timeKey,
		LevelKey:       levelKey,
		NameKey:        sourceKey,
		MessageKey:     msgKey,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	fileLevel, stdLevel := zap.InfoLevel, zap.WarnLevel
	if debug {
		fileLevel, stdLevel = zap.DebugLevel, zap.DebugLevel
	}

	fileCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		w,
		fileLevel,
	)

	stdCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		stdWriter,
		stdLevel,
	)

	core := zapcore.NewTee(fileCore, stdCore)

	log := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	sugarLogger = log.Sugar()
}

// NewNamedLogger creates a new named SugaredLogger for a given component.
func NewNamedLogger(name string) *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if sugarLogger == nil {
		initializeLogger()
	}
	return sugarLogger.Named(name)
}

// Sync flushes buffered log entries.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if sugarLogger != nil {
		_ = sugarLogger.Sync()
	}
}
