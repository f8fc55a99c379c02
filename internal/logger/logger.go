// Package logger builds the zap logger used by the command-line tools.
// Library packages never log; they return structured errors and leave
// presentation to the CLI.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much the tools log.
type Options struct {
	Level string // debug, info, warn or error; anything else means info

	// File, when set, adds a size-rotated log file next to console output.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a logger writing to stderr and, when Options.File is set, to a
// rotated log file.
func New(o Options) *zap.Logger {
	lvl := parseLevel(o.Level)

	consoleCfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: " ",
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(os.Stderr), lvl),
	}

	if o.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    defaultInt(o.MaxSizeMB, 20),
			MaxBackups: defaultInt(o.MaxBackups, 3),
			MaxAge:     defaultInt(o.MaxAgeDays, 7),
			Compress:   true,
			LocalTime:  true,
		}

		fileCfg := consoleCfg
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		cores = append(cores,
			zapcore.NewCore(zapcore.NewConsoleEncoder(fileCfg), zapcore.AddSync(fileWriter), lvl))
	}

	return zap.New(zapcore.NewTee(cores...))
}

func defaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
