// Package logger builds the zap logger shared by the CLI and MCP server.
//
// Console output goes to stderr so reports on stdout stay machine readable.
// When a log file is configured, the same events are also written as JSON
// to a file rotated by lumberjack.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level and sinks.
type Options struct {
	Level string    // debug, info, warn, error; empty means warn
	File  string    // optional JSON log file
	Out   io.Writer // console sink; nil means os.Stderr
}

// New returns a sugared logger for opts.
func New(opts Options) (*zap.SugaredLogger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(out), level),
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, err
		}
		fileSink := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    20, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(fileSink), level))
	}

	return zap.New(zapcore.NewTee(cores...)).Sugar(), nil
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.WarnLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return l, err
	}
	return l, nil
}
