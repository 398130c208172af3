/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package flogging provides named loggers for the gateway client. Log output
// uses logfmt encoding and is written to standard error. The active level is
// read from the FABRIC_LOGGING_SPEC environment variable, defaulting to info.
package flogging

import (
	"os"
	"strings"
	"sync"
	"time"

	logfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once sync.Once
	root *zap.Logger
)

// MustGetLogger returns a named logger, creating the logging infrastructure on
// first use.
func MustGetLogger(name string) *zap.SugaredLogger {
	once.Do(initialize)
	return root.Named(name).Sugar()
}

func initialize() {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "name",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format(time.RFC3339Nano))
		},
	}

	core := zapcore.NewCore(
		logfmt.NewEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		levelFromSpec(os.Getenv("FABRIC_LOGGING_SPEC")),
	)
	root = zap.New(core)
}

func levelFromSpec(spec string) zapcore.Level {
	switch strings.ToLower(spec) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
