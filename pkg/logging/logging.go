package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance
var Logger *zap.Logger

// Level controls the verbosity of Logger after Setup
var Level = zap.NewAtomicLevelAt(zap.InfoLevel)

// Setup builds the diagnostic logger. Output goes to stderr in console
// encoding so it stays readable next to the feed on stdout.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var err error
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.Sampling = nil
	}
	SetDebug(debug)
	cfg.Level = Level

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	Logger, err = cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return Logger, err
	}

	zap.ReplaceGlobals(Logger)
	return Logger, nil
}

// SetDebug switches the shared level between debug and info.
func SetDebug(debug bool) {
	if debug {
		Level.SetLevel(zap.DebugLevel)
		return
	}
	Level.SetLevel(zap.InfoLevel)
}
