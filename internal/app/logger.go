package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/adanyl0v/go-taskboard/internal/config"
)

var (
	globalLogger zerolog.Logger
	logOutput    io.Writer = os.Stdout
)

func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	globalLogger = zerolog.New(logOutput).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()

	globalLogger.Info().Msg("initialized default logger")
}

// UseStderrForLogs keeps stdout free for command output.
func UseStderrForLogs() {
	logOutput = os.Stderr
	globalLogger = globalLogger.Output(logOutput)
}

func MustInitApplicationLogger() {
	cfg := config.Global()

	w := logOutput
	switch cfg.Env {
	case config.EnvDev:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case config.EnvProd:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)

		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = logOutput
		w = consoleWriter
	default:
		globalLogger.Error().
			Str("env", cfg.Env).
			Msg("unknown env")
		panic(fmt.Errorf("unknown env: %s", cfg.Env))
	}

	if cfg.Log.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
		}
		w = zerolog.MultiLevelWriter(w, fileWriter)
	}

	globalLogger = globalLogger.Output(w)
	globalLogger.Info().
		Str("log_file", cfg.Log.File).
		Msg("initialized application logger")
}
