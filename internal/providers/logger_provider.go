package providers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"rundash/internal/structures"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type TypeEnum string

const (
	TypeApp   TypeEnum = "app"
	TypeFetch TypeEnum = "fetch"
	TypeHttp  TypeEnum = "http"
)

const logFileName = "rundash.log"

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	log  zerolog.Logger
	file *lumberjack.Logger
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.log.Error().Str("type", string(t)).Msgf(format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.log.Warn().Str("type", string(t)).Msgf(format, args...)
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.log.Debug().Str("type", string(t)).Msgf(format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.log.Info().Str("type", string(t)).Msgf(format, args...)
}

func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.log.Fatal().Str("type", string(t)).Msgf(format, args...)
}

func (l *LogProvider) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}

// NewLogProvider writes to stderr (console format) and, when a log directory is
// configured, to a size-rotated file inside it. The directory must already exist.
func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", conf.Logger.Level, err)
	}

	var writers []io.Writer
	if conf.Logger.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	provider := &LogProvider{}
	if conf.Logger.Dir != "" {
		info, err := os.Stat(conf.Logger.Dir)
		if err != nil {
			return nil, fmt.Errorf("log directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("log directory: %s is not a directory", conf.Logger.Dir)
		}
		provider.file = &lumberjack.Logger{
			Filename:   filepath.Join(conf.Logger.Dir, logFileName),
			MaxSize:    conf.Logger.MaxSize,
			MaxBackups: conf.Logger.MaxBackups,
			MaxAge:     conf.Logger.MaxAge,
			Compress:   conf.Logger.Compress,
		}
		writers = append(writers, provider.file)
	}

	var out io.Writer = io.Discard
	if len(writers) > 0 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	provider.log = zerolog.New(out).Level(level).With().Timestamp().Str("app", conf.AppName).Logger()
	return provider, nil
}
