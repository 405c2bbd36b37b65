package providers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Abdualzizsm/telegram-bot/internal/logging"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
)

// TypeEnum and Logger live in internal/logging so leaf packages can log
// without importing providers; the aliases keep the providers API unchanged.
type TypeEnum = logging.TypeEnum

const (
	TypeApp      = logging.TypeApp
	TypeBot      = logging.TypeBot
	TypeDownload = logging.TypeDownload
	TypeLedger   = logging.TypeLedger
	TypeWeb      = logging.TypeWeb
)

type Logger = logging.Logger

type LogProvider struct {
	log   zerolog.Logger
	files []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("unknown log level %q: %w", conf.Logger.Level, err)
	}

	file, err := os.OpenFile(
		filepath.Join(conf.Logger.Dir, conf.AppName+".log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		os.FileMode(conf.Logger.Mode),
	)
	if err != nil {
		return nil, err
	}

	var out io.Writer = file
	if conf.Debug {
		out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log := zerolog.New(out).Level(level).With().Timestamp().Logger()

	return &LogProvider{log: log, files: []*os.File{file}}, nil
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.log.Error().Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.log.Warn().Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.log.Debug().Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.log.Info().Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.log.Fatal().Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Close() {
	for _, f := range l.files {
		_ = f.Close()
	}
}
