package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var (
	log *logrus.Logger

	// logFile is the file opened by the last Init, closed on the next one.
	logFile *os.File
)

// Options configures Init.
type Options struct {
	Level   string
	File    string
	Console bool
	NoColor bool

	// Console output goes here instead of os.Stderr when set.
	Writer io.Writer
}

// Init initializes the logger with the given configuration. A log file
// opened by an earlier Init is closed first.
func Init(opts Options) error {
	if err := Close(); err != nil {
		return err
	}

	l := logrus.New()

	lvl, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   opts.NoColor,
	})

	var writers []io.Writer

	if opts.Console {
		w := opts.Writer
		if w == nil {
			w = os.Stderr
		}
		writers = append(writers, w)
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return err
		}

		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		writers = append(writers, file)
		logFile = file
	}

	switch len(writers) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(writers[0])
	default:
		l.SetOutput(io.MultiWriter(writers...))
	}

	log = l
	return nil
}

// Close releases the log file, if any, and sends further output to stderr.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	if log != nil {
		log.SetOutput(os.Stderr)
	}
	return err
}

// Get returns the logger instance
func Get() *logrus.Logger {
	if log == nil {
		log = logrus.New()
	}
	return log
}

// WithFields returns an entry carrying fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Get().WithFields(fields)
}

func Debugf(format string, args ...interface{}) {
	Get().Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	Get().Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	Get().Warnf(format, args...)
}
