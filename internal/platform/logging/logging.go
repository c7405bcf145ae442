package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

type Options struct {
	// File receives rotated logs. Empty disables the file sink.
	File  string
	Level string
	// Also write to stderr. Interactive sessions leave this off so log lines
	// never interleave with prompts.
	Stderr bool
}

// Setup configures the standard logrus logger and returns a closer for the file sink.
func Setup(opts Options) (io.Closer, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logging setup: %w", err)
		}
	}

	var writers []io.Writer
	var rotator *lumberjack.Logger
	if opts.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 7,
			MaxAge:     7, // days
			Compress:   true,
		}
		writers = append(writers, rotator)
	}
	if opts.Stderr {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		logrus.SetOutput(io.Discard)
	case 1:
		logrus.SetOutput(writers[0])
	default:
		logrus.SetOutput(io.MultiWriter(writers...))
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetLevel(level)

	if rotator == nil {
		return nopCloser{}, nil
	}
	return rotator, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
