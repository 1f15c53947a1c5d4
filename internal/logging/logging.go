package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// NewSlog is the server logger: colored text while developing, JSON
// otherwise.
func NewSlog(w io.Writer, development bool) *slog.Logger {
	if development {
		return slog.New(
			tint.NewHandler(w, &tint.Options{Level: slog.LevelDebug}),
		)
	}
	return slog.New(slog.NewJSONHandler(w, nil))
}

// SetupLogrus configures log for a process. With a file set, entries go to a
// rotated file instead of stderr.
func SetupLogrus(log *logrus.Logger, development bool, file string) error {
	logLevel := logrus.InfoLevel
	if development {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)

	if file == "" {
		log.SetOutput(os.Stderr)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: development})
		return nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   file,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.SetOutput(io.Discard)
	log.AddHook(hook)
	return nil
}
