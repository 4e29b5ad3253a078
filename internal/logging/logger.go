package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	DirPermissions  = 0755
	FilePermissions = 0600
	FileName        = "voiceai.log"
)

// New returns a JSON logger appending to dir/voiceai.log. The terminal belongs to the
// UI, so nothing is ever written to stdout or stderr. The returned closer releases the file.
func New(dir, level string) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(ParseLevel(level))

	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, err
	}

	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, FilePermissions)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, err
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// Nop returns a logger that drops everything.
func Nop() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// ParseLevel falls back to info for empty or unknown levels.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
