// Package logging builds the daemon's logrus logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures New.
type Options struct {
	Level  string
	Format string
	Out    io.Writer
}

// New returns a logger writing single-line entries to opts.Out.
func New(opts Options) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	log := logrus.New()
	log.SetLevel(level)
	if opts.Out != nil {
		log.SetOutput(opts.Out)
	}

	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			DisableQuote:     true,
			QuoteEmptyFields: true,
		})
	case FormatJSON:
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q (want %s or %s)", opts.Format, FormatText, FormatJSON)
	}

	return log, nil
}
