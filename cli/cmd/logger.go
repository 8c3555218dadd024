package cmd

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

func newLogger(out io.Writer, config LogConfig, debug bool) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	if strings.EqualFold(config.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if debug {
		logger.SetLevel(logrus.DebugLevel)
		return logger, nil
	}

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	logger.SetLevel(level)

	return logger, nil
}
