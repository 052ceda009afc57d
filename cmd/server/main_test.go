package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-api/internal/config"
)

func TestConfigureLogger(t *testing.T) {
	var cfg config.Config
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := logrus.New()
	require.NoError(t, configureLogger(logger, cfg))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg.Log.Level = "loud"
	logger = logrus.New()
	err := configureLogger(logger, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
