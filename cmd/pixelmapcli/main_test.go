package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestResolveLevelPrefersExplicitVerbosity(t *testing.T) {
	assert.Equal(t, logrus.ErrorLevel, resolveLevel("error", true, false))
}

func TestResolveLevelVerboseFallback(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, resolveLevel("", true, false))
}

func TestResolveLevelQuietFallback(t *testing.T) {
	assert.Equal(t, logrus.ErrorLevel, resolveLevel("", false, true))
}

func TestResolveLevelDefault(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, resolveLevel("", false, false))
}

func TestFdLimitIsPositive(t *testing.T) {
	assert.Greater(t, fdLimit(), 0)
}
