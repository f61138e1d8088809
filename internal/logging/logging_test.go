package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel_RecognizesAllFourNames(t *testing.T) {
	assert.Equal(t, -4, int(parseLevel("debug")))
	assert.Equal(t, 0, int(parseLevel("info")))
	assert.Equal(t, 4, int(parseLevel("warn")))
	assert.Equal(t, 8, int(parseLevel("error")))
}

func TestParseLevel_DefaultsToInfoForUnknownValue(t *testing.T) {
	assert.Equal(t, 0, int(parseLevel("")))
	assert.Equal(t, 0, int(parseLevel("verbose")))
}

func TestNew_BuildsAUsableLoggerInBothModes(t *testing.T) {
	jsonLogger := New(true)
	assert.NotNil(t, jsonLogger)
	jsonLogger.Info("test message")

	textLogger := New(false)
	assert.NotNil(t, textLogger)
	textLogger.Info("test message")
}

func TestLogInternal_ReturnsANonEmptyCorrelationID(t *testing.T) {
	logger := New(true)
	id := LogInternal(context.Background(), logger, "something broke", assertError{})
	assert.NotEmpty(t, id)
}

type assertError struct{}

func (assertError) Error() string { return "boom" }
