package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerAcceptsKnownLevels(t *testing.T) {
	require.NoError(t, InitLogger("debug"))
	assert.Equal(t, LogLevelDebug, LogLevel)

	require.NoError(t, InitLogger(""))
	assert.Equal(t, LogLevelInfo, LogLevel)
}

func TestInitLoggerRejectsUnknownLevel(t *testing.T) {
	err := InitLogger("verbose")
	assert.Error(t, err)
}

func TestAcceptLogLevelOrdering(t *testing.T) {
	assert.False(t, acceptLogLevel(LogLevelWarning, LogLevelDebug))
	assert.True(t, acceptLogLevel(LogLevelDebug, LogLevelError))
}
