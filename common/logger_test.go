package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitLoggerTogglesDebugDiagnostics(t *testing.T) {
	defer InitLogger("warn")

	InitLogger("debug")
	assert.True(t, EnableDebug)

	InitLogger("warn")
	assert.False(t, EnableDebug)
}
