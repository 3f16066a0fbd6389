package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivateTanhZero(t *testing.T) {
	assert.Equal(t, 0.0, Activate(TanhActivation, 0))
}

func TestActivateUnknownFallsBackToTanh(t *testing.T) {
	assert.Equal(t, Activate(TanhActivation, 1), Activate(ActivationType(99), 1))
}

func TestName(t *testing.T) {
	assert.Equal(t, "tanh", Name(TanhActivation))
	assert.Equal(t, "unknown", Name(ActivationType(99)))
}
