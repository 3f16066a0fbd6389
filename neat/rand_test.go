package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedUniformBounded(t *testing.T) {
	rs := NewRandomSource(1)
	for i := 0; i < 1000; i++ {
		v := SignedUniform(rs, 2.0)
		assert.True(t, v > -2.0 && v < 2.0)
	}
}

func TestChooseIndexInRange(t *testing.T) {
	rs := NewRandomSource(1)
	for i := 0; i < 100; i++ {
		idx := rs.ChooseIndex(5)
		assert.True(t, idx >= 0 && idx < 5)
	}
}

func TestNewEntropyRandomSourceProducesUsableSource(t *testing.T) {
	rs := NewEntropyRandomSource()
	v := rs.Float64()
	assert.True(t, v >= 0 && v < 1)
}
