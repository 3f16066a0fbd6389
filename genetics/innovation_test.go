package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeSplitInnovationsReusedWithinGeneration(t *testing.T) {
	reg := NewInnovationRegistry(3)
	nextID := 4

	newNode1, in1, out1 := reg.NodeSplitInnovations(0, 3, 0, func() int { return nextID })
	newNode2, in2, out2 := reg.NodeSplitInnovations(0, 3, 0, func() int { return nextID })

	assert.Equal(t, newNode1, newNode2)
	assert.Equal(t, in1, in2)
	assert.Equal(t, out1, out2)
	assert.Equal(t, 4, newNode1)
	assert.Equal(t, int64(3), in1)
	assert.Equal(t, int64(4), out1)
}

func TestNodeSplitInnovationsDistinctForDifferentLinks(t *testing.T) {
	reg := NewInnovationRegistry(0)
	n := 10
	_, in1, _ := reg.NodeSplitInnovations(0, 3, 0, func() int { n++; return n })
	_, in2, _ := reg.NodeSplitInnovations(1, 3, 1, func() int { n++; return n })
	assert.NotEqual(t, in1, in2)
}

func TestLinkAddInnovationReused(t *testing.T) {
	reg := NewInnovationRegistry(0)
	a := reg.LinkAddInnovation(1, 2, false)
	b := reg.LinkAddInnovation(1, 2, false)
	assert.Equal(t, a, b)

	c := reg.LinkAddInnovation(1, 2, true)
	assert.NotEqual(t, a, c)
}
