package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxActivationDepthDirectConnection(t *testing.T) {
	net := buildTestNetwork(t)
	depth, err := net.MaxActivationDepth()
	require.NoError(t, err)
	assert.Equal(t, 1, depth)
}

func TestMaxActivationDepthThroughHiddenNode(t *testing.T) {
	nodes := []NodeSpec{
		{ID: 0, Kind: Input},
		{ID: 1, Kind: Hidden},
		{ID: 2, Kind: Output},
	}
	links := []LinkSpec{
		{FromID: 0, ToID: 1, Weight: 1},
		{FromID: 1, ToID: 2, Weight: 1},
	}
	net, err := NewNetwork(nodes, links)
	require.NoError(t, err)

	depth, err := net.MaxActivationDepth()
	require.NoError(t, err)
	assert.Equal(t, 2, depth)
}
