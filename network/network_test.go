package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	neatmath "github.com/fenwick-labs/neatcore/neat/math"
)

func buildTestNetwork(t *testing.T) *Network {
	t.Helper()
	nodes := []NodeSpec{
		{ID: 0, Kind: Input, ActivationType: neatmath.TanhActivation},
		{ID: 1, Kind: Input, ActivationType: neatmath.TanhActivation},
		{ID: 2, Kind: Bias, ActivationType: neatmath.TanhActivation},
		{ID: 3, Kind: Output, ActivationType: neatmath.TanhActivation},
	}
	links := []LinkSpec{
		{FromID: 0, ToID: 3, Weight: 0},
		{FromID: 1, ToID: 3, Weight: 0},
		{FromID: 2, ToID: 3, Weight: 0},
	}
	net, err := NewNetwork(nodes, links)
	require.NoError(t, err)
	return net
}

func TestActivateZeroWeightsYieldsTanhZero(t *testing.T) {
	net := buildTestNetwork(t)
	require.NoError(t, net.SetInputs([]float64{1, 1}))

	done, err := net.Activate()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 0.0, net.Outputs()[0])
}

func TestFlushResetsNonBiasNodes(t *testing.T) {
	net := buildTestNetwork(t)
	require.NoError(t, net.SetInputs([]float64{1, 1}))
	_, err := net.Activate()
	require.NoError(t, err)

	net.Flush()
	for _, n := range net.Nodes {
		if n.Kind == Bias {
			assert.Equal(t, 1.0, n.Activation)
			assert.True(t, n.Active)
			continue
		}
		if n.Kind == Input {
			continue
		}
		assert.False(t, n.Active)
		assert.Equal(t, 0.0, n.Activation)
	}
}

func TestSetInputsWrongCountErrors(t *testing.T) {
	net := buildTestNetwork(t)
	err := net.SetInputs([]float64{1})
	assert.Error(t, err)
}

func TestCloneCopiesOnlyActivationState(t *testing.T) {
	net := buildTestNetwork(t)
	require.NoError(t, net.SetInputs([]float64{1, 1}))
	_, err := net.Activate()
	require.NoError(t, err)

	clone := net.Clone()
	clone.Nodes[3].Activation = 99
	assert.NotEqual(t, net.Nodes[3].Activation, clone.Nodes[3].Activation)
	assert.Equal(t, net.NodeCount(), clone.NodeCount())
}

func TestNewNetworkRejectsUnknownOutputs(t *testing.T) {
	nodes := []NodeSpec{{ID: 0, Kind: Input}}
	_, err := NewNetwork(nodes, nil)
	assert.Error(t, err)
}

func TestComplexity(t *testing.T) {
	net := buildTestNetwork(t)
	assert.Equal(t, 4+3, net.Complexity())
}
