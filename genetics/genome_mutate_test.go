package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutateAddNodeSplitsFirstEnabledLink(t *testing.T) {
	g := NewInitialGenome(1, 2, 1)
	registry := NewInnovationRegistry(g.NextInnovation())
	rng := &scriptedRand{floats: []float64{0.0}, ints: []int{0}}
	settings := MutationSettings{NewNodeProb: 1.0}
	nextID := g.NextNodeID()
	nextNodeID := func() int { id := nextID; nextID++; return id }

	require.NoError(t, Mutate(g, settings, rng, registry, nextNodeID))

	require.Len(t, g.Nodes, 5)
	assert.Equal(t, Node{ID: 4, Kind: g.Nodes[4].Kind}, g.Nodes[4])

	require.Len(t, g.Links, 5)
	assert.False(t, g.Links[0].Enabled)

	var in, out *Link
	for i := range g.Links {
		if g.Links[i].Innovation == 3 {
			in = &g.Links[i]
		}
		if g.Links[i].Innovation == 4 {
			out = &g.Links[i]
		}
	}
	require.NotNil(t, in)
	require.NotNil(t, out)
	assert.Equal(t, 0, in.FromID)
	assert.Equal(t, 4, in.ToID)
	assert.Equal(t, 1.0, in.Weight)
	assert.Equal(t, 4, out.FromID)
	assert.Equal(t, 3, out.ToID)
	assert.Equal(t, 0.0, out.Weight)
}

func TestMutateAddNodeSameSplitTwiceReusesInnovation(t *testing.T) {
	registry := NewInnovationRegistry(3)
	nextID := 3

	g1 := NewInitialGenome(1, 2, 1)
	old := g1.Links[0]
	newNode1, in1, out1 := registry.NodeSplitInnovations(old.FromID, old.ToID, old.Innovation, func() int { nextID++; return nextID })

	g2 := NewInitialGenome(2, 2, 1)
	old2 := g2.Links[0]
	newNode2, in2, out2 := registry.NodeSplitInnovations(old2.FromID, old2.ToID, old2.Innovation, func() int { nextID++; return nextID })

	assert.Equal(t, newNode1, newNode2)
	assert.Equal(t, in1, in2)
	assert.Equal(t, out1, out2)
}

func TestMutateAddLinkRejectsExistingLink(t *testing.T) {
	g := NewInitialGenome(1, 2, 1)
	registry := NewInnovationRegistry(g.NextInnovation())
	// force add-link branch, then always propose the existing (0, 3) pair.
	rng := &scriptedRand{floats: []float64{1.0, 0.0, 1.0}, ints: []int{0, 3}}
	settings := MutationSettings{NewNodeProb: 0, NewLinkProb: 1.0, NewLinkTries: 1}
	nextID := g.NextNodeID()
	nextNodeID := func() int { id := nextID; nextID++; return id }

	require.NoError(t, Mutate(g, settings, rng, registry, nextNodeID))
	assert.Len(t, g.Links, 3)
}

func TestWeightClamp(t *testing.T) {
	assert.Equal(t, 8.0, clampWeight(100))
	assert.Equal(t, -8.0, clampWeight(-100))
	assert.Equal(t, 1.5, clampWeight(1.5))
}
