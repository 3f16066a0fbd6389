package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-labs/neatcore/network"
)

func TestNewInitialGenome(t *testing.T) {
	g := NewInitialGenome(1, 2, 1)

	require.Len(t, g.Nodes, 4)
	assert.Equal(t, Node{ID: 0, Kind: network.Input}, g.Nodes[0])
	assert.Equal(t, Node{ID: 1, Kind: network.Input}, g.Nodes[1])
	assert.Equal(t, Node{ID: 2, Kind: network.Bias}, g.Nodes[2])
	assert.Equal(t, Node{ID: 3, Kind: network.Output}, g.Nodes[3])

	require.Len(t, g.Links, 3)
	wantFrom := []int{0, 1, 2}
	for i, l := range g.Links {
		assert.Equal(t, wantFrom[i], l.FromID)
		assert.Equal(t, 3, l.ToID)
		assert.Equal(t, int64(i), l.Innovation)
		assert.True(t, l.Enabled)
		assert.Equal(t, 0.0, l.Weight)
	}
}

func TestGenomeVerify(t *testing.T) {
	g := NewInitialGenome(1, 2, 1)
	assert.NoError(t, g.Verify())

	g.Links[0].Weight = 100
	assert.Error(t, g.Verify())
}

func TestGenomeGenesisOnlyEnabledLinks(t *testing.T) {
	g := NewInitialGenome(1, 2, 1)
	g.Links[1].Enabled = false

	net, err := g.Genesis()
	require.NoError(t, err)
	assert.Equal(t, 2, net.LinkCount())
}

func TestGenomeCompatibility(t *testing.T) {
	a := &Genome{Links: []Link{
		{Innovation: 0, Weight: 1},
		{Innovation: 1, Weight: 1},
		{Innovation: 2, Weight: 1},
		{Innovation: 4, Weight: 1},
	}}
	b := &Genome{Links: []Link{
		{Innovation: 0, Weight: 1},
		{Innovation: 1, Weight: 1},
		{Innovation: 3, Weight: 1},
		{Innovation: 5, Weight: 1},
	}}

	d := a.Compatibility(b, CompatCoefficients{Disjoint: 1, Excess: 1, Weight: 0.4})
	assert.Equal(t, 4.0, d)
}

func TestGenomeCompatibilityIdentical(t *testing.T) {
	g := NewInitialGenome(1, 2, 1)
	d := g.Compatibility(g, CompatCoefficients{Disjoint: 1, Excess: 1, Weight: 0.4})
	assert.Equal(t, 0.0, d)
}

func TestIsNewLinkRecurrent(t *testing.T) {
	g := NewInitialGenome(1, 2, 1)
	// 0 -> 3 already exists and is feed-forward; a fresh 3 -> 0 link would
	// have to travel backward against that edge, so it is recurrent.
	assert.True(t, g.IsNewLinkRecurrent(3, 0))
	// 0 -> anything new with no path back is not recurrent.
	assert.False(t, g.IsNewLinkRecurrent(0, 3))
	assert.True(t, g.IsNewLinkRecurrent(0, 0))
}

func TestDuplicateIsIndependent(t *testing.T) {
	g := NewInitialGenome(1, 2, 1)
	dup := g.Duplicate(2)
	dup.Links[0].Weight = 5
	assert.NotEqual(t, g.Links[0].Weight, dup.Links[0].Weight)
	assert.Equal(t, 2, dup.ID)
}
