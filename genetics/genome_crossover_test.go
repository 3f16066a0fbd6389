package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultipointNoDuplicateLinks(t *testing.T) {
	a := NewInitialGenome(1, 2, 1)
	b := NewInitialGenome(2, 2, 1)
	b.Links[0].Weight = 5

	rng := &scriptedRand{bools: []bool{true, false, true}, floats: []float64{0.9}}
	child := Multipoint(a, b, true, 3, rng)

	seen := make(map[[2]int]bool)
	for _, l := range child.Links {
		key := [2]int{l.FromID, l.ToID}
		require.False(t, seen[key], "duplicate link in child")
		seen[key] = true
	}
	assert.Len(t, child.Links, 3)
}

func TestMultipointInheritsDisjointFromFitterParent(t *testing.T) {
	a := NewInitialGenome(1, 2, 1)
	registry := NewInnovationRegistry(a.NextInnovation())
	nextID := a.NextNodeID()
	nextNodeID := func() int { id := nextID; nextID++; return id }
	require.NoError(t, mutateAddNode(a, &scriptedRand{ints: []int{0}}, registry, nextNodeID))

	b := NewInitialGenome(2, 2, 1)

	rng := &scriptedRand{bools: []bool{true, true}, floats: []float64{0.9}}
	child := Multipoint(a, b, true, 3, rng)

	foundSplitNode := false
	for _, n := range child.Nodes {
		if n.ID == 4 {
			foundSplitNode = true
		}
	}
	assert.True(t, foundSplitNode, "disjoint gene from fitter parent a should be inherited")
}
