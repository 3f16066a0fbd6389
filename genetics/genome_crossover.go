package genetics

import "github.com/fenwick-labs/neatcore/neat"

// Multipoint recombines two parent genomes into a child (spec §4.3).
// Matching genes (same innovation in both parents) are inherited from
// either parent with equal probability; if the gene is disabled in
// either parent, the inherited copy is disabled with probability 0.75.
// Disjoint and excess genes are inherited only from the fitter parent
// (aFitter selects which of a, b that is); no duplicate (from, to) link
// is ever added twice. The child's node set is the union of the fitter
// parent's nodes and whatever nodes the inherited links require.
func Multipoint(a, b *Genome, aFitter bool, childID int, rng neat.RandomSource) *Genome {
	fit, other := a, b
	if !aFitter {
		fit, other = b, a
	}

	child := &Genome{ID: childID}
	nodeSet := make(map[int]Node)
	for _, n := range fit.Nodes {
		nodeSet[n.ID] = n
	}

	seenLinks := make(map[[2]int]bool)
	i, j := 0, 0
	for i < len(a.Links) || j < len(b.Links) {
		var chosen Link
		var disabledInEither bool
		var take bool

		switch {
		case i < len(a.Links) && j < len(b.Links) && a.Links[i].Innovation == b.Links[j].Innovation:
			al, bl := a.Links[i], b.Links[j]
			disabledInEither = !al.Enabled || !bl.Enabled
			if rng.Bool() {
				chosen = al
			} else {
				chosen = bl
			}
			take = true
			i++
			j++
		case j >= len(b.Links) || (i < len(a.Links) && a.Links[i].Innovation < b.Links[j].Innovation):
			if fit == a {
				chosen = a.Links[i]
				disabledInEither = !chosen.Enabled
				take = true
			}
			i++
		default:
			if fit == b {
				chosen = b.Links[j]
				disabledInEither = !chosen.Enabled
				take = true
			}
			j++
		}

		if !take {
			continue
		}
		key := [2]int{chosen.FromID, chosen.ToID}
		if seenLinks[key] {
			continue
		}
		seenLinks[key] = true

		link := chosen.duplicate()
		if disabledInEither && rng.Float64() < 0.75 {
			link.Enabled = false
		} else {
			link.Enabled = true
		}
		child.Links = append(child.Links, link)

		ensureNode(nodeSet, a, link.FromID)
		ensureNode(nodeSet, b, link.FromID)
		ensureNode(nodeSet, a, link.ToID)
		ensureNode(nodeSet, b, link.ToID)
	}

	child.Nodes = make([]Node, 0, len(nodeSet))
	for _, n := range nodeSet {
		child.Nodes = append(child.Nodes, n)
	}
	sortNodesByID(child.Nodes)
	sortLinksByInnovation(child.Links)
	return child
}

func ensureNode(set map[int]Node, src *Genome, id int) {
	if _, ok := set[id]; ok {
		return
	}
	if n, ok := src.nodeByID(id); ok {
		set[id] = n
	}
}

func sortNodesByID(nodes []Node) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && nodes[j-1].ID > nodes[j].ID; j-- {
			nodes[j-1], nodes[j] = nodes[j], nodes[j-1]
		}
	}
}

func sortLinksByInnovation(links []Link) {
	for i := 1; i < len(links); i++ {
		for j := i; j > 0 && links[j-1].Innovation > links[j].Innovation; j-- {
			links[j-1], links[j] = links[j], links[j-1]
		}
	}
}
