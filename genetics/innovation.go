package genetics

// InnovationRegistry assigns historical markings to structural mutations
// within a single generation (spec §4.2: "the registry is reset at the
// start of every generation — innovation numbers are epoch-scoped, never
// carried across generations"). Two identical structural mutations
// requested in the same generation must resolve to the same marking(s),
// so that genomes which independently discover the same structure can
// still align during crossover.
type InnovationRegistry struct {
	next int64

	linkAdds   map[linkAddKey]int64
	nodeSplits map[nodeSplitKey]nodeSplitResult
}

type linkAddKey struct {
	from, to    int
	isRecurrent bool
}

type nodeSplitKey struct {
	from, to      int
	oldInnovation int64
}

type nodeSplitResult struct {
	newNodeID int
	innovIn   int64
	innovOut  int64
}

// NewInnovationRegistry constructs a registry whose first assigned
// innovation number is startAt (the caller passes one past the highest
// innovation already in use). Node ids are not allocated by the registry;
// NodeSplitInnovations takes them from the nextNodeID callback it is given.
func NewInnovationRegistry(startAt int64) *InnovationRegistry {
	return &InnovationRegistry{
		next:       startAt,
		linkAdds:   make(map[linkAddKey]int64),
		nodeSplits: make(map[nodeSplitKey]nodeSplitResult),
	}
}

func (r *InnovationRegistry) allocate() int64 {
	id := r.next
	r.next++
	return id
}

// LinkAddInnovation returns the innovation number for adding a link
// between from and to with the given recurrence flag, reusing a prior
// allocation within this generation if the identical link was already
// requested.
func (r *InnovationRegistry) LinkAddInnovation(from, to int, isRecurrent bool) int64 {
	key := linkAddKey{from: from, to: to, isRecurrent: isRecurrent}
	if innov, ok := r.linkAdds[key]; ok {
		return innov
	}
	innov := r.allocate()
	r.linkAdds[key] = innov
	return innov
}

// NodeSplitInnovations returns the new node id and the two innovation
// numbers (in-link, out-link) produced by splitting the link identified
// by (from, to, oldInnovation), reusing a prior allocation within this
// generation if the identical split was already requested (spec §4.2
// scenario S3: "the same split requested twice in one generation yields
// identical results").
func (r *InnovationRegistry) NodeSplitInnovations(from, to int, oldInnovation int64, nextNodeID func() int) (newNodeID int, innovIn, innovOut int64) {
	key := nodeSplitKey{from: from, to: to, oldInnovation: oldInnovation}
	if res, ok := r.nodeSplits[key]; ok {
		return res.newNodeID, res.innovIn, res.innovOut
	}
	res := nodeSplitResult{
		newNodeID: nextNodeID(),
		innovIn:   r.allocate(),
		innovOut:  r.allocate(),
	}
	r.nodeSplits[key] = res
	return res.newNodeID, res.innovIn, res.innovOut
}
