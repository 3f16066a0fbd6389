package genetics

import (
	"sync"

	"github.com/fenwick-labs/neatcore/network"
)

// Evaluator is the contract a fitness-evaluation experiment must satisfy
// (spec §4.7, §6). Evaluate runs on a worker goroutine and must not touch
// any other organism's Network concurrently; the Clone made for each
// evaluated organism (spec §9) exists precisely so Evaluate can't observe
// another worker's activation state. PostEvaluation runs single-threaded
// on the coordinator once every organism in the population has a score.
type Evaluator interface {
	Evaluate(net *network.Network, allPhenotypes []*network.Network) float64
	PostEvaluation(pop *Population)
}

type evalTask struct {
	speciesIdx, organismIdx int
	net                     *network.Network
}

type evalResult struct {
	speciesIdx, organismIdx int
	fitness                 float64
}

// EvaluatePopulation scores every organism in pop using workers parallel
// worker goroutines (spec §4.7, §5): the flat list of (species index,
// organism index, network clone) tasks is split into workers equal
// shards, with any remainder folded into the last shard (spec §5 "shard
// boundary rule"); each worker evaluates its shard sequentially, handing
// Evaluate a private clone of each organism's network, while the
// allPhenotypes slice (the organisms' own networks, not clones) is shared
// read-only by every worker; workers send results over a shared channel, and the
// coordinator waits for exactly len(tasks) results before calling
// PostEvaluation once, single-threaded.
func EvaluatePopulation(pop *Population, eval Evaluator, workers int) {
	if workers < 1 {
		workers = 1
	}

	tasks := make([]evalTask, 0, len(pop.Organisms))
	allPhenotypes := make([]*network.Network, 0, len(pop.Organisms))
	for si, sp := range pop.Species {
		for oi, org := range sp.Members {
			tasks = append(tasks, evalTask{speciesIdx: si, organismIdx: oi, net: org.Network})
			allPhenotypes = append(allPhenotypes, org.Network)
		}
	}
	if len(tasks) == 0 {
		eval.PostEvaluation(pop)
		return
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	results := make(chan evalResult, len(tasks))
	var wg sync.WaitGroup

	shardSize := len(tasks) / workers
	for w := 0; w < workers; w++ {
		start := w * shardSize
		end := start + shardSize
		if w == workers-1 {
			end = len(tasks)
		}
		shard := tasks[start:end]

		wg.Add(1)
		go func(shard []evalTask) {
			defer wg.Done()
			for _, t := range shard {
				clone := t.net.Clone()
				fitness := eval.Evaluate(clone, allPhenotypes)
				results <- evalResult{speciesIdx: t.speciesIdx, organismIdx: t.organismIdx, fitness: fitness}
			}
		}(shard)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		pop.Species[r.speciesIdx].Members[r.organismIdx].Fitness = r.fitness
	}

	eval.PostEvaluation(pop)
}
