package flow

import (
	"github.com/viant/scoreflow/model/label"
	"github.com/viant/scoreflow/model/types"
)

type nodeKind int

const (
	kindEvaluator nodeKind = iota
	kindAggregator
)

// nodeID addresses a node inside a flow graph arena.
type nodeID struct {
	kind  nodeKind
	index int
}

// flowGraph holds the registered nodes of a flow. Nodes live in per-kind
// arenas; edges point from child to parent so that children scores can be
// pushed upward during evaluation. The evaluation order is cached and
// recomputed whenever a node batch is added.
type flowGraph struct {
	evaluators  []types.Evaluator
	aggregators []types.Aggregator

	// nodes lists every node in registration order.
	nodes []nodeID
	// parents maps a child node to its aggregator parent.
	parents map[nodeID]nodeID
	// children maps an aggregator node to its children in registration order.
	children map[nodeID][]nodeID
	// childIndex maps a child node to its position in the parent buffer.
	childIndex map[nodeID]int
	// labels maps an output label to the node producing it.
	labels map[label.ScoreLabel]nodeID

	// order caches the bottom-up evaluation order.
	order []nodeID
}

func newFlowGraph() *flowGraph {
	return &flowGraph{
		parents:    make(map[nodeID]nodeID),
		children:   make(map[nodeID][]nodeID),
		childIndex: make(map[nodeID]int),
		labels:     make(map[label.ScoreLabel]nodeID),
	}
}

func (g *flowGraph) addEvaluator(evaluator types.Evaluator) nodeID {
	id := nodeID{kind: kindEvaluator, index: len(g.evaluators)}
	g.evaluators = append(g.evaluators, evaluator)
	g.nodes = append(g.nodes, id)
	return id
}

func (g *flowGraph) addAggregator(aggregator types.Aggregator) nodeID {
	id := nodeID{kind: kindAggregator, index: len(g.aggregators)}
	g.aggregators = append(g.aggregators, aggregator)
	g.nodes = append(g.nodes, id)
	return id
}

func (g *flowGraph) connect(child, parent nodeID) {
	g.parents[child] = parent
	g.childIndex[child] = len(g.children[parent])
	g.children[parent] = append(g.children[parent], child)
}

func (g *flowGraph) name(id nodeID) string {
	if id.kind == kindAggregator {
		return g.aggregators[id.index].Name()
	}
	return g.evaluators[id.index].Name()
}

// refresh recomputes the cached evaluation order with a Kahn walk seeded at
// the leaves, so every node is ordered after all of its children.
func (g *flowGraph) refresh() {
	pending := make(map[nodeID]int, len(g.nodes))
	ready := make([]nodeID, 0, len(g.nodes))
	for _, id := range g.nodes {
		count := len(g.children[id])
		pending[id] = count
		if count == 0 {
			ready = append(ready, id)
		}
	}
	order := make([]nodeID, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		parent, ok := g.parents[id]
		if !ok {
			continue
		}
		pending[parent]--
		if pending[parent] == 0 {
			ready = append(ready, parent)
		}
	}
	g.order = order
}
