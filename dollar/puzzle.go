package dollar

import (
	"github.com/pkg/errors"
)

// Puzzle is a single dollar game instance: a connected multigraph whose nodes hold chip counts.
//
// A Puzzle owns its Nodes and Edges.  Topology is fixed once built; only Node.Count changes during play.
type Puzzle struct {
	Nodes []Node
	Edges []Edge
}

// NewPuzzle returns a puzzle with numNodes isolated nodes (IDs 0..numNodes-1), all with a zero count.
func NewPuzzle(numNodes int) *Puzzle {
	p := &Puzzle{
		Nodes: make([]Node, numNodes),
		Edges: make([]Edge, 0, numNodes+numNodes/3),
	}
	for i := range p.Nodes {
		p.Nodes[i].ID = NodeID(i)
	}
	return p
}

// Link joins a and b with a new edge, appending each to the other's Adj.
//
// Link is a construction step and must not be called once play has begun.
func (p *Puzzle) Link(a, b NodeID) {
	if a == b {
		panic(ErrSelfLoop)
	}
	p.Nodes[a].Adj = append(p.Nodes[a].Adj, b)
	p.Nodes[b].Adj = append(p.Nodes[b].Adj, a)
	p.Edges = append(p.Edges, Edge{Source: a, Target: b})
}

// NumNodes returns the number of nodes in this puzzle.
func (p *Puzzle) NumNodes() int {
	return len(p.Nodes)
}

// Node returns the node with the given ID.  The ID must be valid.
func (p *Puzzle) Node(id NodeID) *Node {
	return &p.Nodes[id]
}

// CheckNodeID returns ErrBadNodeID if id does not name a node of this puzzle.
func (p *Puzzle) CheckNodeID(id NodeID) error {
	if id < 0 || int(id) >= len(p.Nodes) {
		return errors.Wrapf(ErrBadNodeID, "node %d (puzzle has %d nodes)", id, len(p.Nodes))
	}
	return nil
}

// Genus returns the first Betti number |E| - |V| + 1 of this (connected) puzzle.
func (p *Puzzle) Genus() int {
	return len(p.Edges) - len(p.Nodes) + 1
}

// Sum returns the total chip count over all nodes.
func (p *Puzzle) Sum() int {
	sum := 0
	for i := range p.Nodes {
		sum += p.Nodes[i].Count
	}
	return sum
}

// Counts appends each node's count (in ID order) to dst and returns the extended slice.
func (p *Puzzle) Counts(dst []int) []int {
	for i := range p.Nodes {
		dst = append(dst, p.Nodes[i].Count)
	}
	return dst
}

// SetCounts assigns each node's count from the given vector (in ID order).
func (p *Puzzle) SetCounts(counts []int) error {
	if len(counts) != len(p.Nodes) {
		return errors.Wrapf(ErrCountsMismatch, "got %d counts for %d nodes", len(counts), len(p.Nodes))
	}
	for i, c := range counts {
		p.Nodes[i].Count = c
	}
	return nil
}

// Debts returns the IDs of nodes currently holding a negative count.
func (p *Puzzle) Debts() []NodeID {
	var debts []NodeID
	for i := range p.Nodes {
		if p.Nodes[i].Count < 0 {
			debts = append(debts, p.Nodes[i].ID)
		}
	}
	return debts
}

// IsConnected returns true if every node is reachable from node 0 via Adj.
func (p *Puzzle) IsConnected() bool {
	N := len(p.Nodes)
	if N == 0 {
		return false
	}

	seen := make([]bool, N)
	seen[0] = true
	reached := 1

	queue := make([]NodeID, 1, N)
	for len(queue) > 0 {
		ni := queue[0]
		queue = queue[1:]
		for _, nj := range p.Nodes[ni].Adj {
			if !seen[nj] {
				seen[nj] = true
				reached++
				queue = append(queue, nj)
			}
		}
	}
	return reached == N
}

// Validate checks that this puzzle is well formed: edge endpoints are valid and distinct,
// each node's Adj agrees with the edge list, and the graph is connected.
func (p *Puzzle) Validate() error {
	type pair struct{ a, b NodeID }

	pending := make(map[pair]int, 2*len(p.Edges))
	for ei, e := range p.Edges {
		if err := p.CheckNodeID(e.Source); err != nil {
			return errors.Wrapf(err, "edge #%d", ei)
		}
		if err := p.CheckNodeID(e.Target); err != nil {
			return errors.Wrapf(err, "edge #%d", ei)
		}
		if e.Source == e.Target {
			return errors.Wrapf(ErrSelfLoop, "edge #%d at node %d", ei, e.Source)
		}
		pending[pair{e.Source, e.Target}]++
		pending[pair{e.Target, e.Source}]++
	}

	for i := range p.Nodes {
		ni := &p.Nodes[i]
		if ni.ID != NodeID(i) {
			return errors.Wrapf(ErrBadNodeID, "node at index %d has ID %d", i, ni.ID)
		}
		for _, nj := range ni.Adj {
			if err := p.CheckNodeID(nj); err != nil {
				return errors.Wrapf(err, "adjacency of node %d", i)
			}
			pending[pair{ni.ID, nj}]--
		}
	}

	for k, v := range pending {
		if v != 0 {
			return errors.Wrapf(ErrBrokenAdj, "nodes %d and %d", k.a, k.b)
		}
	}

	if !p.IsConnected() {
		return ErrDisconnected
	}
	return nil
}

// Clone returns a deep copy of this puzzle.
func (p *Puzzle) Clone() *Puzzle {
	dupe := &Puzzle{
		Nodes: make([]Node, len(p.Nodes)),
		Edges: append([]Edge(nil), p.Edges...),
	}
	for i, ni := range p.Nodes {
		dupe.Nodes[i] = Node{
			ID:    ni.ID,
			Count: ni.Count,
			Adj:   append([]NodeID(nil), ni.Adj...),
		}
	}
	return dupe
}
