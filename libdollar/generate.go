package libdollar

import (
	"github.com/2x3systems/dollargame/dollar"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

const (

	// AutoCycleEdges denotes floor(NodeCount / 3) extra cycle edges.
	AutoCycleEdges = -1

	// MaxNodeCount bounds GenOpts.NodeCount so every node fits a NodeID and a request can't exhaust memory.
	MaxNodeCount = MaxExprNodeID + 1

	// MaxRange bounds GenOpts.Range.  The draw width 2*Range must not overflow, and top-up and trim
	// step one chip at a time, so their cost grows with NodeCount * Range.
	MaxRange = 1 << 16

	// AttemptsPerNode is the default number of pair draws allowed per cycle edge, per node.
	AttemptsPerNode = 64
)

// GenOpts specifies params for generating a puzzle
type GenOpts struct {
	NodeCount   int  // number of nodes (>= 2)
	ExactSum    bool // if set, the total count equals the genus exactly; otherwise it is at least the genus
	Range       int  // initial counts are drawn from [-Range, Range)
	CycleEdges  int  // edges added beyond the spanning tree (AutoCycleEdges denotes NodeCount/3)
	MaxAttempts int  // pair draws allowed per cycle edge (<= 0 denotes AttemptsPerNode * NodeCount)
}

// DefaultGenOpts matches the classic page: 15 nodes, surplus mode, counts in [-10, 10).
var DefaultGenOpts = GenOpts{
	NodeCount:  15,
	Range:      10,
	CycleEdges: AutoCycleEdges,
}

// Validate returns ErrInvalidConfig if these opts can't produce a puzzle.
func (opts *GenOpts) Validate() error {
	if opts.NodeCount < 2 || opts.NodeCount > MaxNodeCount {
		return errors.Wrapf(dollar.ErrInvalidConfig, "NodeCount must be in [2, %d] (got %d)", MaxNodeCount, opts.NodeCount)
	}
	if opts.Range < 1 || opts.Range > MaxRange {
		return errors.Wrapf(dollar.ErrInvalidConfig, "Range must be in [1, %d] (got %d)", MaxRange, opts.Range)
	}
	if opts.CycleEdges < AutoCycleEdges {
		return errors.Wrapf(dollar.ErrInvalidConfig, "CycleEdges must be >= 0 or AutoCycleEdges (got %d)", opts.CycleEdges)
	}
	return nil
}

// NumCycleEdges returns the number of edges that will be added beyond the spanning tree.
func (opts *GenOpts) NumCycleEdges() int {
	if opts.CycleEdges == AutoCycleEdges {
		return opts.NodeCount / 3
	}
	return opts.CycleEdges
}

func (opts *GenOpts) maxAttempts() int {
	if opts.MaxAttempts > 0 {
		return opts.MaxAttempts
	}
	return AttemptsPerNode * opts.NodeCount
}

// Generate is a convenience for GenerateWith() using DefaultGenOpts for everything but the given params.
func Generate(rng dollar.Rand, nodeCount int, exactSum bool, valueRange int) (*dollar.Puzzle, error) {
	opts := DefaultGenOpts
	opts.NodeCount = nodeCount
	opts.ExactSum = exactSum
	opts.Range = valueRange
	return GenerateWith(rng, opts)
}

// GenerateWith builds a random connected puzzle whose total count is at least its genus
// (or exactly its genus if opts.ExactSum is set), which guarantees the puzzle is solvable.
func GenerateWith(rng dollar.Rand, opts GenOpts) (*dollar.Puzzle, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	p := dollar.NewPuzzle(opts.NodeCount)
	linkSpanningTree(rng, p)

	if err := linkCycleEdges(rng, p, opts.NumCycleEdges(), opts.maxAttempts()); err != nil {
		return nil, err
	}

	assignCounts(rng, p, opts.Range, opts.ExactSum)

	klog.V(2).Infof("generated puzzle: nodes=%d edges=%d genus=%d sum=%d exact=%v", p.NumNodes(), len(p.Edges), p.Genus(), p.Sum(), opts.ExactSum)
	return p, nil
}

// linkSpanningTree grows a "connected" pool from node 0 by repeatedly joining a random connected node
// to a random unconnected node until every node is connected, producing exactly N-1 edges.
func linkSpanningTree(rng dollar.Rand, p *dollar.Puzzle) {
	N := p.NumNodes()

	connected := arraylist.New(dollar.NodeID(0))
	unconnected := arraylist.New()
	for i := 1; i < N; i++ {
		unconnected.Add(dollar.NodeID(i))
	}

	for !unconnected.Empty() {
		a, _ := connected.Get(rng.Intn(connected.Size()))

		bi := rng.Intn(unconnected.Size())
		b, _ := unconnected.Get(bi)
		unconnected.Remove(bi)

		p.Link(a.(dollar.NodeID), b.(dollar.NodeID))
		connected.Add(b)
	}
}

// linkCycleEdges adds numEdges edges between random non-adjacent node pairs.
// Each edge gets at most maxAttempts pair draws before ErrSamplingStall is returned.
func linkCycleEdges(rng dollar.Rand, p *dollar.Puzzle, numEdges, maxAttempts int) error {
	N := p.NumNodes()
	maxDegree := N - 1

	for ei := 0; ei < numEdges; ei++ {
		linked := false
		for attempt := 0; attempt < maxAttempts && !linked; attempt++ {
			a := dollar.NodeID(rng.Intn(N))
			if p.Node(a).Degree() >= maxDegree {
				continue
			}
			b := dollar.NodeID(rng.Intn(N))
			if a == b || p.Node(b).Degree() >= maxDegree || isAdjacent(p, a, b) {
				continue
			}
			p.Link(a, b)
			linked = true
		}

		if !linked {
			klog.Warningf("cycle edge %d of %d: no valid pair after %d attempts (nodes=%d edges=%d)", ei+1, numEdges, maxAttempts, N, len(p.Edges))
			return errors.Wrapf(dollar.ErrSamplingStall, "cycle edge %d of %d after %d attempts", ei+1, numEdges, maxAttempts)
		}
	}
	return nil
}

func isAdjacent(p *dollar.Puzzle, a, b dollar.NodeID) bool {
	for _, nj := range p.Node(a).Adj {
		if nj == b {
			return true
		}
	}
	return false
}

// assignCounts draws each count from [-valueRange, valueRange), then tops up random nodes until the
// total reaches the genus.  In exact mode, random nodes are then decremented until total == genus.
func assignCounts(rng dollar.Rand, p *dollar.Puzzle, valueRange int, exactSum bool) {
	N := p.NumNodes()
	genus := p.Genus()

	remaining := genus
	for i := range p.Nodes {
		count := rng.Intn(2*valueRange) - valueRange
		p.Nodes[i].Count = count
		remaining -= count
	}

	for ; remaining > 0; remaining-- {
		p.Nodes[rng.Intn(N)].Count++
	}

	if exactSum {
		for sum := genus - remaining; sum > genus; sum-- {
			p.Nodes[rng.Intn(N)].Count--
		}
	}
}
