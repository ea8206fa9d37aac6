package libdollar

import (
	"strconv"

	"github.com/2x3systems/dollargame/dollar"
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// PuzzleExpr is a comma separated list of edge runs, e.g. "0[2]-1-2[-1], 2=0"
type PuzzleExpr struct {
	Runs []*EdgeRun `parser:"@@ (\",\" @@)*"`
}

type EdgeRun struct {
	Start *NodeExpr  `parser:"@@"`
	Hops  []*EdgeHop `parser:"@@*"`
}

// EdgeHop is one or more parallel edges: "-" is one edge, "--" two, "=" two.
type EdgeHop struct {
	Kind string    `parser:"@( \"-\"+ | \"=\" )"`
	End  *NodeExpr `parser:"@@"`
}

type NodeExpr struct {
	ID    int     `parser:"@Int"`
	Count *string `parser:"( \"[\" @( \"-\"? Int ) \"]\" )?"`
}

func (hop *EdgeHop) Multiplicity() int {
	if hop.Kind == "=" {
		return 2
	}
	return len(hop.Kind)
}

var parsePuzzleExpr = participle.MustBuild[PuzzleExpr]()

// MaxExprNodeID bounds node IDs accepted by ParseExpr.
const MaxExprNodeID = 4095

type puzzleBuilder struct {
	maxID    int
	counts   map[int]int // count per mentioned node
	assigned map[int]int // counts given explicitly
	edges    []dollar.Edge
}

func (pb *puzzleBuilder) tallyNode(node *NodeExpr) error {
	if node.ID < 0 || node.ID > MaxExprNodeID {
		return errors.Wrapf(dollar.ErrBadExpr, "node ID %d out of range", node.ID)
	}
	if pb.maxID < node.ID {
		pb.maxID = node.ID
	}
	if _, seen := pb.counts[node.ID]; !seen {
		pb.counts[node.ID] = 0
	}

	if node.Count != nil {
		count, err := strconv.Atoi(*node.Count)
		if err != nil {
			return errors.Wrapf(dollar.ErrBadExpr, "node %d: bad count %q", node.ID, *node.Count)
		}
		if prev, assigned := pb.assigned[node.ID]; assigned && prev != count {
			return errors.Wrapf(dollar.ErrBadExpr, "node %d: conflicting counts %d and %d", node.ID, prev, count)
		}
		pb.assigned[node.ID] = count
		pb.counts[node.ID] = count
	}
	return nil
}

func (pb *puzzleBuilder) applyRun(run *EdgeRun) error {
	onNode := run.Start
	if err := pb.tallyNode(onNode); err != nil {
		return err
	}

	for _, hop := range run.Hops {
		if err := pb.tallyNode(hop.End); err != nil {
			return err
		}
		if hop.End.ID == onNode.ID {
			return errors.Wrapf(dollar.ErrBadExpr, "self-loop at node %d", onNode.ID)
		}
		for k := hop.Multiplicity(); k > 0; k-- {
			pb.edges = append(pb.edges, dollar.Edge{
				Source: dollar.NodeID(onNode.ID),
				Target: dollar.NodeID(hop.End.ID),
			})
		}
		onNode = hop.End
	}
	return nil
}

// ParseExpr builds a puzzle from a puzzle expression.
//
// Node IDs must cover 0..max with no gaps and the resulting graph must be connected.
// A node's count may be given on any mention ("3[-2]"); unmentioned counts are zero.
func ParseExpr(expr string) (*dollar.Puzzle, error) {
	ast, err := parsePuzzleExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(dollar.ErrBadExpr, "%v", err)
	}

	pb := puzzleBuilder{
		counts:   make(map[int]int),
		assigned: make(map[int]int),
	}
	for _, run := range ast.Runs {
		if err = pb.applyRun(run); err != nil {
			return nil, err
		}
	}

	N := pb.maxID + 1
	if len(pb.counts) != N {
		for i := 0; i < N; i++ {
			if _, seen := pb.counts[i]; !seen {
				return nil, errors.Wrapf(dollar.ErrBadExpr, "node %d is never mentioned", i)
			}
		}
	}

	p := dollar.NewPuzzle(N)
	for _, e := range pb.edges {
		p.Link(e.Source, e.Target)
	}
	for id, count := range pb.counts {
		p.Nodes[id].Count = count
	}

	if N > 1 && !p.IsConnected() {
		return nil, errors.Wrapf(dollar.ErrBadExpr, "%v", dollar.ErrDisconnected)
	}
	return p, nil
}

// MustParseExpr is ParseExpr() but panics on error.
func MustParseExpr(expr string) *dollar.Puzzle {
	p, err := ParseExpr(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// FormatExpr renders a puzzle as an expression that ParseExpr() reads back into the same puzzle.
func FormatExpr(p *dollar.Puzzle) string {
	return string(p.AppendExpr(nil))
}
