package dollar

// NodeID is a zero-based index that identifies a node in a given puzzle (0..N-1)
type NodeID int32

// Node is a puzzle vertex holding a signed chip count.
//
// Adj lists the neighbor of each incident edge, so a neighbor joined by k parallel edges appears k times.
// Entries index into the owning Puzzle's Nodes and carry no ownership.
type Node struct {
	ID    NodeID
	Count int
	Adj   []NodeID
}

// Degree returns the number of edges incident to this node (counting multiplicity).
func (n *Node) Degree() int {
	return len(n.Adj)
}

// Edge is an undirected edge between two distinct nodes.
// Edges drive display only; firing consults Node.Adj.
type Edge struct {
	Source NodeID
	Target NodeID
}

// MoveKind selects which of the two chip transfers a Move performs.
type MoveKind byte

const (
	MoveFire   MoveKind = 1 // give one chip across each incident edge
	MoveBorrow MoveKind = 2 // take one chip across each incident edge
)

func (k MoveKind) String() string {
	switch k {
	case MoveFire:
		return "fire"
	case MoveBorrow:
		return "borrow"
	}
	return "?"
}

// Inverse returns the move kind that undoes k.
func (k MoveKind) Inverse() MoveKind {
	switch k {
	case MoveFire:
		return MoveBorrow
	case MoveBorrow:
		return MoveFire
	}
	return k
}

// Move is a single player action on a node.
type Move struct {
	Node NodeID
	Kind MoveKind
}

// Rand is the randomness source used for puzzle generation.
// *math/rand.Rand satisfies it.
type Rand interface {

	// Intn returns a uniform int in [0, n).  n must be > 0.
	Intn(n int) int
}

// PrintOpts specifies what is printed when printing a puzzle
type PrintOpts struct {
	Label  string // Prefix label
	Counts bool   // If set, prints each node's count and degree
	Edges  bool   // If set, prints the edge list
	Expr   bool   // If set, prints the puzzle as an expression (see libdollar.FormatExpr)
}

// DefaultPrintOpts prints the summary line and per-node counts.
var DefaultPrintOpts = PrintOpts{
	Counts: true,
}
