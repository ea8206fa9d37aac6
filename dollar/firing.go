package dollar

// Fire ("give") moves one chip from node id to the far end of each incident edge.
//
// A neighbor joined by k parallel edges gains k chips.  The total chip count is unchanged.
func (p *Puzzle) Fire(id NodeID) {
	n := &p.Nodes[id]
	n.Count -= len(n.Adj)
	for _, nj := range n.Adj {
		p.Nodes[nj].Count++
	}
}

// Borrow ("take") moves one chip from the far end of each incident edge into node id.
// It is the exact inverse of Fire.
func (p *Puzzle) Borrow(id NodeID) {
	n := &p.Nodes[id]
	n.Count += len(n.Adj)
	for _, nj := range n.Adj {
		p.Nodes[nj].Count--
	}
}

// Apply performs the given move.
func (p *Puzzle) Apply(m Move) {
	switch m.Kind {
	case MoveFire:
		p.Fire(m.Node)
	case MoveBorrow:
		p.Borrow(m.Node)
	default:
		panic("unknown move kind")
	}
}

// ApplyAll performs each move in order.
func (p *Puzzle) ApplyAll(moves []Move) {
	for _, m := range moves {
		p.Apply(m)
	}
}
