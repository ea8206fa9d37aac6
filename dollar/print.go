package dollar

import (
	"fmt"
	"io"
	"strconv"
)

// AppendExpr appends this puzzle as a puzzle expression, e.g. "0[2]-1[-1], 1-2, 0-2".
//
// Each edge is written as its own run; a node's count is written on its first mention (if nonzero).
func (p *Puzzle) AppendExpr(io []byte) []byte {
	mentioned := make([]bool, len(p.Nodes))

	appendNode := func(io []byte, id NodeID) []byte {
		io = strconv.AppendInt(io, int64(id), 10)
		if !mentioned[id] {
			mentioned[id] = true
			if c := p.Nodes[id].Count; c != 0 {
				io = append(io, '[')
				io = strconv.AppendInt(io, int64(c), 10)
				io = append(io, ']')
			}
		}
		return io
	}

	for ei, e := range p.Edges {
		if ei > 0 {
			io = append(io, ", "...)
		}
		io = appendNode(io, e.Source)
		io = append(io, '-')
		io = appendNode(io, e.Target)
	}

	// Isolated nodes (only possible for a single node puzzle)
	for i := range p.Nodes {
		if !mentioned[i] {
			if len(io) > 0 {
				io = append(io, ", "...)
			}
			io = appendNode(io, NodeID(i))
		}
	}
	return io
}

// WriteAsString writes a human readable description of this puzzle.
func (p *Puzzle) WriteAsString(out io.Writer, opts PrintOpts) {
	var buf [256]byte
	line := buf[:0]

	if len(opts.Label) > 0 {
		line = append(line, opts.Label...)
		line = append(line, ' ')
	}
	line = fmt.Appendf(line, "nodes=%d edges=%d genus=%d sum=%d\n", len(p.Nodes), len(p.Edges), p.Genus(), p.Sum())

	if opts.Counts {
		for i := range p.Nodes {
			ni := &p.Nodes[i]
			line = fmt.Appendf(line, "  %3d: %4d  (deg %d)\n", ni.ID, ni.Count, ni.Degree())
		}
	}
	if opts.Edges {
		for _, e := range p.Edges {
			line = fmt.Appendf(line, "  %3d -- %d\n", e.Source, e.Target)
		}
	}
	if opts.Expr {
		line = append(line, "  "...)
		line = p.AppendExpr(line)
		line = append(line, '\n')
	}

	out.Write(line)
}
