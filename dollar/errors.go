package dollar

import "github.com/pkg/errors"

// Errors
var (
	ErrInvalidConfig  = errors.New("invalid puzzle configuration")
	ErrSamplingStall  = errors.New("no valid cycle edge could be sampled")
	ErrBadNodeID      = errors.New("bad puzzle node ID")
	ErrSelfLoop       = errors.New("edge connects a node to itself")
	ErrDisconnected   = errors.New("puzzle graph is not connected")
	ErrBrokenAdj      = errors.New("node adjacency does not agree with edge list")
	ErrBadExpr        = errors.New("bad puzzle expression")
	ErrCountsMismatch = errors.New("count vector length does not match node count")
)
