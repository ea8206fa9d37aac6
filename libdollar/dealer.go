package libdollar

import (
	"github.com/2x3systems/dollargame/dollar"
	"github.com/plan-systems/klog"
)

// maxDealAttempts bounds how many puzzles Deal() generates while looking for an unseen topology.
const maxDealAttempts = 32

// Dealer hands out a new puzzle per "new puzzle" request, avoiding topologies it already dealt.
type Dealer struct {
	rng  dollar.Rand
	opts GenOpts
	seen TopologySet
}

// NewDealer returns a Dealer that generates puzzles from the given opts.
func NewDealer(rng dollar.Rand, opts GenOpts) (*Dealer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Dealer{
		rng:  rng,
		opts: opts,
		seen: NewTopologySet(),
	}, nil
}

// Opts returns the opts this Dealer generates from.
func (d *Dealer) Opts() GenOpts {
	return d.opts
}

// Deal generates a puzzle, preferring a topology this Dealer has not dealt before.
//
// Small node counts have few distinct topologies.  Once maxDealAttempts consecutive puzzles are
// all repeats, the dealt set is reset and the last repeat is returned (its counts are freshly drawn).
func (d *Dealer) Deal() (*dollar.Puzzle, error) {
	var p *dollar.Puzzle
	for attempt := 0; attempt < maxDealAttempts; attempt++ {
		var err error
		p, err = GenerateWith(d.rng, d.opts)
		if err != nil {
			return nil, err
		}
		if d.seen.TryAdd(p) {
			return p, nil
		}
		klog.V(3).Infof("deal attempt %d: topology already dealt", attempt+1)
	}

	klog.V(1).Infof("all dealt topologies repeat (nodes=%d), resetting", d.opts.NodeCount)
	d.seen.Close()
	d.seen = NewTopologySet()
	d.seen.TryAdd(p)
	return p, nil
}

// Close releases the set of dealt topologies.
func (d *Dealer) Close() {
	d.seen.Close()
}
