package libdollar

import (
	"fmt"
	"io"
	"strings"

	"github.com/2x3systems/dollargame/dollar"
	"github.com/plan-systems/klog"
)

// PuzzleStream is a channel of puzzles; ownership of each puzzle travels with it through the channel.
type PuzzleStream struct {
	Outlet chan *dollar.Puzzle
}

func NewPuzzleStream() *PuzzleStream {
	stream := &PuzzleStream{
		Outlet: make(chan *dollar.Puzzle, 1),
	}
	return stream
}

// GeneratePuzzles emits count puzzles generated with the given opts from a private RNG seeded with seed.
//
// If the opts are invalid or generation stalls, the error is logged and the stream closes early.
func GeneratePuzzles(seed int64, opts GenOpts, count int) *PuzzleStream {
	next := NewPuzzleStream()

	go func() {
		rng := NewRand(seed)
		for i := 0; i < count; i++ {
			p, err := GenerateWith(rng, opts)
			if err != nil {
				klog.Warningf("GeneratePuzzles: stopping after %d of %d: %v", i, count, err)
				break
			}
			next.Outlet <- p
		}
		next.Close()
	}()

	return next
}

func (stream *PuzzleStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// PullAll drains the stream and returns how many puzzles it emitted.
func (stream *PuzzleStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// DropDupes passes along only puzzles whose topology has not yet appeared in this stream.
func (stream *PuzzleStream) DropDupes() *PuzzleStream {
	next := NewPuzzleStream()

	go func() {
		seen := NewTopologySet()
		for p := range stream.Outlet {
			if seen.TryAdd(p) {
				next.Outlet <- p
			}
		}
		seen.Close()
		next.Close()
	}()

	return next
}

// Print writes each puzzle to out and passes it along.
func (stream *PuzzleStream) Print(
	out io.Writer,
	opts dollar.PrintOpts) *PuzzleStream {

	next := NewPuzzleStream()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for p := range stream.Outlet {
			count++
			fmt.Fprintf(&buf, "%06d,", count)
			p.WriteAsString(&buf, opts)
			io.WriteString(out, buf.String())
			buf.Reset()
			next.Outlet <- p
		}
		next.Close()
	}()

	return next
}
