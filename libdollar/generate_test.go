package libdollar_test

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/2x3systems/dollargame/dollar"
	"github.com/2x3systems/dollargame/libdollar"
	"github.com/pkg/errors"
)

func TestGenerateInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))

	for N := 2; N <= 40; N++ {
		for _, exact := range []bool{false, true} {
			for _, valueRange := range []int{1, 3, 10} {
				p, err := libdollar.Generate(rng, N, exact, valueRange)
				if err != nil {
					t.Fatalf("N=%d: %v", N, err)
				}
				if err = p.Validate(); err != nil {
					t.Fatalf("N=%d: %v", N, err)
				}
				for _, e := range p.Edges {
					if e.Source == e.Target {
						t.Fatalf("N=%d: self-loop at %d", N, e.Source)
					}
				}

				if p.NumNodes() != N {
					t.Fatalf("N=%d: got %d nodes", N, p.NumNodes())
				}
				if want := N - 1 + N/3; len(p.Edges) != want {
					t.Fatalf("N=%d: got %d edges, want %d", N, len(p.Edges), want)
				}
				genus := p.Genus()
				if genus != len(p.Edges)-N+1 || genus != N/3 {
					t.Fatalf("N=%d: genus %d", N, genus)
				}

				sum := p.Sum()
				if sum < genus {
					t.Fatalf("N=%d: sum %d < genus %d", N, sum, genus)
				}
				if exact && sum != genus {
					t.Fatalf("N=%d: exact mode sum %d != genus %d", N, sum, genus)
				}
			}
		}
	}
}

func TestGenerateExample(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		p, err := libdollar.Generate(rand.New(rand.NewSource(seed)), 5, true, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(p.Edges) != 5 || p.Genus() != 1 || p.Sum() != 1 {
			t.Fatalf("seed %d: edges=%d genus=%d sum=%d", seed, len(p.Edges), p.Genus(), p.Sum())
		}
		for _, n := range p.Nodes {
			if n.Count < -1 {
				t.Fatalf("seed %d: node %d count %d below draw range", seed, n.ID, n.Count)
			}
		}
	}
}

func TestGenerateSurplusKeepsExcess(t *testing.T) {
	// With a wide range some surplus puzzles must start above the genus; exact mode never does.
	rng := rand.New(rand.NewSource(99))
	surplus := 0
	for i := 0; i < 200; i++ {
		p, err := libdollar.Generate(rng, 6, false, 10)
		if err != nil {
			t.Fatal(err)
		}
		if p.Sum() > p.Genus() {
			surplus++
		}
	}
	if surplus == 0 {
		t.Fatal("surplus mode never exceeded the genus")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := libdollar.DefaultGenOpts
	opts.NodeCount = 20

	A, err := libdollar.GenerateWith(libdollar.NewRand(7), opts)
	if err != nil {
		t.Fatal(err)
	}
	B, err := libdollar.GenerateWith(libdollar.NewRand(7), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(libdollar.Signature(A), libdollar.Signature(B)) {
		t.Fatal("same seed produced different topologies")
	}
	if libdollar.FormatExpr(A) != libdollar.FormatExpr(B) {
		t.Fatal("same seed produced different puzzles")
	}
}

func TestGenerateCycleEdges(t *testing.T) {
	opts := libdollar.DefaultGenOpts
	opts.NodeCount = 10
	opts.CycleEdges = 0

	p, err := libdollar.GenerateWith(libdollar.NewRand(3), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Edges) != 9 || p.Genus() != 0 {
		t.Fatalf("tree: edges=%d genus=%d", len(p.Edges), p.Genus())
	}

	// K5 needs 10 edges: a spanning tree plus 6
	opts.NodeCount = 5
	opts.CycleEdges = 6
	p, err = libdollar.GenerateWith(libdollar.NewRand(3), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Edges) != 10 || p.Genus() != 6 {
		t.Fatalf("complete: edges=%d genus=%d", len(p.Edges), p.Genus())
	}
	for _, n := range p.Nodes {
		if n.Degree() != 4 {
			t.Fatalf("node %d has degree %d", n.ID, n.Degree())
		}
	}
}

func TestGenerateStall(t *testing.T) {
	opts := libdollar.DefaultGenOpts
	opts.NodeCount = 4
	opts.CycleEdges = 4 // K4 only has room for 3 beyond a spanning tree
	opts.MaxAttempts = 100

	_, err := libdollar.GenerateWith(libdollar.NewRand(11), opts)
	if !errors.Is(err, dollar.ErrSamplingStall) {
		t.Fatalf("expected ErrSamplingStall, got %v", err)
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	rng := libdollar.NewRand(1)
	tests := []struct {
		name string
		opts libdollar.GenOpts
	}{
		{"no nodes", libdollar.GenOpts{NodeCount: 0, Range: 1}},
		{"single node", libdollar.GenOpts{NodeCount: 1, Range: 1}},
		{"zero range", libdollar.GenOpts{NodeCount: 5, Range: 0}},
		{"negative range", libdollar.GenOpts{NodeCount: 5, Range: -3}},
		{"too many nodes", libdollar.GenOpts{NodeCount: libdollar.MaxNodeCount + 1, Range: 1}},
		{"huge node count", libdollar.GenOpts{NodeCount: 2000000000, Range: 10}},
		{"range too wide", libdollar.GenOpts{NodeCount: 5, Range: libdollar.MaxRange + 1}},
		{"range overflows draw", libdollar.GenOpts{NodeCount: 5, Range: math.MaxInt/2 + 1}},
		{"negative cycles", libdollar.GenOpts{NodeCount: 5, Range: 1, CycleEdges: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := libdollar.GenerateWith(rng, tt.opts)
			if errors.Cause(err) != dollar.ErrInvalidConfig {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestGeneratedPuzzlePlay(t *testing.T) {
	rng := libdollar.NewRand(5)
	p, err := libdollar.Generate(rng, 15, false, 10)
	if err != nil {
		t.Fatal(err)
	}

	sum := p.Sum()
	for i := 0; i < 1000; i++ {
		id := dollar.NodeID(rng.Intn(p.NumNodes()))
		if rng.Intn(2) == 0 {
			p.Fire(id)
		} else {
			p.Borrow(id)
		}
	}
	if p.Sum() != sum {
		t.Fatalf("sum changed from %d to %d", sum, p.Sum())
	}
}
