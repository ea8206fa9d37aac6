package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/2x3systems/dollargame/dollar"
	"github.com/2x3systems/dollargame/libdollar"
	"github.com/2x3systems/dollargame/serve"
	"github.com/plan-systems/klog"
)

var (
	serveAddr = flag.String("serve", "", "if set, serves puzzle sessions over websocket at this address (e.g. \":8080\")")
	genCount  = flag.Int("gen", 0, "if set, prints this many generated puzzles and exits")
	numNodes  = flag.Int("nodes", libdollar.DefaultGenOpts.NodeCount, "puzzle node count")
	exactSum  = flag.Bool("exact", false, "require the total count to equal the genus exactly")
	valRange  = flag.Int("range", libdollar.DefaultGenOpts.Range, "initial counts are drawn from [-range, range)")
	cycles    = flag.Int("cycles", libdollar.AutoCycleEdges, "extra cycle edges (-1 denotes nodes/3)")
	seed      = flag.Int64("seed", 0, "RNG seed (0 denotes a random seed)")
	dropDupes = flag.Bool("unique", true, "with -gen, drop puzzles whose topology was already printed")
)

func main() {
	initLogging()
	flag.Parse()

	opts := libdollar.DefaultGenOpts
	opts.NodeCount = *numNodes
	opts.ExactSum = *exactSum
	opts.Range = *valRange
	opts.CycleEdges = *cycles

	exitCode := 0
	switch {
	case *serveAddr != "":
		exitCode = runServer(*serveAddr, opts)
	case *genCount > 0:
		exitCode = runGenerate(*genCount, opts)
	default:
		exitCode = runPython(flag.Arg(0))
	}

	klog.Flush()
	os.Exit(exitCode)
}

// initLogging registers klog's flags on flag.CommandLine (so -v and -logtostderr can be overridden)
// and sets their defaults.
func initLogging() {
	klog.InitFlags(nil)
	flag.Set("logtostderr", "true")
	flag.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
}

func runServer(addr string, opts libdollar.GenOpts) int {
	if err := opts.Validate(); err != nil {
		klog.Errorf("%v", err)
		return 1
	}

	srvOpts := serve.DefaultServerOpts
	srvOpts.Gen = opts
	srvOpts.Seed = *seed

	klog.Infof("serving puzzle sessions on %v", addr)
	err := http.ListenAndServe(addr, serve.NewServer(srvOpts))
	klog.Errorf("server exited: %v", err)
	return 1
}

func runGenerate(count int, opts libdollar.GenOpts) int {
	if err := opts.Validate(); err != nil {
		klog.Errorf("%v", err)
		return 1
	}

	stream := libdollar.GeneratePuzzles(*seed, opts, count)
	if *dropDupes {
		stream = stream.DropDupes()
	}

	printOpts := dollar.DefaultPrintOpts
	printOpts.Expr = true
	n := stream.Print(os.Stdout, printOpts).PullAll()

	klog.V(1).Infof("printed %d of %d puzzles", n, count)
	return 0
}
