package main

import (
	"fmt"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/plan-systems/klog"

	_ "github.com/2x3systems/dollargame/pydollar"
	_ "github.com/go-python/gpython/stdlib"
)

const replStartup = `
import dollar
print("dollar game", dollar.LIB_VERSION, "-- try: p = dollar.new_puzzle(8); p.fire(0); print(p)")
`

// runPython runs the given script (or a REPL if pathname is empty) and returns the process exit code.
func runPython(pathname string) int {
	ctx := py.NewContext(py.DefaultContextOpts())

	var err error
	if len(pathname) == 0 {
		replCtx := repl.New(ctx)

		_, err = py.RunSrc(ctx, replStartup, "<startup>", replCtx.Module)
		if err == nil {
			cli.RunREPL(replCtx)
		}

	} else {
		startTime := time.Now()
		fmt.Printf("<<<>>>   executing '%s'   <<<>>>\n", pathname)

		_, err = py.RunFile(ctx, pathname, py.CompileOpts{}, nil)
		if err == nil {
			fmt.Printf("<<<>>>   execution complete: %v   <<<>>>\n", time.Since(startTime))
		}
	}

	ctx.Close()
	<-ctx.Done()

	return scriptExitCode(err)
}

// scriptExitCode maps a script's outcome to an exit code: SystemExit carries its own status
// (None denotes 0), any other exception is dumped and exits with 1.
func scriptExitCode(err error) int {
	if err == nil {
		return 0
	}
	if py.IsException(py.SystemExit, err) {
		return systemExitCode(err)
	}
	py.TracebackDump(err)
	klog.Errorf("%v", err)
	return 1
}

func systemExitCode(err error) int {
	var exc *py.Exception
	switch e := err.(type) {
	case py.ExceptionInfo:
		exc, _ = e.Value.(*py.Exception)
	case *py.Exception:
		exc = e
	}
	if exc == nil {
		return 0
	}
	args, _ := exc.Args.(py.Tuple)
	if len(args) == 0 {
		return 0
	}
	switch arg := args[0].(type) {
	case py.Int:
		return int(arg)
	case py.NoneType:
		return 0
	default:
		fmt.Println(arg)
		return 1
	}
}
