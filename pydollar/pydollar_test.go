package pydollar_test

import (
	"testing"

	_ "github.com/2x3systems/dollargame/pydollar"
	"github.com/go-python/gpython/py"
	_ "github.com/go-python/gpython/stdlib"
)

func runSrc(t *testing.T, src string) py.StringDict {
	t.Helper()

	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	code, err := py.Compile(src+"\n", "<test>", py.ExecMode, 0, true)
	if err != nil {
		py.TracebackDump(err)
		t.Fatal(err)
	}
	module, err := py.RunCode(ctx, code, "<test>", nil)
	if err != nil {
		py.TracebackDump(err)
		t.Fatal(err)
	}
	return module.Globals
}

func TestParseAndFire(t *testing.T) {
	globals := runSrc(t, `
import dollar

p = dollar.parse("0-1-2")
p.fire(1)
assert p.counts() == (1, -2, 1)
assert p.debts() == (1,)
p.borrow(1)
assert p.counts() == (0, 0, 0)

q = dollar.parse("0=1")
q.fire(0)
assert q.counts() == (-2, 2)
assert q.degree(0) == 2
assert q.neighbors(0) == (1, 1)

p.set_counts([3, -1, 0])
result = p.expr()
`)

	if expr := string(globals["result"].(py.String)); expr != "0[3]-1[-1], 1-2" {
		t.Fatalf("expr = %q", expr)
	}
}

func TestGeneratedConservation(t *testing.T) {
	globals := runSrc(t, `
import dollar

p = dollar.new_puzzle(12, True, 5, 77)
assert p.num_nodes() == 12
assert p.num_edges() == 11 + 4
assert p.genus() == 4
assert p.sum() == p.genus()

total = p.sum()
before = p.counts()
for i in range(p.num_nodes()):
    p.fire(i)
    assert p.sum() == total
    p.borrow(i)
assert p.counts() == before

q = p.copy()
q.fire(0)
assert p.counts() == before

surplus = dollar.new_puzzle(15)
result = surplus.sum() - surplus.genus()
`)

	if excess := globals["result"].(py.Int); excess < 0 {
		t.Fatalf("surplus puzzle is %d below its genus", -excess)
	}
}

func TestErrors(t *testing.T) {
	runSrc(t, `
import dollar

p = dollar.parse("0-1-2")

raised = False
try:
    p.fire(3)
except IndexError:
    raised = True
assert raised

raised = False
try:
    dollar.new_puzzle(1)
except ValueError:
    raised = True
assert raised

raised = False
try:
    dollar.new_puzzle(5, 0, 2**62)
except ValueError:
    raised = True
assert raised

raised = False
try:
    dollar.parse("0-0")
except ValueError:
    raised = True
assert raised

raised = False
try:
    p.set_counts((1, 2))
except ValueError:
    raised = True
assert raised
`)
}
