package pydollar

// Copyright 2018 The go-python Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

import (
	"strings"

	"github.com/2x3systems/dollargame/dollar"
	"github.com/2x3systems/dollargame/libdollar"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyPuzzleType = py.NewType("Puzzle", "a dollar game puzzle: a connected multigraph of chip counts")
)

type pyPuzzle struct {
	*dollar.Puzzle
}

func (X pyPuzzle) Type() *py.Type {
	return pyPuzzleType
}

func (X pyPuzzle) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	X.WriteAsString(&writer, dollar.DefaultPrintOpts)
	return py.String(writer.String()), nil
}

func (X pyPuzzle) M__repr__() (py.Object, error) {
	return py.String(libdollar.FormatExpr(X.Puzzle)), nil
}

// intArg returns args[i] as an int, or defaultVal if args has no item i.
func intArg(args py.Tuple, i int, defaultVal int) (int, error) {
	if i >= len(args) {
		return defaultVal, nil
	}
	switch v := args[i].(type) {
	case py.Bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	val, err := py.GetInt(args[i])
	if err != nil {
		return 0, err
	}
	return int(val), nil
}

func nodeArg(X pyPuzzle, args py.Tuple) (dollar.NodeID, error) {
	if len(args) != 1 {
		return 0, py.ExceptionNewf(py.TypeError, "expected 1 argument (got %d)", len(args))
	}
	id, err := intArg(args, 0, 0)
	if err != nil {
		return 0, err
	}
	nodeID := dollar.NodeID(id)
	if int(nodeID) != id {
		return 0, py.ExceptionNewf(py.IndexError, "node %d out of range", id)
	}
	if err = X.CheckNodeID(nodeID); err != nil {
		return 0, py.ExceptionNewf(py.IndexError, "%v", err)
	}
	return nodeID, nil
}

func idsToTuple(ids []dollar.NodeID) py.Tuple {
	tuple := make(py.Tuple, len(ids))
	for i, id := range ids {
		tuple[i] = py.Int(id)
	}
	return tuple
}

// Arg 1 (int): node count
// Arg 2 (bool, optional): require exact sum
// Arg 3 (int, optional): count range
// Arg 4 (int, optional): seed (0 for a random seed)
func py_NewPuzzle(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 || len(args) > 4 {
		return nil, py.ExceptionNewf(py.TypeError, "new_puzzle(n, exact=0, range=%d, seed=0) takes 1 to 4 arguments (got %d)", libdollar.DefaultGenOpts.Range, len(args))
	}

	opts := libdollar.DefaultGenOpts
	var (
		exact int
		seed  int
		err   error
	)
	if opts.NodeCount, err = intArg(args, 0, opts.NodeCount); err != nil {
		return nil, err
	}
	if exact, err = intArg(args, 1, 0); err != nil {
		return nil, err
	}
	if opts.Range, err = intArg(args, 2, opts.Range); err != nil {
		return nil, err
	}
	if seed, err = intArg(args, 3, 0); err != nil {
		return nil, err
	}
	opts.ExactSum = exact != 0

	X, err := libdollar.GenerateWith(libdollar.NewRand(int64(seed)), opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return pyPuzzle{X}, nil
}

// Arg 1 (str): puzzle expression, e.g. "0[2]-1-2[-1], 2=0"
func py_Parse(module py.Object, args py.Tuple) (py.Object, error) {
	var exprObj py.Object
	err := py.ParseTuple(args, "s", &exprObj)
	if err != nil {
		return nil, err
	}
	X, err := libdollar.ParseExpr(string(exprObj.(py.String)))
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return pyPuzzle{X}, nil
}

func py_Puzzle_Fire(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	id, err := nodeArg(X, args)
	if err != nil {
		return nil, err
	}
	X.Fire(id)
	return py.None, nil
}

func py_Puzzle_Borrow(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	id, err := nodeArg(X, args)
	if err != nil {
		return nil, err
	}
	X.Borrow(id)
	return py.None, nil
}

func py_Puzzle_Counts(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	counts := X.Counts(nil)
	tuple := make(py.Tuple, len(counts))
	for i, c := range counts {
		tuple[i] = py.Int(c)
	}
	return tuple, nil
}

func py_Puzzle_SetCounts(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "set_counts() takes 1 argument (got %d)", len(args))
	}

	var items []py.Object
	switch seq := args[0].(type) {
	case py.Tuple:
		items = seq
	case *py.List:
		items = seq.Items
	default:
		return nil, py.ExceptionNewf(py.TypeError, "expected tuple or list (got %v)", args[0].Type().Name)
	}

	counts := make([]int, len(items))
	for i, item := range items {
		val, err := py.GetInt(item)
		if err != nil {
			return nil, err
		}
		counts[i] = int(val)
	}
	if err := X.SetCounts(counts); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.None, nil
}

func py_Puzzle_Genus(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	return py.Int(X.Genus()), nil
}

func py_Puzzle_Sum(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	return py.Int(X.Sum()), nil
}

func py_Puzzle_NumNodes(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	return py.Int(X.NumNodes()), nil
}

func py_Puzzle_NumEdges(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	return py.Int(len(X.Edges)), nil
}

func py_Puzzle_Degree(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	id, err := nodeArg(X, args)
	if err != nil {
		return nil, err
	}
	return py.Int(X.Node(id).Degree()), nil
}

func py_Puzzle_Neighbors(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	id, err := nodeArg(X, args)
	if err != nil {
		return nil, err
	}
	return idsToTuple(X.Node(id).Adj), nil
}

func py_Puzzle_Debts(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	return idsToTuple(X.Debts()), nil
}

func py_Puzzle_Expr(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	return py.String(libdollar.FormatExpr(X.Puzzle)), nil
}

func py_Puzzle_Copy(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyPuzzle)
	return pyPuzzle{X.Clone()}, nil
}

func init() {

	/////////////////////////////////
	// Puzzle
	{
		pyPuzzleType.Dict["fire"] = py.MustNewMethod("fire", py_Puzzle_Fire, 0, "gives one chip from the given node across each of its edges")
		pyPuzzleType.Dict["borrow"] = py.MustNewMethod("borrow", py_Puzzle_Borrow, 0, "takes one chip into the given node across each of its edges")
		pyPuzzleType.Dict["counts"] = py.MustNewMethod("counts", py_Puzzle_Counts, 0, "returns each node's count as a tuple")
		pyPuzzleType.Dict["set_counts"] = py.MustNewMethod("set_counts", py_Puzzle_SetCounts, 0, "assigns each node's count from a tuple or list")
		pyPuzzleType.Dict["genus"] = py.MustNewMethod("genus", py_Puzzle_Genus, 0, "")
		pyPuzzleType.Dict["sum"] = py.MustNewMethod("sum", py_Puzzle_Sum, 0, "")
		pyPuzzleType.Dict["num_nodes"] = py.MustNewMethod("num_nodes", py_Puzzle_NumNodes, 0, "")
		pyPuzzleType.Dict["num_edges"] = py.MustNewMethod("num_edges", py_Puzzle_NumEdges, 0, "")
		pyPuzzleType.Dict["degree"] = py.MustNewMethod("degree", py_Puzzle_Degree, 0, "")
		pyPuzzleType.Dict["neighbors"] = py.MustNewMethod("neighbors", py_Puzzle_Neighbors, 0, "returns the far end of each of the node's edges")
		pyPuzzleType.Dict["debts"] = py.MustNewMethod("debts", py_Puzzle_Debts, 0, "returns the nodes holding a negative count")
		pyPuzzleType.Dict["expr"] = py.MustNewMethod("expr", py_Puzzle_Expr, 0, "returns this puzzle as a puzzle expression")
		pyPuzzleType.Dict["copy"] = py.MustNewMethod("copy", py_Puzzle_Copy, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("new_puzzle", py_NewPuzzle, 0, "new_puzzle(n, exact=0, range=10, seed=0) generates a solvable puzzle"),
			py.MustNewMethod("parse", py_Parse, 0, "parse(expr) builds a puzzle from a puzzle expression"),
		}

		globals := py.StringDict{
			"LIB_VERSION":   py.String(LIB_VERSION),
			"DEFAULT_NODES": py.Int(libdollar.DefaultGenOpts.NodeCount),
			"DEFAULT_RANGE": py.Int(libdollar.DefaultGenOpts.Range),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "dollar",
				Doc:  "dollar game (chip-firing) gpython module",
			},
			Methods: methods,
			Globals: globals,
		})
	}
}
