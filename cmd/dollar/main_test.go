package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestInitLogging(t *testing.T) {
	initLogging()

	v := flag.CommandLine.Lookup("v")
	if v == nil {
		t.Fatal("klog -v is not settable from the command line")
	}
	if v.Value.String() != "1" {
		t.Fatalf("default -v = %q, want 1", v.Value.String())
	}
	if err := flag.CommandLine.Set("v", "3"); err != nil {
		t.Fatal(err)
	}
	if v.Value.String() != "3" {
		t.Fatalf("-v = %q after override", v.Value.String())
	}
	flag.CommandLine.Set("v", "1")
}

func TestRunPythonExitCode(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"ok", "import dollar\np = dollar.parse('0[1]-1')\np.fire(0)\nassert p.counts() == (0, 1)\n", 0},
		{"exit status", "raise SystemExit(3)\n", 3},
		{"exit none", "raise SystemExit()\n", 0},
		{"exception", "raise ValueError('boom')\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pathname := filepath.Join(dir, tt.name+".py")
			if err := os.WriteFile(pathname, []byte(tt.src), 0o644); err != nil {
				t.Fatal(err)
			}
			if got := runPython(pathname); got != tt.want {
				t.Fatalf("exit code %d, want %d", got, tt.want)
			}
		})
	}
}
