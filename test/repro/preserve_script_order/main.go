// Reproduces the script-order guarantee: scripts must come back in
// declaration order, because ranking uses that order as its final
// tie-break and encoding/json maps would silently sort the keys.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/YangQing-Lin/nr-cli/internal/manifest"
)

func main() {
	tmpDir, err := os.MkdirTemp("", "nr-pso-*")
	if err != nil {
		fatalf("mkdirtemp: %v", err)
	}

	cleanup := false
	for _, arg := range os.Args[1:] {
		if arg == "--cleanup" {
			cleanup = true
		}
	}

	// Deliberately non-alphabetical names with a non-string value mixed in.
	body := `{
  "name": "pso",
  "scripts": {
    "zz:watch": "vite --watch",
    "build": "vite build",
    "03-bench": "vitest bench",
    "broken": 42,
    "aaa": "echo a"
  }
}`
	if err := os.WriteFile(filepath.Join(tmpDir, "package.json"), []byte(body), 0o644); err != nil {
		fatalf("write manifest: %v", err)
	}

	m, err := manifest.Load(tmpDir)
	if err != nil {
		fatalf("Load(%s): %v", tmpDir, err)
	}

	want := []string{"zz:watch", "build", "03-bench", "aaa"}
	got := make([]string, 0, len(m.Scripts))
	for _, s := range m.Scripts {
		got = append(got, s.Name)
	}

	fmt.Printf("tmpDir=%s\n\n", tmpDir)
	fmt.Println("script order (declared -> loaded)")
	fmt.Printf("  declared: %s\n", strings.Join(want, " | "))
	fmt.Printf("  loaded  : %s\n", strings.Join(got, " | "))

	ok := len(got) == len(want)
	for i := 0; ok && i < len(want); i++ {
		ok = got[i] == want[i]
	}
	if !ok {
		fatalf("declaration order not preserved")
	}
	fmt.Println("\ndeclaration order preserved; non-string value skipped")

	if cleanup {
		_ = os.RemoveAll(tmpDir)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
