// Package runner executes the script the picker selected. The picker
// returns an Invocation value; the CLI layer restores the terminal and
// then hands the invocation here, so the child owns the real stdio.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/YangQing-Lin/nr-cli/internal/envfile"
	"github.com/YangQing-Lin/nr-cli/internal/project"
)

// execCommand is swapped in tests to point the child at the test binary.
var execCommand = exec.Command

// Invocation is the fully resolved run directive.
type Invocation struct {
	// Manager is the package manager that launches the script.
	Manager project.Manager
	// Script is the manifest script name.
	Script string
	// Dir is the working directory for the child.
	Dir string
	// ExtraArgs are appended after the script name.
	ExtraArgs []string
	// EnvFiles are absolute .env paths in merge order (root group first,
	// package group second); their variables are injected over the
	// inherited environment.
	EnvFiles []string
}

// CommandLine renders the command for previews and error messages.
func (inv Invocation) CommandLine() string {
	bin, args := inv.Manager.Command(inv.Script, inv.ExtraArgs)
	return strings.Join(append([]string{bin}, args...), " ")
}

// Run launches the invocation with inherited stdio and returns the child's
// exit code. Spawn failures report to stderr and count as exit 1.
func Run(inv Invocation) int {
	return run(inv, os.Stderr)
}

func run(inv Invocation, stderr io.Writer) int {
	bin, args := inv.Manager.Command(inv.Script, inv.ExtraArgs)

	cmd := execCommand(bin, args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(inv.EnvFiles) > 0 {
		cmd.Env = append(os.Environ(), envSlice(envfile.Load(inv.EnvFiles))...)
	}

	err := cmd.Run()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
		// Killed by a signal; no code to propagate.
		return 1
	}

	reportSpawnFailure(stderr, inv, bin, err)
	return 1
}

func reportSpawnFailure(w io.Writer, inv Invocation, bin string, err error) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "failed to run '%s'\n", inv.CommandLine())
	if errors.Is(err, exec.ErrNotFound) {
		fmt.Fprintf(w, "%s is not installed or not on PATH\n", bin)
		fmt.Fprintln(w, inv.Manager.InstallHint())
	} else {
		fmt.Fprintf(w, "error: %v\n", err)
		fmt.Fprintf(w, "try running it manually: %s\n", inv.CommandLine())
	}
	fmt.Fprintln(w)
}

// envSlice flattens injected variables in sorted order; os/exec keeps the
// last duplicate, so appending these after os.Environ() overrides.
func envSlice(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
