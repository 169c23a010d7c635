// Package cmd wires the nr command line: project discovery, the reset
// flags, the picker session, and the execution handoff.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/YangQing-Lin/nr-cli/internal/manifest"
	"github.com/YangQing-Lin/nr-cli/internal/project"
	"github.com/YangQing-Lin/nr-cli/internal/runner"
	"github.com/YangQing-Lin/nr-cli/internal/store"
	"github.com/YangQing-Lin/nr-cli/internal/tui"
	"github.com/YangQing-Lin/nr-cli/internal/version"
)

var (
	configDir      string
	resetAll       bool
	resetFavorites bool
	resetRecents   bool
	resetConfigs   bool
)

// exitCode is the child's exit code, propagated by Execute after the
// command returns.
var exitCode int

// tuiRunner launches the picker session and returns the final model.
// Tests stub it; the real launcher refuses to start without a terminal.
var tuiRunner = func(m tui.Model) (tea.Model, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, errors.New("interactive terminal required (stdin or stdout is not a TTY)")
	}
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

var rootCmd = &cobra.Command{
	Use:   "nr",
	Short: "TUI-based npm script runner with fuzzy search",
	Long: `nr discovers the scripts declared by the nearest package.json and
runs the one you pick.

Run it in a directory containing package.json to browse scripts with
fuzzy search, favorites, and recent-use ranking. Press Tab on a script
to attach .env files and extra arguments before it starts.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		code, err := run(cmd.Context(), cwd)
		if err != nil {
			return err
		}
		exitCode = code
		return nil
	},
}

// Execute runs the root command, printing errors to stderr. The process
// exits with the launched script's code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func init() {
	rootCmd.Version = version.GetVersion()
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "print the version and exit")

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "override the state directory root")
	rootCmd.Flags().BoolVar(&resetAll, "reset", false, "clear favorites, recents, and script configs for the current project")
	rootCmd.Flags().BoolVar(&resetFavorites, "reset-favorites", false, "clear favorites for the current project")
	rootCmd.Flags().BoolVar(&resetRecents, "reset-recents", false, "clear recents for the current project")
	rootCmd.Flags().BoolVar(&resetConfigs, "reset-configs", false, "clear script configs and args history for the current project")
}

// run resolves the project around workDir, handles the reset flags, and
// otherwise drives one picker session followed by the execution handoff.
// The returned code is the launched script's exit code.
func run(ctx context.Context, workDir string) (int, error) {
	pctx, err := project.Build(ctx, workDir)
	if err != nil {
		return 0, err
	}

	root := configDir
	if root == "" {
		root, err = store.DefaultRoot()
		if err != nil {
			return 0, err
		}
	}
	st := store.Load(root, pctx.ID)

	if resetAll || resetFavorites || resetRecents || resetConfigs {
		return 0, runReset(st, os.Stdout)
	}

	if len(pctx.Package.Scripts) == 0 {
		printEmptyCatalogHelp(os.Stderr, filepath.Join(pctx.PackageRoot, manifest.FileName))
		return 1, nil
	}

	final, err := tuiRunner(tui.New(pctx, st))
	if err != nil {
		return 0, fmt.Errorf("failed to run picker: %w", err)
	}
	m, ok := final.(tui.Model)
	if !ok {
		return 0, fmt.Errorf("picker returned unexpected model %T", final)
	}

	inv := m.Result()
	if inv == nil {
		return 0, nil
	}

	// The terminal is restored at this point; the child owns the real
	// stdio from here.
	if err := st.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save state: %v\n", err)
	}
	return runner.Run(*inv), nil
}

// printEmptyCatalogHelp explains how to make a manifest runnable.
func printEmptyCatalogHelp(w io.Writer, manifestPath string) {
	fmt.Fprintf(w, "❌ No scripts found in %s\n", manifestPath)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "💡 To use nr, add scripts to your package.json:")
	fmt.Fprintln(w, "   {")
	fmt.Fprintln(w, `     "scripts": {`)
	fmt.Fprintln(w, `       "dev": "vite",`)
	fmt.Fprintln(w, `       "build": "vite build",`)
	fmt.Fprintln(w, `       "test": "vitest"`)
	fmt.Fprintln(w, "     }")
	fmt.Fprintln(w, "   }")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "📖 Learn more: https://docs.npmjs.com/cli/v10/using-npm/scripts")
}
