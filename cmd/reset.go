package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/YangQing-Lin/nr-cli/internal/store"
)

// runReset deletes the requested state documents for the current project
// and reports what was cleared, noting entities that were already empty.
func runReset(st *store.Store, out io.Writer) error {
	var cleared []string
	note := func(name string, removed bool, err error) error {
		if err != nil {
			return err
		}
		if removed {
			cleared = append(cleared, name)
		} else {
			cleared = append(cleared, name+" (already empty)")
		}
		return nil
	}

	if resetAll || resetFavorites {
		removed, err := st.ClearFavorites()
		if err := note("favorites", removed, err); err != nil {
			return err
		}
	}

	if resetAll || resetRecents {
		removed, err := st.ClearRecents()
		if err := note("recents", removed, err); err != nil {
			return err
		}
	}

	if resetAll || resetConfigs {
		removed, err := st.ClearScriptConfigs()
		if err := note("script configs", removed, err); err != nil {
			return err
		}
		removed, err = st.ClearArgsHistory()
		if err := note("args history", removed, err); err != nil {
			return err
		}
	}

	if len(cleared) == 0 {
		fmt.Fprintln(out, "Nothing to reset.")
		return nil
	}
	fmt.Fprintf(out, "Reset complete: %s\n", strings.Join(cleared, ", "))
	return nil
}
