package project

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

// Identity derives the stable state-directory key for a project root:
// the first 8 hex characters of the SHA-256 digest of the canonical root
// path. The same root reached through symlinks or relative paths yields
// the same identity.
func Identity(root string) string {
	canonical := root
	if abs, err := filepath.Abs(root); err == nil {
		canonical = abs
	}
	if resolved, err := filepath.EvalSymlinks(canonical); err == nil {
		canonical = resolved
	}

	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])[:8]
}
