package settings

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultIndent matches the indentation Windows Terminal writes.
const DefaultIndent = "    "

// PersistOptions controls how a document is written back.
type PersistOptions struct {
	// Indent is the per-level indentation; empty writes compact JSON.
	Indent string
	// Backup copies the current file to <path>.bak before replacing it.
	Backup bool
}

// Persist writes doc to path as UTF-8 JSON. The file is replaced atomically
// through a temp file in the same directory, so on failure the previous
// content stays in place. A symlinked path is written through to its
// target, which keeps the link intact. It returns the backup path when one
// was written.
func Persist(path string, doc *Document, opts PersistOptions) (string, error) {
	data, err := doc.Encode(opts.Indent)
	if err != nil {
		return "", writeError(path, err)
	}

	target := resolveTarget(path)

	mode := os.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	var backupPath string
	if opts.Backup {
		backupPath = target + ".bak"
		if err := copyFile(target, backupPath, mode); err != nil {
			return "", writeError(path, fmt.Errorf("writing backup: %w", err))
		}
	}

	if err := atomicWriteToFile(target, data, mode); err != nil {
		return backupPath, writeError(path, err)
	}
	return backupPath, nil
}

// resolveTarget follows symlinks so the rename replaces the real file
// rather than the link. A path that cannot be resolved is used as is.
func resolveTarget(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

// atomicWriteToFile writes data to path using temp file + rename pattern.
func atomicWriteToFile(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, mode)
}
