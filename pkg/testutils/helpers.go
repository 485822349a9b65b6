// Package testutils holds helpers shared by tests that need a console tree on disk.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// WriteTree creates files under a fresh temp dir and returns it. Names use
// forward slashes and parent directories are created as needed.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(name)), content)
	}
	return root
}

// WriteFile writes content to path, creating parent directories
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// StripANSI removes ANSI escape sequences from a rendered view
func StripANSI(str string) string {
	return ansi.Strip(str)
}
