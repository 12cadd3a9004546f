// Package testutil provides test helpers and utilities for airstrip tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTempFile writes content to a file in the specified directory.
func WriteTempFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err, "failed to write temp file: %s", filename)

	return path
}

// FakeBinDir creates a directory of executable stubs and returns its
// path. Tests point PATH at it to control exactly which programs the
// on-PATH probes resolve; each stub exits zero when actually spawned.
func FakeBinDir(t *testing.T, programs ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range programs {
		path := filepath.Join(dir, name)
		err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755)
		require.NoError(t, err, "failed to write stub: %s", name)
	}

	return dir
}

// IsolateHome points HOME at a fresh temp directory and returns it.
// Probes that expand ~ then resolve against a home the test controls
// instead of the developer's real one.
func IsolateHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}
