package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, root, rel, contents string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func captureExit(t *testing.T) *int {
	t.Helper()
	code := -1
	orig := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = orig })
	return &code
}

func TestContentCheckValid(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "src/content/docs/install.mdx", "---\ntitle: Install\ndescription: Setup\norder: 1\n---\n")
	code := captureExit(t)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--root", root, "docs"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, -1, *code)
	assert.Contains(t, out.String(), "docs: 1 entries OK")
}

func TestContentCheckAllCollections(t *testing.T) {
	root := t.TempDir()
	code := captureExit(t)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--root", root})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, -1, *code)
	for _, name := range []string{"docs", "changelog", "blog"} {
		assert.Contains(t, out.String(), name+": 0 entries OK")
	}
}

func TestContentCheckInvalid(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "src/content/blog/launch.mdx", "---\ntitle: Launch\n---\n")
	code := captureExit(t)

	var stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--root", root, "blog"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 1, *code)
	assert.Contains(t, stderr.String(), "launch.mdx")
}

func TestContentCheckUnknownCollection(t *testing.T) {
	code := captureExit(t)

	var stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"pages"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 2, *code)
	assert.Contains(t, stderr.String(), "unknown collection")
}
