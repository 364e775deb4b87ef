package sync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestScanFingerprintsTree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.ts":       "X",
		"lib/helper.ts": "Y",
	})

	state, err := NewScanner(root).Scan()
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"main.ts":       Fingerprint([]byte("X")),
		"lib/helper.ts": Fingerprint([]byte("Y")),
	}, state)
}

func TestScanExcludesHiddenExceptGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.ts":        "X",
		".env":           "SECRET=1",
		".gitignore":     "node_modules\n",
		".vscode/config": "{}",
	})

	state, err := NewScanner(root).Scan()
	require.NoError(t, err)

	assert.Contains(t, state, "main.ts")
	assert.Contains(t, state, ".gitignore")
	assert.NotContains(t, state, ".env")
	assert.NotContains(t, state, ".vscode/config")
}

func TestScanExcludesGeneratedDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.ts":                "X",
		"types/api.d.ts":         "declare const x: number;",
		"node_modules/pkg/i.js":  "module.exports = {}",
		"lib/node_modules/i.js":  "module.exports = {}",
		"src/types/generated.ts": "export {};",
	})

	state, err := NewScanner(root).Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{"main.ts"}, keys(state))
}

func TestScanSkipsCompiledJS(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.ts":       "X",
		"main.js":       "var X;",       // derived from main.ts
		"standalone.js": "var Y;",       // no sibling .ts, real source
		"lib/util.ts":   "Z",
		"lib/util.js":   "var Z;",
	})

	state, err := NewScanner(root).Scan()
	require.NoError(t, err)

	assert.Contains(t, state, "main.ts")
	assert.Contains(t, state, "standalone.js")
	assert.Contains(t, state, "lib/util.ts")
	assert.NotContains(t, state, "main.js")
	assert.NotContains(t, state, "lib/util.js")
}

func TestScanSkipsUnreadableFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.ts": "X"})

	// A dangling symlink fails to read on every platform and uid.
	require.NoError(t, os.Symlink(
		filepath.Join(root, "missing-target"),
		filepath.Join(root, "broken.ts"),
	))

	state, err := NewScanner(root).Scan()
	require.NoError(t, err, "an unreadable file must not fail the scan")

	assert.Contains(t, state, "main.ts")
	assert.NotContains(t, state, "broken.ts")
}

func TestScanEmptyDir(t *testing.T) {
	state, err := NewScanner(t.TempDir()).Scan()
	require.NoError(t, err)
	assert.Empty(t, state)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
