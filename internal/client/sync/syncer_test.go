package sync

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodalhq/nodal-cli/internal/nodalsdk"
)

// fakeRemote is an in-memory RemoteFiles implementation. Upload decodes
// the batch and stores content keyed by path, like the real server.
type fakeRemote struct {
	files map[string][]byte

	uploadBatches [][]nodalsdk.FileUpload
	uploadErr     error
	downloadErr   map[string]error
	warnings      map[string][]string
}

func newFakeRemote(files map[string]string) *fakeRemote {
	fr := &fakeRemote{
		files:       make(map[string][]byte, len(files)),
		downloadErr: make(map[string]error),
		warnings:    make(map[string][]string),
	}
	for path, content := range files {
		fr.files[path] = []byte(content)
	}
	return fr
}

func (f *fakeRemote) List(ctx context.Context, projectID string) ([]nodalsdk.RemoteFile, error) {
	out := make([]nodalsdk.RemoteFile, 0, len(f.files))
	for path, content := range f.files {
		out = append(out, nodalsdk.RemoteFile{
			Path: path,
			Hash: Fingerprint(content),
			Size: int64(len(content)),
		})
	}
	return out, nil
}

func (f *fakeRemote) Upload(ctx context.Context, projectID string, batch []nodalsdk.FileUpload) ([]nodalsdk.UploadedFile, error) {
	f.uploadBatches = append(f.uploadBatches, batch)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}

	out := make([]nodalsdk.UploadedFile, 0, len(batch))
	for _, fu := range batch {
		content, err := base64.StdEncoding.DecodeString(fu.Content)
		if err != nil {
			return nil, err
		}
		f.files[fu.Path] = content
		out = append(out, nodalsdk.UploadedFile{
			Path:     fu.Path,
			Hash:     Fingerprint(content),
			Warnings: f.warnings[fu.Path],
		})
	}
	return out, nil
}

func (f *fakeRemote) Download(ctx context.Context, projectID string, path string) ([]byte, error) {
	if err := f.downloadErr[path]; err != nil {
		return nil, err
	}
	content, ok := f.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return content, nil
}

func newTestSyncer(t *testing.T, root string, remote RemoteFiles) *Syncer {
	t.Helper()
	journal := NewHashJournal(filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, journal.Open())
	t.Cleanup(func() { journal.Close() })
	return NewSyncer(root, "prj_1", remote, journal)
}

func TestSyncCloneThenEdit(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	remote := newFakeRemote(map[string]string{"main.ts": "X"})
	syncer := newTestSyncer(t, root, remote)

	// First pass into an empty directory behaves like a clone.
	res, err := syncer.Sync(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Uploaded)
	assert.Equal(t, []string{"main.ts"}, res.Downloaded)

	content, err := os.ReadFile(filepath.Join(root, "main.ts"))
	require.NoError(t, err)
	assert.Equal(t, "X", string(content))

	// Edit locally and sync again: exactly the edited file goes up.
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.ts"), []byte("Y"), 0o644))

	res, err = syncer.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.ts"}, res.Uploaded)
	assert.Empty(t, res.Downloaded)

	hash, ok, err := syncer.journal.Get("main.ts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Fingerprint([]byte("Y")), hash)

	// Nothing left to do.
	res, err = syncer.Sync(ctx)
	require.NoError(t, err)
	assert.False(t, res.HasChanges())
	assert.Equal(t, 1, res.Unchanged)
}

func TestSyncUploadsInOneBatch(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.ts":     "1",
		"b.ts":     "2",
		"lib/c.ts": "3",
	})
	remote := newFakeRemote(nil)
	syncer := newTestSyncer(t, root, remote)

	res, err := syncer.Sync(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.ts", "b.ts", "lib/c.ts"}, res.Uploaded)
	require.Len(t, remote.uploadBatches, 1)
	assert.Len(t, remote.uploadBatches[0], 3)

	// Content travels base64-encoded.
	for _, fu := range remote.uploadBatches[0] {
		_, err := base64.StdEncoding.DecodeString(fu.Content)
		assert.NoError(t, err)
	}
}

func TestSyncUploadFailureAborts(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.ts": "X"})
	remote := newFakeRemote(map[string]string{"other.ts": "Z"})
	remote.uploadErr = errors.New("server rejected batch")
	syncer := newTestSyncer(t, root, remote)

	_, err := syncer.Sync(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload batch")

	// The journal keeps its pre-sync state and no downloads ran.
	count, err := syncer.journal.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoFileExists(t, filepath.Join(root, "other.ts"))
}

func TestSyncDownloadFailureIsWarning(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	remote := newFakeRemote(map[string]string{
		"good.ts": "G",
		"bad.ts":  "B",
	})
	remote.downloadErr["bad.ts"] = errors.New("boom")
	syncer := newTestSyncer(t, root, remote)

	res, err := syncer.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"good.ts"}, res.Downloaded)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "bad.ts")

	// Failed downloads are not recorded as synced, so the next pass
	// retries them.
	_, ok, err := syncer.journal.Get("bad.ts")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSyncSurfacesServerWarnings(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.ts": "X"})
	remote := newFakeRemote(nil)
	remote.warnings["main.ts"] = []string{"unused variable 'x'"}
	syncer := newTestSyncer(t, root, remote)

	res, err := syncer.Sync(ctx)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "unused variable")
}

func TestSyncLocalDeleteComesBack(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	remote := newFakeRemote(map[string]string{"main.ts": "X"})
	syncer := newTestSyncer(t, root, remote)

	_, err := syncer.Sync(ctx)
	require.NoError(t, err)

	// Removing the file locally makes it server-only again, so the next
	// sync restores it instead of deleting it remotely.
	require.NoError(t, os.Remove(filepath.Join(root, "main.ts")))

	res, err := syncer.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.ts"}, res.Downloaded)
	assert.FileExists(t, filepath.Join(root, "main.ts"))
}

func TestSyncRejectsEscapingDownloadPath(t *testing.T) {
	ctx := context.Background()
	parent := t.TempDir()
	root := filepath.Join(parent, "project")
	require.NoError(t, os.MkdirAll(root, 0o755))

	// A manifest path with traversal segments must never be written
	// outside the project root.
	remote := newFakeRemote(map[string]string{
		"good.ts":      "G",
		"../evil.ts":   "E",
		"a/../../b.ts": "B",
	})
	syncer := newTestSyncer(t, root, remote)

	res, err := syncer.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"good.ts"}, res.Downloaded)
	assert.Len(t, res.Warnings, 2)

	assert.FileExists(t, filepath.Join(root, "good.ts"))
	assert.NoFileExists(t, filepath.Join(parent, "evil.ts"))
	assert.NoFileExists(t, filepath.Join(parent, "b.ts"))
}

func TestChanges(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeTree(t, root, map[string]string{"local.ts": "L"})
	remote := newFakeRemote(map[string]string{"remote.ts": "R"})
	syncer := newTestSyncer(t, root, remote)

	cs, err := syncer.Changes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"local.ts"}, cs.Upload)
	assert.Equal(t, []string{"remote.ts"}, cs.Download)
	assert.Empty(t, cs.Delete)

	// Changes is read-only: the tree and journal are untouched.
	assert.NoFileExists(t, filepath.Join(root, "remote.ts"))
	count, err := syncer.journal.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
