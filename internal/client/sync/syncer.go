package sync

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nodalhq/nodal-cli/internal/nodalsdk"
	"github.com/nodalhq/nodal-cli/internal/utils"
)

// RemoteFiles is the slice of the platform API the syncer needs. The
// concrete implementation is nodalsdk.FilesAPI; tests inject fakes.
type RemoteFiles interface {
	List(ctx context.Context, projectID string) ([]nodalsdk.RemoteFile, error)
	Upload(ctx context.Context, projectID string, files []nodalsdk.FileUpload) ([]nodalsdk.UploadedFile, error)
	Download(ctx context.Context, projectID string, path string) ([]byte, error)
}

// Result summarizes one sync pass.
type Result struct {
	Uploaded   []string
	Downloaded []string
	Unchanged  int
	// Warnings holds per-file, non-fatal problems: failed downloads and
	// server-side compilation warnings. They never fail the sync.
	Warnings []string
}

func (r *Result) HasChanges() bool {
	return len(r.Uploaded) > 0 || len(r.Downloaded) > 0
}

// Syncer reconciles a project directory against the server and applies the
// classification: one batched upload, then sequential downloads.
type Syncer struct {
	rootDir   string
	projectID string
	remote    RemoteFiles
	scanner   *Scanner
	journal   *HashJournal
}

func NewSyncer(rootDir string, projectID string, remote RemoteFiles, journal *HashJournal) *Syncer {
	return &Syncer{
		rootDir:   rootDir,
		projectID: projectID,
		remote:    remote,
		scanner:   NewScanner(rootDir),
		journal:   journal,
	}
}

// Changes computes the classification without applying it.
func (s *Syncer) Changes(ctx context.Context) (*ChangeSet, error) {
	local, err := s.scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("scan local state: %w", err)
	}

	remote, err := s.remote.List(ctx, s.projectID)
	if err != nil {
		return nil, fmt.Errorf("get server manifest: %w", err)
	}

	return Reconcile(local, remote), nil
}

// Sync runs the full pass: scan, reconcile, upload the whole upload set in
// one batch, download server-only files one at a time, then persist the
// post-sync fingerprint mapping. An upload batch failure aborts the sync; a
// single failed download is reported as a warning and the loop continues.
func (s *Syncer) Sync(ctx context.Context) (*Result, error) {
	local, err := s.scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("scan local state: %w", err)
	}

	remote, err := s.remote.List(ctx, s.projectID)
	if err != nil {
		return nil, fmt.Errorf("get server manifest: %w", err)
	}

	remoteHashes := make(map[string]string, len(remote))
	for _, rf := range remote {
		remoteHashes[rf.Path] = rf.Hash
	}

	cs := Reconcile(local, remote)
	slog.Debug("reconcile", "uploads", len(cs.Upload), "downloads", len(cs.Download))

	result := &Result{Unchanged: len(local) - len(cs.Upload)}

	// The post-sync mapping starts from the scan; uploaded paths get the
	// server-confirmed fingerprint, downloaded paths the manifest one.
	newState := make(map[string]string, len(local)+len(cs.Download))
	for path, hash := range local {
		newState[path] = hash
	}

	if len(cs.Upload) > 0 {
		uploaded, err := s.uploadBatch(ctx, cs.Upload)
		if err != nil {
			// partial upload state is not safe to reconcile, bail out
			return nil, fmt.Errorf("upload batch: %w", err)
		}
		for _, uf := range uploaded {
			newState[uf.Path] = uf.Hash
			result.Uploaded = append(result.Uploaded, uf.Path)
			for _, w := range uf.Warnings {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", uf.Path, w))
			}
		}
	}

	for _, path := range cs.Download {
		if err := s.downloadFile(ctx, path); err != nil {
			slog.Warn("sync: download failed", "path", path, "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: download failed: %v", path, err))
			continue
		}
		newState[path] = remoteHashes[path]
		result.Downloaded = append(result.Downloaded, path)
	}

	if err := s.journal.Replace(newState); err != nil {
		return nil, fmt.Errorf("persist hash mapping: %w", err)
	}

	return result, nil
}

func (s *Syncer) uploadBatch(ctx context.Context, paths []string) ([]nodalsdk.UploadedFile, error) {
	batch := make([]nodalsdk.FileUpload, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(filepath.Join(s.rootDir, filepath.FromSlash(path)))
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", path, err)
		}
		batch = append(batch, nodalsdk.FileUpload{
			Path:    path,
			Content: base64.StdEncoding.EncodeToString(content),
		})
	}

	return s.remote.Upload(ctx, s.projectID, batch)
}

func (s *Syncer) downloadFile(ctx context.Context, path string) error {
	target, err := s.localTarget(path)
	if err != nil {
		return err
	}

	content, err := s.remote.Download(ctx, s.projectID, path)
	if err != nil {
		return err
	}

	if err := utils.EnsureParent(target); err != nil {
		return fmt.Errorf("ensure parent: %w", err)
	}

	return os.WriteFile(target, content, 0o644)
}

// localTarget maps a manifest path to its on-disk location, rejecting
// paths that resolve outside the project root. Manifest paths come from
// the server and are not trusted.
func (s *Syncer) localTarget(path string) (string, error) {
	target := filepath.Join(s.rootDir, filepath.FromSlash(path))

	rel, err := filepath.Rel(s.rootDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the project directory", path)
	}

	return target, nil
}
