package sync

import (
	"sort"

	"github.com/nodalhq/nodal-cli/internal/nodalsdk"
)

// ChangeSet is the classification of one reconciliation pass. A path
// appears in at most one of Upload/Download. Delete is always empty in the
// current design: files removed locally are treated as missing and come
// back on the next sync (see the status command help).
type ChangeSet struct {
	Upload   []string
	Download []string
	Delete   []string
}

func (c *ChangeSet) HasChanges() bool {
	return len(c.Upload) > 0 || len(c.Download) > 0 || len(c.Delete) > 0
}

// Reconcile classifies paths by comparing the local fingerprint mapping
// against the server manifest. Local-only and locally-changed paths are
// uploads (local wins, no merge and no conflict detection), server-only
// paths are downloads, identical fingerprints are unchanged. Pure function;
// output slices are sorted.
func Reconcile(local map[string]string, remote []nodalsdk.RemoteFile) *ChangeSet {
	remoteHashes := make(map[string]string, len(remote))
	for _, rf := range remote {
		remoteHashes[rf.Path] = rf.Hash
	}

	cs := &ChangeSet{
		Upload:   []string{},
		Download: []string{},
		Delete:   []string{},
	}

	for path, hash := range local {
		remoteHash, ok := remoteHashes[path]
		if !ok || remoteHash != hash {
			cs.Upload = append(cs.Upload, path)
		}
	}

	for path := range remoteHashes {
		if _, ok := local[path]; !ok {
			cs.Download = append(cs.Download, path)
		}
	}

	sort.Strings(cs.Upload)
	sort.Strings(cs.Download)

	return cs
}
