// Package project manages the per-directory link between a local working
// tree and a server-side project: the project record and the paths of the
// metadata directory.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/nodalhq/nodal-cli/internal/utils"
)

const (
	// MetaDir is the per-project metadata directory.
	MetaDir    = ".nodal"
	recordFile = "project.json"
	dbFile     = "sync.db"
	lockFile   = "nodal.lock"
)

var (
	// ErrNotProject means the directory has no project record.
	ErrNotProject = errors.New("not a nodal project directory")
	// ErrCorruptRecord means a record exists but cannot be parsed. Kept
	// distinct from ErrNotProject so callers warn instead of silently
	// treating the directory as unmanaged.
	ErrCorruptRecord = errors.New("corrupt project record")
)

// Record links a local directory to a server-side project. Created once on
// clone; only LastSyncedAt is ever updated.
type Record struct {
	ProjectID    string    `json:"project_id"`
	Name         string    `json:"name"`
	ServerURL    string    `json:"server_url"`
	LastSyncedAt time.Time `json:"last_synced_at"`
}

func recordPath(root string) string {
	return filepath.Join(root, MetaDir, recordFile)
}

// JournalPath is the location of the project's hash journal database.
func JournalPath(root string) string {
	return filepath.Join(root, MetaDir, dbFile)
}

// LockPath is the location of the project's advisory lock file.
func LockPath(root string) string {
	return filepath.Join(root, MetaDir, lockFile)
}

// LoadRecord reads the project record of root. Absent and corrupt records
// are distinguishable via ErrNotProject and ErrCorruptRecord.
func LoadRecord(root string) (*Record, error) {
	data, err := os.ReadFile(recordPath(root))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotProject
		}
		return nil, fmt.Errorf("read project record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if rec.ProjectID == "" {
		return nil, fmt.Errorf("%w: missing project id", ErrCorruptRecord)
	}

	return &rec, nil
}

// Save writes the record below root, creating the metadata dir as needed.
func (r *Record) Save(root string) error {
	path := recordPath(root)
	if err := utils.EnsureParent(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// FindRoot walks upward from start until it finds a directory holding a
// project record, git-style.
func FindRoot(start string) (string, error) {
	dir, err := utils.ResolvePath(start)
	if err != nil {
		return "", err
	}

	for {
		if utils.FileExists(recordPath(dir)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotProject
		}
		dir = parent
	}
}
