package nodalsdk

import (
	"time"
)

type CommitRequest struct {
	Message string `json:"message"`
}

type Commit struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommitLogResponse struct {
	Commits []Commit `json:"commits"`
}

// DiffStatus is the server's classification of a changed path.
type DiffStatus string

const (
	DiffAdded    DiffStatus = "added"
	DiffModified DiffStatus = "modified"
	DiffDeleted  DiffStatus = "deleted"
)

type DiffEntry struct {
	Path   string     `json:"path"`
	Status DiffStatus `json:"status"`
	Patch  string     `json:"patch,omitempty"`
}

type DiffResponse struct {
	Entries []DiffEntry `json:"entries"`
}
