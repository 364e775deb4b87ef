package nodalsdk

import (
	"time"
)

// Project is the server's record of an automation project.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SizeBytes int64     `json:"sizeBytes"`
	FileCount int       `json:"fileCount"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProjectListResponse struct {
	Projects []Project `json:"projects"`
}

type CreateProjectRequest struct {
	Name string `json:"name"`
}
