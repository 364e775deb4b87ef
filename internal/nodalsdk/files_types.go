package nodalsdk

// RemoteFile is one entry of the server manifest.
type RemoteFile struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

type FileListResponse struct {
	Files []RemoteFile `json:"files"`
}

// FileUpload carries one file of an upload batch. Content is base64.
type FileUpload struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type UploadRequest struct {
	Files []FileUpload `json:"files"`
}

// UploadedFile is the server's confirmation for one accepted file.
type UploadedFile struct {
	Path     string   `json:"path"`
	Hash     string   `json:"hash"`
	Warnings []string `json:"warnings,omitempty"`
}

type UploadResponse struct {
	Files []UploadedFile `json:"files"`
}
