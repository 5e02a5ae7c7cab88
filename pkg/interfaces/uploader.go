package interfaces

import (
	"context"
	"io"
)

// UploadResult describes a successfully hosted asset.
type UploadResult struct {
	URL          string
	DeleteURL    string
	ThumbnailURL string
}

// Uploader pushes binary assets to a third-party host and returns the public
// URL the backend should reference. Implementations never retry; a rejected
// upload is a configuration problem, not a transient fault.
type Uploader interface {
	Upload(ctx context.Context, name string, body io.Reader) (*UploadResult, error)
}
