package ports

import (
	"context"

	"tubegrabbot/internal/core/domain"
)

// MediaEngine is the external extraction/download engine boundary.
type MediaEngine interface {
	// Probe retrieves metadata and the stream catalog without transferring
	// media, presenting the given spoofed client identity.
	Probe(ctx context.Context, url, identity string) (*domain.ProbeResult, error)

	// Download performs the transfer described by the request and returns
	// the path of the resulting local file inside req.OutDir.
	Download(ctx context.Context, req domain.DownloadRequest) (string, error)
}

// MembershipChecker answers whether a user may proceed.
type MembershipChecker interface {
	// IsSubscribed is a soft gate: transport errors degrade to false.
	IsSubscribed(ctx context.Context, userID int64) bool
}

// Workspace hands out single-use scratch directories.
type Workspace interface {
	// Create returns a fresh directory and a cleanup func that removes it.
	Create(requestID string) (dir string, cleanup func(), err error)
}

// Fetcher downloads an auxiliary resource (e.g. a thumbnail) to a local file.
type Fetcher interface {
	FetchFile(ctx context.Context, url, destPath string) error
}

// SendMeta carries display metadata for an outbound file.
type SendMeta struct {
	Caption   string
	Title     string
	Performer string
	ThumbPath string // optional local thumbnail
}

// MediaSink relays a downloaded file back to the user.
type MediaSink interface {
	SendVideo(chatID int64, path string, meta SendMeta) error
	SendAudio(chatID int64, path string, meta SendMeta) error
}
