package domain

import (
	"errors"
	"fmt"
)

// Sentinel conditions recovered at the interaction boundary.
var (
	// ErrNoSuitableFormat means the catalog satisfied none of the
	// selector's fallbacks (in practice: an empty catalog).
	ErrNoSuitableFormat = errors.New("no suitable format")

	// ErrNoActiveJob means the user pressed a format button with no
	// pending URL.
	ErrNoActiveJob = errors.New("no active job")

	// ErrNotSubscribed means the subscription gate denied the user.
	ErrNotSubscribed = errors.New("not subscribed")
)

// ProbeError wraps the last engine error after all client identities failed.
type ProbeError struct {
	Err error
}

func (e *ProbeError) Error() string { return fmt.Sprintf("probe failed: %v", e.Err) }
func (e *ProbeError) Unwrap() error { return e.Err }

// DownloadError wraps an engine transfer failure.
type DownloadError struct {
	Err error
}

func (e *DownloadError) Error() string { return fmt.Sprintf("download failed: %v", e.Err) }
func (e *DownloadError) Unwrap() error { return e.Err }

// SendError wraps a transport failure while relaying the file.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return fmt.Sprintf("send failed: %v", e.Err) }
func (e *SendError) Unwrap() error { return e.Err }

// OversizeError reports a downloaded file over the upload ceiling.
type OversizeError struct {
	Size  int64
	Title string
}

func (e *OversizeError) Error() string {
	return fmt.Sprintf("file too large to send: %s", HumanSize(e.Size))
}
