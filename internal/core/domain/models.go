package domain

import "fmt"

// QualityTier is the user-selected download target.
type QualityTier string

const (
	TierBest  QualityTier = "best"
	Tier720   QualityTier = "720"
	Tier360   QualityTier = "360"
	TierAudio QualityTier = "audio"
)

// ParseTier maps a callback payload to a QualityTier.
func ParseTier(s string) (QualityTier, bool) {
	switch QualityTier(s) {
	case TierBest, Tier720, Tier360, TierAudio:
		return QualityTier(s), true
	}
	return "", false
}

// HeightCeiling returns the maximum height for the tier, or 0 when unlimited.
func (t QualityTier) HeightCeiling() int {
	switch t {
	case Tier720:
		return 720
	case Tier360:
		return 360
	}
	return 0
}

// PendingJob is a URL waiting for the user to pick a format.
// Keyed by user id; a newer URL from the same user replaces it.
type PendingJob struct {
	URL    string
	UserID int64
}

// StreamDescriptor is one remote stream from the engine's catalog.
// Zero numeric values mean the engine did not report the field.
type StreamDescriptor struct {
	FormatID     string
	Height       int
	Bitrate      float64 // overall bitrate (tbr), kbps
	AudioBitrate float64 // audio bitrate (abr), kbps
	Ext          string
	HasVideo     bool
	HasAudio     bool
}

// FormatDecision is the Format Selector's output: what to request from the
// engine and a human-readable note on how the choice was made.
type FormatDecision struct {
	FormatRequest string
	Description   string
}

// ProbeResult is the metadata-only view of a URL: display fields plus the
// stream catalog the selector works on.
type ProbeResult struct {
	Title     string
	Uploader  string
	Thumbnail string
	Duration  float64
	Streams   []StreamDescriptor
}

// PostProcess declares how the engine should finalize the download.
type PostProcess struct {
	ExtractAudio   bool
	AudioCodec     string // e.g. "mp3"
	AudioQuality   string // e.g. "192K"
	RemuxContainer string // e.g. "mp4"
}

// DownloadRequest is a single declarative engine invocation.
type DownloadRequest struct {
	URL           string
	FormatRequest string
	OutDir        string
	Identity      string
	PostProcess   PostProcess
}

// MaxUploadBytes is the ceiling for files relayed through the bot,
// kept under Telegram's upload limit.
const MaxUploadBytes = 48 * 1024 * 1024

// HumanSize renders a byte count as 1-decimal B/KB/MB/GB.
func HumanSize(n int64) string {
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(n)
	for _, u := range units {
		if size < 1024 || u == "GB" {
			return fmt.Sprintf("%.1f%s", size, u)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1fGB", size)
}
