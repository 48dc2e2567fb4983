package service

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"tubegrabbot/internal/core/domain"
	"tubegrabbot/internal/core/format"
	"tubegrabbot/internal/core/ports"
)

// DefaultIdentities is the ordered list of spoofed client identities the
// probe tries; the first success short-circuits.
var DefaultIdentities = []string{"web", "android"}

// Orchestrator drives the external engine: probe with identity fallback,
// format selection, transfer, size gate, relay.
type Orchestrator struct {
	engine     ports.MediaEngine
	workspace  ports.Workspace
	fetcher    ports.Fetcher
	identities []string
	logger     *log.Logger
}

// NewOrchestrator creates an Orchestrator. fetcher may be nil to skip
// thumbnail handling.
func NewOrchestrator(engine ports.MediaEngine, workspace ports.Workspace, fetcher ports.Fetcher, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		engine:     engine,
		workspace:  workspace,
		fetcher:    fetcher,
		identities: DefaultIdentities,
		logger:     logger,
	}
}

// Probe retrieves the stream catalog, trying each client identity in order.
// It returns the identity that succeeded so the later transfer can reuse it.
// Both identities failing yields a ProbeError carrying the last error.
func (o *Orchestrator) Probe(ctx context.Context, url string) (*domain.ProbeResult, string, error) {
	var lastErr error
	for _, identity := range o.identities {
		result, err := o.engine.Probe(ctx, url, identity)
		if err == nil {
			return result, identity, nil
		}
		lastErr = err
		o.logger.Printf("probe as %q failed: %v", identity, err)
	}
	return nil, "", &domain.ProbeError{Err: lastErr}
}

// FetchOutcome summarizes a completed relay.
type FetchOutcome struct {
	Decision domain.FormatDecision
	Title    string
	Uploader string
	Size     int64
}

// Fetch runs the full cycle for one user interaction: probe, select,
// download, size-check, relay through the sink. The scratch directory is
// removed on every exit path.
func (o *Orchestrator) Fetch(ctx context.Context, chatID int64, url string, tier domain.QualityTier, sink ports.MediaSink) (*FetchOutcome, error) {
	requestID := uuid.New().String()
	o.logger.Printf("[JOB %s] %s tier=%s", requestID, url, tier)

	probe, identity, err := o.Probe(ctx, url)
	if err != nil {
		o.logger.Printf("[JOB %s] probe failed: %v", requestID, err)
		return nil, err
	}
	o.logger.Printf("[JOB %s] probed as %q: %d streams", requestID, identity, len(probe.Streams))

	decision, err := format.Select(probe.Streams, tier)
	if err != nil {
		o.logger.Printf("[JOB %s] no format: %v", requestID, err)
		return nil, err
	}
	o.logger.Printf("[JOB %s] decision: %s (%s)", requestID, decision.FormatRequest, decision.Description)

	dir, cleanup, err := o.workspace.Create(requestID)
	if err != nil {
		return nil, &domain.DownloadError{Err: err}
	}
	defer cleanup()

	filePath, err := o.engine.Download(ctx, domain.DownloadRequest{
		URL:           url,
		FormatRequest: decision.FormatRequest,
		OutDir:        dir,
		Identity:      identity,
		PostProcess:   postProcessFor(tier),
	})
	if err != nil {
		o.logger.Printf("[JOB %s] download failed: %v", requestID, err)
		return nil, &domain.DownloadError{Err: err}
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, &domain.DownloadError{Err: err}
	}
	if info.Size() > domain.MaxUploadBytes {
		o.logger.Printf("[JOB %s] oversize: %s", requestID, domain.HumanSize(info.Size()))
		return nil, &domain.OversizeError{Size: info.Size(), Title: probe.Title}
	}

	meta := ports.SendMeta{
		Title:     probe.Title,
		Performer: probe.Uploader,
	}
	// Fetched after the transfer so the engine's output scan only ever sees
	// the media file.
	if o.fetcher != nil && probe.Thumbnail != "" {
		thumbPath := filepath.Join(dir, "thumb.jpg")
		if err := o.fetcher.FetchFile(ctx, probe.Thumbnail, thumbPath); err == nil {
			meta.ThumbPath = thumbPath
		} else {
			o.logger.Printf("[JOB %s] thumbnail fetch failed: %v", requestID, err)
		}
	}
	if tier == domain.TierAudio || isAudioFile(filePath) {
		err = sink.SendAudio(chatID, filePath, meta)
	} else {
		err = sink.SendVideo(chatID, filePath, meta)
	}
	if err != nil {
		o.logger.Printf("[JOB %s] send failed: %v", requestID, err)
		return nil, &domain.SendError{Err: err}
	}

	o.logger.Printf("[JOB %s] sent %s (%s)", requestID, filepath.Base(filePath), domain.HumanSize(info.Size()))
	return &FetchOutcome{
		Decision: decision,
		Title:    probe.Title,
		Uploader: probe.Uploader,
		Size:     info.Size(),
	}, nil
}

// postProcessFor declares the engine-side finalization: audio tiers are
// transcoded to mp3, everything else is remuxed into mp4.
func postProcessFor(tier domain.QualityTier) domain.PostProcess {
	if tier == domain.TierAudio {
		return domain.PostProcess{
			ExtractAudio: true,
			AudioCodec:   "mp3",
			AudioQuality: "192K",
		}
	}
	return domain.PostProcess{RemuxContainer: "mp4"}
}

func isAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".m4a":
		return true
	}
	return false
}
