// Package ytdlp drives the local yt-dlp binary: metadata probes and the
// actual media transfer, including declarative post-processing.
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tubegrabbot/internal/core/domain"
)

const (
	probeTimeout    = 2 * time.Minute
	downloadTimeout = 10 * time.Minute

	// Transfer-level network settings handed to the engine.
	socketTimeoutSec = "10"
	transferRetries  = "2"
)

// Engine implements ports.MediaEngine over the yt-dlp binary.
type Engine struct {
	binaryPath  string
	cookiesFile string
}

// New creates an Engine. binaryPath may be empty to use PATH lookup;
// cookiesFile is passed to yt-dlp only when the file exists.
func New(binaryPath, cookiesFile string) *Engine {
	if binaryPath == "" {
		binaryPath = "yt-dlp"
	}
	return &Engine{binaryPath: binaryPath, cookiesFile: cookiesFile}
}

// Probe fetches metadata and the stream catalog without downloading media.
func (e *Engine) Probe(ctx context.Context, url, identity string) (*domain.ProbeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	args := []string{"-J", "--no-playlist", "--no-warnings"}
	args = e.appendCommonArgs(args, identity)
	args = append(args, url)

	cmd := exec.CommandContext(ctx, e.binaryPath, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp probe failed: %w, stderr: %s", err, trimStderr(stderr.String()))
	}

	return parseProbeOutput(out.Bytes())
}

func parseProbeOutput(data []byte) (*domain.ProbeResult, error) {
	var meta probeJSON
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode yt-dlp output: %w", err)
	}

	result := &domain.ProbeResult{
		Title:     meta.Title,
		Uploader:  meta.Uploader,
		Thumbnail: meta.Thumbnail,
		Duration:  meta.Duration,
	}
	for _, f := range meta.Formats {
		if f.FormatID == "" || strings.HasPrefix(f.FormatID, "sb") {
			// storyboard entries carry no media
			continue
		}
		result.Streams = append(result.Streams, domain.StreamDescriptor{
			FormatID:     f.FormatID,
			Height:       f.Height,
			Bitrate:      f.TBR,
			AudioBitrate: f.ABR,
			Ext:          f.Ext,
			HasVideo:     hasCodec(f.VCodec),
			HasAudio:     hasCodec(f.ACodec),
		})
	}
	return result, nil
}

// Download transfers the requested format(s) into req.OutDir and returns the
// path of the resulting file.
func (e *Engine) Download(ctx context.Context, req domain.DownloadRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.binaryPath, e.downloadArgs(req)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp download failed: %w, stderr: %s", err, trimStderr(stderr.String()))
	}

	path, err := firstFile(req.OutDir)
	if err != nil {
		return "", err
	}
	return path, nil
}

func (e *Engine) downloadArgs(req domain.DownloadRequest) []string {
	args := []string{
		"-f", req.FormatRequest,
		"-o", filepath.Join(req.OutDir, "%(title).100s.%(ext)s"),
		"--no-playlist",
		"--no-warnings",
		"--restrict-filenames",
	}
	pp := req.PostProcess
	if pp.ExtractAudio {
		args = append(args, "-x", "--audio-format", pp.AudioCodec, "--audio-quality", pp.AudioQuality)
	} else if pp.RemuxContainer != "" {
		args = append(args, "--merge-output-format", pp.RemuxContainer, "--remux-video", pp.RemuxContainer)
	}
	args = e.appendCommonArgs(args, req.Identity)
	return append(args, req.URL)
}

func (e *Engine) appendCommonArgs(args []string, identity string) []string {
	args = append(args, "--socket-timeout", socketTimeoutSec, "--retries", transferRetries)
	if identity != "" {
		args = append(args, "--extractor-args", "youtube:player_client="+identity)
	}
	if e.cookiesFile != "" {
		if _, err := os.Stat(e.cookiesFile); err == nil {
			args = append(args, "--cookies", e.cookiesFile)
		}
	}
	return args
}

func hasCodec(codec string) bool {
	return codec != "" && codec != "none"
}

// firstFile returns the lexicographically first regular file in dir.
func firstFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read output directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no file found after download in %s", dir)
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

func trimStderr(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 400 {
		s = s[len(s)-400:]
	}
	return s
}

type probeJSON struct {
	Title     string       `json:"title"`
	Uploader  string       `json:"uploader"`
	Thumbnail string       `json:"thumbnail"`
	Duration  float64      `json:"duration"`
	Formats   []formatJSON `json:"formats"`
}

type formatJSON struct {
	FormatID string  `json:"format_id"`
	Ext      string  `json:"ext"`
	Height   int     `json:"height"`
	TBR      float64 `json:"tbr"`
	ABR      float64 `json:"abr"`
	VCodec   string  `json:"vcodec"`
	ACodec   string  `json:"acodec"`
}
