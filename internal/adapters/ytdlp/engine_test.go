package ytdlp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubegrabbot/internal/core/domain"
)

const sampleProbeJSON = `{
	"title": "Some Video",
	"uploader": "Someone",
	"thumbnail": "https://example.com/thumb.jpg",
	"duration": 212.5,
	"formats": [
		{"format_id": "sb0", "ext": "mhtml"},
		{"format_id": "137", "ext": "mp4", "height": 1080, "tbr": 4400.2, "vcodec": "avc1.640028", "acodec": "none"},
		{"format_id": "140", "ext": "m4a", "abr": 129.5, "tbr": 129.5, "vcodec": "none", "acodec": "mp4a.40.2"},
		{"format_id": "18", "ext": "mp4", "height": 360, "tbr": 700, "vcodec": "avc1.42001E", "acodec": "mp4a.40.2"}
	]
}`

func TestParseProbeOutput(t *testing.T) {
	result, err := parseProbeOutput([]byte(sampleProbeJSON))
	require.NoError(t, err)

	assert.Equal(t, "Some Video", result.Title)
	assert.Equal(t, "Someone", result.Uploader)
	assert.Equal(t, "https://example.com/thumb.jpg", result.Thumbnail)
	assert.InDelta(t, 212.5, result.Duration, 0.01)

	// storyboard entry is dropped
	require.Len(t, result.Streams, 3)

	video := result.Streams[0]
	assert.Equal(t, "137", video.FormatID)
	assert.Equal(t, 1080, video.Height)
	assert.True(t, video.HasVideo)
	assert.False(t, video.HasAudio)

	audio := result.Streams[1]
	assert.Equal(t, "140", audio.FormatID)
	assert.False(t, audio.HasVideo)
	assert.True(t, audio.HasAudio)
	assert.InDelta(t, 129.5, audio.AudioBitrate, 0.01)

	prog := result.Streams[2]
	assert.True(t, prog.HasVideo)
	assert.True(t, prog.HasAudio)
}

func TestParseProbeOutputInvalid(t *testing.T) {
	_, err := parseProbeOutput([]byte("not json"))
	assert.Error(t, err)
}

func TestDownloadArgsRemux(t *testing.T) {
	engine := New("", "")
	args := engine.downloadArgs(domain.DownloadRequest{
		URL:           "https://youtu.be/x",
		FormatRequest: "137+140",
		OutDir:        "/tmp/job",
		Identity:      "android",
		PostProcess:   domain.PostProcess{RemuxContainer: "mp4"},
	})

	assert.Contains(t, args, "137+140")
	assert.Contains(t, args, "--merge-output-format")
	assert.Contains(t, args, "--extractor-args")
	assert.Contains(t, args, "youtube:player_client=android")
	assert.NotContains(t, args, "-x")
	assert.Equal(t, "https://youtu.be/x", args[len(args)-1])
}

func TestDownloadArgsExtractAudio(t *testing.T) {
	engine := New("", "")
	args := engine.downloadArgs(domain.DownloadRequest{
		URL:           "https://youtu.be/x",
		FormatRequest: "140",
		OutDir:        "/tmp/job",
		PostProcess: domain.PostProcess{
			ExtractAudio: true,
			AudioCodec:   "mp3",
			AudioQuality: "192K",
		},
	})

	assert.Contains(t, args, "-x")
	assert.Contains(t, args, "--audio-format")
	assert.Contains(t, args, "mp3")
	assert.NotContains(t, args, "--merge-output-format")
	assert.NotContains(t, args, "--extractor-args")
}

func TestCookiesOnlyWhenFileExists(t *testing.T) {
	missing := New("", filepath.Join(t.TempDir(), "nope.txt"))
	args := missing.appendCommonArgs(nil, "")
	assert.NotContains(t, args, "--cookies")

	cookiePath := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(cookiePath, []byte("# cookies"), 0o644))
	present := New("", cookiePath)
	args = present.appendCommonArgs(nil, "")
	assert.Contains(t, args, "--cookies")
	assert.Contains(t, args, cookiePath)
}

func TestFirstFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mp4"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp4"), []byte("x"), 0o644))

	path, err := firstFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.mp4"), path)
}

func TestFirstFileEmpty(t *testing.T) {
	_, err := firstFile(t.TempDir())
	assert.Error(t, err)
}
