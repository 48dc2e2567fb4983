// Package format picks which remote stream(s) to request for a quality tier.
//
// The catalog is split into progressive (video+audio), video-only and
// audio-only streams, then a layered fallback ladder is walked per tier.
// The returned description names the path taken so callers can show it and
// tests can assert on provenance.
package format

import (
	"fmt"
	"strings"

	"tubegrabbot/internal/core/domain"
)

type streamKey func(domain.StreamDescriptor) float64

var (
	keyHeight       = func(s domain.StreamDescriptor) float64 { return float64(s.Height) }
	keyBitrate      = func(s domain.StreamDescriptor) float64 { return s.Bitrate }
	keyAudioBitrate = func(s domain.StreamDescriptor) float64 { return s.AudioBitrate }
)

// videoKeys ranks by height, then overall bitrate.
var videoKeys = []streamKey{keyHeight, keyBitrate}

// audioKeys ranks by audio bitrate, then overall bitrate.
var audioKeys = []streamKey{keyAudioBitrate, keyBitrate}

// Select returns the concrete format request for the tier, or
// domain.ErrNoSuitableFormat when even the loosest fallback has no candidate.
func Select(catalog []domain.StreamDescriptor, tier domain.QualityTier) (domain.FormatDecision, error) {
	if len(catalog) == 0 {
		return domain.FormatDecision{}, domain.ErrNoSuitableFormat
	}

	var progressive, videoOnly, audioOnly []domain.StreamDescriptor
	for _, s := range catalog {
		switch {
		case s.HasVideo && s.HasAudio:
			progressive = append(progressive, s)
		case s.HasVideo:
			videoOnly = append(videoOnly, s)
		case s.HasAudio:
			audioOnly = append(audioOnly, s)
		}
	}

	if tier == domain.TierAudio {
		return selectAudio(progressive, audioOnly)
	}
	return selectVideo(catalog, progressive, videoOnly, audioOnly, tier)
}

func selectAudio(progressive, audioOnly []domain.StreamDescriptor) (domain.FormatDecision, error) {
	mp4Compatible := filter(audioOnly, func(s domain.StreamDescriptor) bool {
		return s.Ext == "m4a" || s.Ext == "mp4"
	})
	if best, ok := bestBy(mp4Compatible, audioKeys); ok {
		return domain.FormatDecision{
			FormatRequest: best.FormatID,
			Description:   "audio-only " + audioLabel(best),
		}, nil
	}
	if best, ok := bestBy(audioOnly, audioKeys); ok {
		return domain.FormatDecision{
			FormatRequest: best.FormatID,
			Description:   "audio-only " + audioLabel(best),
		}, nil
	}
	// No separate audio stream: take the best progressive one and let the
	// engine extract the audio track.
	if best, ok := bestBy(progressive, videoKeys); ok {
		return domain.FormatDecision{
			FormatRequest: best.FormatID,
			Description:   "audio extracted from progressive " + videoLabel(best),
		}, nil
	}
	return domain.FormatDecision{}, domain.ErrNoSuitableFormat
}

func selectVideo(catalog, progressive, videoOnly, audioOnly []domain.StreamDescriptor, tier domain.QualityTier) (domain.FormatDecision, error) {
	ceiling := tier.HeightCeiling()

	if ceiling == 0 {
		// No height cap: rank every video-bearing stream together. A
		// video-only winner with an audio-only companion means a mux beats
		// the best progressive stream.
		withVideo := append(append([]domain.StreamDescriptor{}, progressive...), videoOnly...)
		if winner, ok := bestBy(withVideo, videoKeys); ok {
			if winner.HasAudio {
				return progressiveDecision(winner, ""), nil
			}
			if audio, ok := bestBy(audioOnly, audioKeys); ok {
				return muxDecision(winner, audio, ""), nil
			}
		}
	} else {
		underCap := func(s domain.StreamDescriptor) bool {
			return s.Height > 0 && s.Height <= ceiling
		}
		mp4UnderCap := func(s domain.StreamDescriptor) bool {
			return underCap(s) && s.Ext == "mp4"
		}
		if best, ok := bestBy(filter(progressive, mp4UnderCap), videoKeys); ok {
			return progressiveDecision(best, ""), nil
		}
		if best, ok := bestBy(filter(progressive, underCap), videoKeys); ok {
			return progressiveDecision(best, ""), nil
		}
		if audio, ok := bestBy(audioOnly, audioKeys); ok {
			if video, ok := bestBy(filter(videoOnly, underCap), videoKeys); ok {
				return muxDecision(video, audio, ""), nil
			}
			if video, ok := bestBy(videoOnly, videoKeys); ok {
				return muxDecision(video, audio, "fallback "), nil
			}
		}
	}

	// Height ladder exhausted: any progressive stream, then the raw
	// catalog's last entry as a best-effort pick.
	if best, ok := bestBy(progressive, videoKeys); ok {
		return progressiveDecision(best, "fallback "), nil
	}
	last := catalog[len(catalog)-1]
	return domain.FormatDecision{
		FormatRequest: last.FormatID,
		Description:   "best-effort " + strings.TrimSpace(last.Ext+" "+heightLabel(last)),
	}, nil
}

// bestBy returns the candidate ranking highest on the key tuple, descending.
// A missing (zero) key ranks worst; ties keep the earliest catalog entry.
func bestBy(candidates []domain.StreamDescriptor, keys []streamKey) (domain.StreamDescriptor, bool) {
	if len(candidates) == 0 {
		return domain.StreamDescriptor{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if tupleGreater(c, best, keys) {
			best = c
		}
	}
	return best, true
}

func tupleGreater(a, b domain.StreamDescriptor, keys []streamKey) bool {
	for _, k := range keys {
		av, bv := k(a), k(b)
		if av != bv {
			return av > bv
		}
	}
	return false
}

func filter(streams []domain.StreamDescriptor, keep func(domain.StreamDescriptor) bool) []domain.StreamDescriptor {
	var out []domain.StreamDescriptor
	for _, s := range streams {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func progressiveDecision(s domain.StreamDescriptor, prefix string) domain.FormatDecision {
	return domain.FormatDecision{
		FormatRequest: s.FormatID,
		Description:   prefix + "progressive " + videoLabel(s),
	}
}

func muxDecision(video, audio domain.StreamDescriptor, prefix string) domain.FormatDecision {
	return domain.FormatDecision{
		FormatRequest: video.FormatID + "+" + audio.FormatID,
		Description:   fmt.Sprintf("%smux %s + %s audio", prefix, videoLabel(video), audioLabel(audio)),
	}
}

func videoLabel(s domain.StreamDescriptor) string {
	return strings.TrimSpace(s.Ext + " " + heightLabel(s))
}

func heightLabel(s domain.StreamDescriptor) string {
	if s.Height > 0 {
		return fmt.Sprintf("%dp", s.Height)
	}
	return ""
}

func audioLabel(s domain.StreamDescriptor) string {
	rate := s.AudioBitrate
	if rate == 0 {
		rate = s.Bitrate
	}
	if rate > 0 {
		return fmt.Sprintf("%s %.0fkbps", s.Ext, rate)
	}
	return s.Ext
}
