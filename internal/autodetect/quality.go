package autodetect

import (
	"time"

	"discsift/internal/disc"
)

// featureBaseline is the longest playlist that is neither bogus nor
// structurally implausible as a main feature.
type featureBaseline struct {
	longest time.Duration
	ratio   float64
}

func computeFeatureBaseline(playlists []*disc.Playlist, opts Options) featureBaseline {
	baseline := featureBaseline{ratio: opts.FeatureLengthRatio}
	for _, playlist := range playlists {
		if playlist == nil || playlist.IsBogus() || !playlist.HasMinimumStructure(opts.MinMainFeatureChapters) {
			continue
		}
		baseline.longest = max(baseline.longest, playlist.Length)
	}
	return baseline
}

func (b featureBaseline) threshold() time.Duration {
	return time.Duration(float64(b.longest) * b.ratio)
}

// isFeatureLength is always false when the disc has no baseline playlist.
func (b featureBaseline) isFeatureLength(playlist *disc.Playlist) bool {
	return b.longest > 0 && playlist.Length >= b.threshold()
}

// qualityTier is the best audio channel count and video height found among
// feature-length playlists.
type qualityTier struct {
	channels int
	height   int
	found    bool
}

func computeQualityTier(playlists []*disc.Playlist, baseline featureBaseline) qualityTier {
	var tier qualityTier
	for _, playlist := range playlists {
		if playlist == nil || playlist.IsBogus() || !baseline.isFeatureLength(playlist) {
			continue
		}
		tier.found = true
		tier.channels = max(tier.channels, playlist.MaxAudioChannels())
		tier.height = max(tier.height, playlist.MaxAvailableVideoResolution())
	}
	return tier
}

// markMaxQuality flags non-bogus playlists that reach the tier. Channels may
// exceed the tier; height is a fixed ladder and must match exactly.
func markMaxQuality(playlists []*disc.Playlist, tier qualityTier) {
	if !tier.found {
		return
	}
	for _, playlist := range playlists {
		if playlist != nil && !playlist.IsBogus() && tier.reaches(playlist) {
			playlist.IsMaxQuality = true
		}
	}
}

// reaches reports whether playlist meets the tier, bogus or not.
func (t qualityTier) reaches(playlist *disc.Playlist) bool {
	return t.found &&
		playlist.MaxAudioChannels() >= t.channels &&
		playlist.MaxAvailableVideoResolution() == t.height
}
