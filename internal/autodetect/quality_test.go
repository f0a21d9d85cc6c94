package autodetect

import (
	"testing"
	"time"

	"discsift/internal/disc"
	ts "discsift/internal/testsupport"
)

func featurePlaylist(name string, length time.Duration, height, channels int) *disc.Playlist {
	return ts.Playlist(name, length,
		ts.Tracks(ts.Video(height), ts.Audio("eng", channels), ts.Subtitle("eng")),
		ts.Chapters(8),
	)
}

func runQuality(playlists []*disc.Playlist) (featureBaseline, qualityTier) {
	baseline := computeFeatureBaseline(playlists, DefaultOptions())
	tier := computeQualityTier(playlists, baseline)
	markMaxQuality(playlists, tier)
	return baseline, tier
}

func TestFeatureBaselineSkipsBogusAndImplausible(t *testing.T) {
	feature := featurePlaylist("00001.MPLS", 100*time.Minute, 1080, 6)
	looping := featurePlaylist("00002.MPLS", 300*time.Minute, 1080, 6)
	looping.HasLoops = true
	bare := ts.Playlist("00003.MPLS", 200*time.Minute, ts.Tracks(ts.Video(1080), ts.Audio("eng", 6)))

	baseline := computeFeatureBaseline([]*disc.Playlist{feature, looping, bare}, DefaultOptions())

	if baseline.longest != 100*time.Minute {
		t.Fatalf("expected 100m baseline, got %v", baseline.longest)
	}
	if !baseline.isFeatureLength(ts.Playlist("x", 85*time.Minute)) {
		t.Fatal("expected 85% of the baseline to be feature length")
	}
	if baseline.isFeatureLength(ts.Playlist("y", 84*time.Minute)) {
		t.Fatal("expected 84% of the baseline not to be feature length")
	}
}

func TestMaxQualityChannelsAreAtLeast(t *testing.T) {
	stereo := featurePlaylist("00001.MPLS", 100*time.Minute, 1080, 2)
	surround := featurePlaylist("00002.MPLS", 100*time.Minute, 1080, 6)

	runQuality([]*disc.Playlist{stereo, surround})
	if stereo.IsMaxQuality || !surround.IsMaxQuality {
		t.Fatalf("expected only 5.1 max quality, got stereo=%v surround=%v", stereo.IsMaxQuality, surround.IsMaxQuality)
	}

	// Raising channels past the tier keeps both the new and old leaders.
	atmos := featurePlaylist("00003.MPLS", 100*time.Minute, 1080, 8)
	surround.IsMaxQuality = false
	_, tier := runQuality([]*disc.Playlist{surround, atmos})
	if tier.channels != 8 {
		t.Fatalf("expected 8 channel tier, got %d", tier.channels)
	}
	if !atmos.IsMaxQuality {
		t.Fatal("expected the 7.1 playlist to be max quality")
	}
}

func TestMaxQualityMonotonicInChannels(t *testing.T) {
	for _, channels := range []int{6, 8, 12} {
		leader := featurePlaylist("00001.MPLS", 100*time.Minute, 1080, 6)
		candidate := featurePlaylist("00002.MPLS", 100*time.Minute, 1080, channels)

		runQuality([]*disc.Playlist{leader, candidate})

		if !candidate.IsMaxQuality {
			t.Fatalf("channels=%d: expected candidate max quality", channels)
		}
	}
}

func TestMaxQualityHeightMustMatch(t *testing.T) {
	uhd := featurePlaylist("00001.MPLS", 100*time.Minute, 2160, 6)
	hd := featurePlaylist("00002.MPLS", 100*time.Minute, 1080, 8)

	_, tier := runQuality([]*disc.Playlist{uhd, hd})

	if tier.height != 2160 || tier.channels != 8 {
		t.Fatalf("unexpected tier %+v", tier)
	}
	if hd.IsMaxQuality {
		t.Fatal("expected 1080p playlist excluded by height")
	}
	if uhd.IsMaxQuality {
		t.Fatal("expected 2160p playlist excluded by channels below the tier")
	}
}

func TestMaxQualityAppliesToShortPlaylists(t *testing.T) {
	feature := featurePlaylist("00001.MPLS", 100*time.Minute, 1080, 6)
	featurette := ts.Playlist("00002.MPLS", 10*time.Minute, ts.Tracks(ts.Video(1080), ts.Audio("eng", 6)))

	runQuality([]*disc.Playlist{feature, featurette})

	if !featurette.IsMaxQuality {
		t.Fatal("expected a short playlist at the tier to be flagged")
	}
}

func TestMaxQualityNoCandidates(t *testing.T) {
	short := ts.Playlist("00001.MPLS", 10*time.Minute, ts.Tracks(ts.Video(1080), ts.Audio("eng", 6)))
	_, tier := runQuality([]*disc.Playlist{short})
	if tier.found || short.IsMaxQuality {
		t.Fatalf("expected nothing flagged without a baseline, got tier %+v", tier)
	}
}

func TestMaxQualitySkipsBogus(t *testing.T) {
	feature := featurePlaylist("00001.MPLS", 100*time.Minute, 1080, 6)
	copyOf := featurePlaylist("00002.MPLS", 100*time.Minute, 1080, 6)
	copyOf.IsDuplicate = true

	runQuality([]*disc.Playlist{feature, copyOf})

	if copyOf.IsMaxQuality {
		t.Fatal("expected duplicate playlist not flagged")
	}
}
