package autodetect

import (
	"log/slog"

	"discsift/internal/disc"
	"discsift/internal/logging"
)

// classifyPlaylists types main and special features. The main feature rule
// is tested first so a playlist never matches both; a playlist matching
// neither keeps its current type.
func classifyPlaylists(playlists []*disc.Playlist, baseline featureBaseline, tier qualityTier, opts Options, logger *slog.Logger) {
	for _, playlist := range playlists {
		if playlist == nil {
			continue
		}
		role, reason, ok := playlistRole(playlist, baseline, tier, opts)
		if ok {
			playlist.Type = role
		}
		result := "unchanged"
		if ok {
			result = role.String()
		}
		logger.Debug("playlist role decision",
			logging.Decision{
				Type:    "playlist_role",
				Result:  result,
				Reason:  reason,
				Options: "main_feature, special_feature, keep",
			}.Args(
				logging.Playlist(playlist.FileName),
				logging.Duration("length", playlist.Length),
				logging.Bool("max_quality", playlist.IsMaxQuality),
				logging.Bool("bogus", playlist.IsBogus()),
			)...,
		)
	}
}

func playlistRole(playlist *disc.Playlist, baseline featureBaseline, tier qualityTier, opts Options) (disc.Role, string, bool) {
	featureLength := baseline.isFeatureLength(playlist)
	longEnough := playlist.Length > opts.MinFeatureLength
	// IsMaxQuality is never set on bogus playlists, so the special feature
	// rule compares against the tier directly. A bogus copy of the feature
	// matches on both legs and keeps its type.
	topQuality := playlist.IsMaxQuality || tier.reaches(playlist)

	if playlist.IsMaxQuality && featureLength && longEnough &&
		playlist.HasMinimumStructure(opts.MinMainFeatureChapters) {
		return disc.RoleMainFeature, "max_quality_feature_length", true
	}
	// Quality or length matches, but not both.
	if topQuality != featureLength && longEnough && len(playlist.AudioTracks()) == 1 {
		if topQuality {
			return disc.RoleSpecialFeature, "max_quality_short_single_audio", true
		}
		return disc.RoleSpecialFeature, "feature_length_lower_quality_single_audio", true
	}

	switch {
	case !longEnough:
		return playlist.Type, "too_short", false
	case !featureLength && !topQuality:
		return playlist.Type, "neither_quality_nor_length", false
	default:
		return playlist.Type, "rules_not_met", false
	}
}
