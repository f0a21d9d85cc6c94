package autodetect

import (
	"context"
	"log/slog"

	"discsift/internal/disc"
	"discsift/internal/logging"
)

// classifyTracks assigns track roles from the playlist roles decided earlier.
// Tracks without a role first take their playlist's type.
func classifyTracks(playlists []*disc.Playlist, logger *slog.Logger) {
	for _, playlist := range playlists {
		if playlist == nil {
			continue
		}
		// Read before inheritance fills unset video roles.
		videoCommentary := playlist.HasVideoCommentary()
		for _, track := range playlist.Tracks {
			if track != nil && !track.Type.IsSet() {
				track.Type = playlist.Type
			}
		}

		switch playlist.Type {
		case disc.RoleMainFeature:
			classifyMainFeatureTracks(playlist)
		case disc.RoleSpecialFeature:
			if videoCommentary {
				setTrackRoles(playlist, disc.RoleCommentary)
			} else {
				setTrackRoles(playlist, disc.RoleSpecialFeature)
			}
		case disc.RoleCommentary:
			if videoCommentary {
				setTrackRoles(playlist, disc.RoleCommentary)
			}
		}

		if logger.Enabled(context.Background(), slog.LevelDebug) {
			for _, track := range playlist.Tracks {
				if track == nil {
					continue
				}
				logger.Debug("track role assigned",
					logging.Playlist(playlist.FileName),
					logging.String("track", track.Describe()),
					logging.String("role", track.Type.String()),
				)
			}
		}
	}
}

func classifyMainFeatureTracks(playlist *disc.Playlist) {
	// Extra video tracks are picture-in-picture commentary.
	for i, track := range playlist.VideoTracks() {
		if i >= 1 {
			track.Type = disc.RoleCommentary
		}
	}

	for _, group := range groupByLanguage(playlist.AudioTracks()) {
		for i, track := range group {
			track.Type = audioRole(track, i == 0)
		}
	}

	for _, group := range groupByLanguage(playlist.SubtitleTracks()) {
		for i, track := range group {
			track.Type = subtitleRole(track, i == 0)
		}
	}
}

// audioRole keeps the first track of a language group and any later
// multichannel track as main feature; later stereo or mono tracks are
// commentary.
func audioRole(track *disc.Track, firstInGroup bool) disc.Role {
	if firstInGroup || track.ChannelCount > 2 {
		return disc.RoleMainFeature
	}
	return disc.RoleCommentary
}

// subtitleRole resolves a subtitle track's role. Precedence, highest first:
//  1. codec: an unknown or non-muxable codec is always misc
//  2. position: the first track of a language group is main feature and
//     later tracks are commentary
func subtitleRole(track *disc.Track, firstInGroup bool) disc.Role {
	if !track.Codec.Usable() {
		return disc.RoleMisc
	}
	if firstInGroup {
		return disc.RoleMainFeature
	}
	return disc.RoleCommentary
}

// groupByLanguage splits tracks by normalized language, keeping both the
// first-seen order of groups and the original order within each group.
// Tracks without an identifiable language share one group.
func groupByLanguage(tracks []*disc.Track) [][]*disc.Track {
	index := make(map[string]int)
	var groups [][]*disc.Track
	for _, track := range tracks {
		code := track.LanguageCode()
		pos, ok := index[code]
		if !ok {
			pos = len(groups)
			index[code] = pos
			groups = append(groups, nil)
		}
		groups[pos] = append(groups[pos], track)
	}
	return groups
}

func setTrackRoles(playlist *disc.Playlist, role disc.Role) {
	for _, track := range playlist.Tracks {
		if track != nil {
			track.Type = role
		}
	}
}
