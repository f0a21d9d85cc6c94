package autodetect

import (
	"log/slog"

	"discsift/internal/disc"
	"discsift/internal/logging"
)

// selectPlaylists marks every valid main feature as a best guess and points
// the job at the first one. With no candidates the job is left untouched.
func selectPlaylists(job *Job, logger *slog.Logger) []*disc.Playlist {
	candidates := job.Disc.ValidMainFeatures()
	for _, playlist := range candidates {
		playlist.IsBestGuess = true
	}
	if len(candidates) == 0 {
		logger.Info("playlist selection decision",
			logging.Decision{
				Type:    "playlist_selection",
				Result:  "skipped",
				Reason:  "no_valid_main_feature",
				Options: "select, skip",
			}.Args()...,
		)
		return nil
	}

	job.SelectedPlaylistIndex = job.Disc.IndexOf(candidates[0])
	logger.Info("playlist selection decision",
		logging.Decision{
			Type:     "playlist_selection",
			Result:   "selected",
			Reason:   "first_valid_main_feature",
			Options:  "select, skip",
			Selected: candidates[0].FileName,
		}.Args(logging.Strings("decision_candidates", playlistNames(candidates)))...,
	)
	return candidates
}

// selectTracks keeps the first video track and the default audio and
// subtitle tracks of one playlist. Playlists without video are skipped.
func selectTracks(playlist *disc.Playlist, primaryLanguage string, logger *slog.Logger) {
	if playlist == nil {
		return
	}
	video := playlist.VideoTracks()
	if len(video) == 0 {
		logging.WarnWithContext(logger, "track selection skipped; playlist has no video track", "track_selection_skipped",
			logging.Playlist(playlist.FileName),
			logging.String(logging.FieldErrorHint, "check the disc reader output for this playlist"),
			logging.String(logging.FieldImpact, "no default tracks chosen for this playlist"),
		)
		return
	}

	keep(video[0])
	keep(defaultTracks(playlist.AudioTracks(), primaryLanguage)...)
	keep(defaultTracks(playlist.SubtitleTracks(), primaryLanguage)...)
}

// defaultTracks applies the fallback ladder: every main feature track in the
// primary language, else the first main feature track, else the first track.
func defaultTracks(tracks []*disc.Track, primaryLanguage string) []*disc.Track {
	if len(tracks) == 0 {
		return nil
	}
	var preferred []*disc.Track
	if primaryLanguage != "" {
		for _, track := range tracks {
			if track.Type == disc.RoleMainFeature && track.LanguageCode() == primaryLanguage {
				preferred = append(preferred, track)
			}
		}
	}
	if len(preferred) > 0 {
		return preferred
	}
	for _, track := range tracks {
		if track.Type == disc.RoleMainFeature {
			return []*disc.Track{track}
		}
	}
	return tracks[:1]
}

func keep(tracks ...*disc.Track) {
	for _, track := range tracks {
		track.Keep = true
		track.IsBestGuess = true
	}
}
