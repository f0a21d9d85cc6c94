package autodetect

import (
	"log/slog"

	"discsift/internal/disc"
	"discsift/internal/disc/fingerprint"
	"discsift/internal/logging"
)

// markDuplicates groups playlists by structural fingerprint and flags every
// member of a group except its survivor. It returns the number of playlists
// flagged.
func markDuplicates(playlists []*disc.Playlist, logger *slog.Logger) int {
	groups := make(map[string][]*disc.Playlist)
	var order []string
	for _, playlist := range playlists {
		if playlist == nil {
			continue
		}
		key := fingerprint.Playlist(playlist)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], playlist)
	}

	flagged := 0
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		survivor, reason := duplicateSurvivor(group)
		for _, playlist := range group {
			if playlist == survivor || playlist.IsDuplicate {
				continue
			}
			playlist.IsDuplicate = true
			flagged++
		}
		logger.Info("duplicate playlist decision",
			logging.Decision{
				Type:     "duplicate_group",
				Result:   "survivor_kept",
				Reason:   reason,
				Selected: survivor.FileName,
			}.Args(
				logging.Strings("decision_candidates", playlistNames(group)),
				logging.String("fingerprint", key),
			)...,
		)
	}
	return flagged
}

// duplicateSurvivor picks the lowest-badness member, ties going to the first
// encountered. When every member is already bogus the first one survives.
func duplicateSurvivor(group []*disc.Playlist) (*disc.Playlist, string) {
	allBogus := true
	for _, playlist := range group {
		if !playlist.IsBogus() {
			allBogus = false
			break
		}
	}
	if allBogus {
		return group[0], "all_bogus_first_kept"
	}

	survivor := group[0]
	best := badness(survivor)
	for _, playlist := range group[1:] {
		if score := badness(playlist); score < best {
			survivor, best = playlist, score
		}
	}
	return survivor, "lowest_badness"
}

func badness(playlist *disc.Playlist) int {
	score := playlist.HiddenTrackCount()
	if playlist.IsBogus() {
		score++
	}
	return score
}

func playlistNames(playlists []*disc.Playlist) []string {
	names := make([]string, 0, len(playlists))
	for _, playlist := range playlists {
		names = append(names, playlist.FileName)
	}
	return names
}
