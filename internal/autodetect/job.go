package autodetect

import "discsift/internal/disc"

// NoSelection marks a job whose selected playlist has not been decided.
const NoSelection = -1

// Job carries the disc under analysis and the selection made for it.
type Job struct {
	Disc *disc.Disc
	// SelectedPlaylistIndex indexes Disc.Playlists, or is NoSelection.
	SelectedPlaylistIndex int
}

// NewJob wraps d in a job with no selection.
func NewJob(d *disc.Disc) *Job {
	return &Job{Disc: d, SelectedPlaylistIndex: NoSelection}
}

// HasSelection reports whether a playlist has been selected.
func (j *Job) HasSelection() bool {
	return j != nil && j.Disc != nil &&
		j.SelectedPlaylistIndex >= 0 && j.SelectedPlaylistIndex < len(j.Disc.Playlists)
}

// SelectedPlaylist returns the selected playlist, or nil.
func (j *Job) SelectedPlaylist() *disc.Playlist {
	if !j.HasSelection() {
		return nil
	}
	return j.Disc.Playlists[j.SelectedPlaylistIndex]
}
