package autodetect

import (
	"strings"
	"time"

	"discsift/internal/disc"
)

type clipPoint struct {
	name   string
	timeIn time.Duration
}

// analyzeClips flags playlists that reference a default-angle clip more than
// once, and loops where the repeat also starts at the same in point. Flags a
// reader already set are kept.
func analyzeClips(playlist *disc.Playlist) {
	if playlist == nil {
		return
	}
	names := make(map[string]struct{})
	points := make(map[clipPoint]struct{})
	for _, clip := range playlist.DefaultAngleClips() {
		name := strings.ToUpper(strings.TrimSpace(clip.FileName))
		if name == "" {
			continue
		}
		if _, ok := names[name]; ok {
			playlist.HasDuplicateStreamClips = true
		}
		names[name] = struct{}{}

		point := clipPoint{name: name, timeIn: clip.TimeIn}
		if _, ok := points[point]; ok {
			playlist.HasLoops = true
		}
		points[point] = struct{}{}
	}
}
