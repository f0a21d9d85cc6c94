package disc

import (
	"sort"
	"strings"

	"discsift/internal/language"
)

// Disc is one scanned optical disc.
type Disc struct {
	VolumeLabel string
	DiscName    string

	// Playlists preserve the reader's filename order.
	Playlists []*Playlist

	PrimaryLanguage string
	Languages       []string
}

// ValidMainFeatures returns, in playlist order, every playlist typed main
// feature that is not bogus.
func (d *Disc) ValidMainFeatures() []*Playlist {
	if d == nil {
		return nil
	}
	var out []*Playlist
	for _, playlist := range d.Playlists {
		if playlist.IsValidMainFeature() {
			out = append(out, playlist)
		}
	}
	return out
}

// IndexOf returns the position of playlist within Playlists, or -1.
func (d *Disc) IndexOf(playlist *Playlist) int {
	if d == nil || playlist == nil {
		return -1
	}
	for i, candidate := range d.Playlists {
		if candidate == playlist {
			return i
		}
	}
	return -1
}

// PlaylistByName finds a playlist by file name, ignoring case.
func (d *Disc) PlaylistByName(name string) (*Playlist, bool) {
	if d == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	for _, playlist := range d.Playlists {
		if strings.EqualFold(playlist.FileName, name) {
			return playlist, true
		}
	}
	return nil, false
}

// ComputeLanguages fills PrimaryLanguage and Languages. A non-empty
// preferred language wins; otherwise the language carried by the most audio
// tracks across all playlists is used, ties going to the first one seen.
func (d *Disc) ComputeLanguages(preferred string) {
	if d == nil {
		return
	}

	seen := make(map[string]struct{})
	audioCounts := make(map[string]int)
	var audioOrder []string
	for _, playlist := range d.Playlists {
		for _, track := range playlist.Tracks {
			code := track.LanguageCode()
			if code == "" {
				continue
			}
			seen[code] = struct{}{}
			if !track.IsAudio() {
				continue
			}
			if _, ok := audioCounts[code]; !ok {
				audioOrder = append(audioOrder, code)
			}
			audioCounts[code]++
		}
	}

	primary := ""
	if code := language.ToISO3(preferred); strings.TrimSpace(preferred) != "" && code != language.Undetermined {
		primary = code
	} else {
		best := 0
		for _, code := range audioOrder {
			if audioCounts[code] > best {
				best = audioCounts[code]
				primary = code
			}
		}
	}

	languages := make([]string, 0, len(seen)+1)
	for code := range seen {
		if code != primary {
			languages = append(languages, code)
		}
	}
	sort.Strings(languages)
	if primary != "" {
		languages = append([]string{primary}, languages...)
	}

	d.PrimaryLanguage = primary
	d.Languages = languages
}
