// Package report turns the flags left on a disc by a detection pass into a
// serialisable summary for CLI output and history storage.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"discsift/internal/autodetect"
	"discsift/internal/disc"
	"discsift/internal/disc/fingerprint"
)

// Report summarises one detection pass.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Canceled   bool      `json:"canceled"`
	Phases     []string  `json:"completed_phases"`

	Disc             DiscSummary      `json:"disc"`
	SelectedPlaylist string           `json:"selected_playlist,omitempty"`
	Playlists        []PlaylistReport `json:"playlists"`
}

// DiscSummary identifies the analysed disc.
type DiscSummary struct {
	Title           string   `json:"title"`
	VolumeLabel     string   `json:"volume_label,omitempty"`
	Fingerprint     string   `json:"fingerprint"`
	PrimaryLanguage string   `json:"primary_language,omitempty"`
	Languages       []string `json:"languages,omitempty"`
	FeatureBaseline float64  `json:"feature_baseline_seconds"`
	MaxChannels     int      `json:"max_audio_channels"`
	MaxVideoHeight  int      `json:"max_video_height"`
}

// PlaylistReport holds the decisions for one playlist.
type PlaylistReport struct {
	FileName      string        `json:"file_name"`
	LengthSeconds float64       `json:"length_seconds"`
	SizeBytes     uint64        `json:"size_bytes"`
	Type          disc.Role     `json:"type"`
	Flags         []string      `json:"flags,omitempty"`
	Selected      bool          `json:"selected"`
	Chapters      int           `json:"chapters"`
	Clips         int           `json:"clips"`
	Tracks        []TrackReport `json:"tracks"`
}

// TrackReport holds the decisions for one track.
type TrackReport struct {
	Index       int            `json:"index"`
	Kind        disc.TrackKind `json:"kind"`
	Language    string         `json:"language,omitempty"`
	Codec       string         `json:"codec,omitempty"`
	Channels    int            `json:"channels,omitempty"`
	VideoHeight int            `json:"video_height,omitempty"`
	Hidden      bool           `json:"hidden,omitempty"`
	Type        disc.Role      `json:"type"`
	Keep        bool           `json:"keep"`
	BestGuess   bool           `json:"best_guess"`
}

// Build assembles a report from the job's disc after a pass.
func Build(job *autodetect.Job, outcome autodetect.Outcome) Report {
	r := Report{
		RunID:      outcome.RunID,
		StartedAt:  outcome.StartedAt,
		FinishedAt: outcome.FinishedAt,
		Canceled:   outcome.Canceled,
		Phases:     make([]string, 0, len(outcome.Completed)),
	}
	for _, phase := range outcome.Completed {
		r.Phases = append(r.Phases, string(phase))
	}
	if job == nil || job.Disc == nil {
		return r
	}
	d := job.Disc
	r.Disc = DiscSummary{
		Title:           d.DisplayTitle(),
		VolumeLabel:     d.VolumeLabel,
		Fingerprint:     fingerprint.Disc(d),
		PrimaryLanguage: d.PrimaryLanguage,
		Languages:       d.Languages,
		FeatureBaseline: outcome.FeatureBaseline.Seconds(),
		MaxChannels:     outcome.MaxAudioChannels,
		MaxVideoHeight:  outcome.MaxVideoHeight,
	}
	selected := job.SelectedPlaylist()
	if selected != nil {
		r.SelectedPlaylist = selected.FileName
	}
	r.Playlists = make([]PlaylistReport, 0, len(d.Playlists))
	for _, playlist := range d.Playlists {
		r.Playlists = append(r.Playlists, buildPlaylist(playlist, playlist == selected))
	}
	return r
}

func buildPlaylist(playlist *disc.Playlist, selected bool) PlaylistReport {
	pr := PlaylistReport{
		FileName:      playlist.FileName,
		LengthSeconds: playlist.Length.Seconds(),
		SizeBytes:     playlist.FileSize,
		Type:          playlist.Type,
		Flags:         PlaylistFlags(playlist),
		Selected:      selected,
		Chapters:      len(playlist.Chapters),
		Clips:         len(playlist.DefaultAngleClips()),
		Tracks:        make([]TrackReport, 0, len(playlist.Tracks)),
	}
	for _, track := range playlist.Tracks {
		if track == nil {
			continue
		}
		pr.Tracks = append(pr.Tracks, TrackReport{
			Index:       track.Index,
			Kind:        track.Kind,
			Language:    track.LanguageCode(),
			Codec:       codecLabel(track.Codec),
			Channels:    track.ChannelCount,
			VideoHeight: track.VideoHeight,
			Hidden:      track.IsHidden,
			Type:        track.Type,
			Keep:        track.Keep,
			BestGuess:   track.IsBestGuess,
		})
	}
	return pr
}

// PlaylistFlags lists the set detection flags in a fixed order.
func PlaylistFlags(playlist *disc.Playlist) []string {
	var flags []string
	add := func(set bool, name string) {
		if set {
			flags = append(flags, name)
		}
	}
	add(playlist.IsBestGuess, "best_guess")
	add(playlist.IsMaxQuality, "max_quality")
	add(playlist.IsDuplicate, "duplicate")
	add(playlist.HasDuplicateStreamClips, "duplicate_clips")
	add(playlist.HasLoops, "loops")
	add(playlist.HasHiddenFirstTracks(), "hidden_tracks")
	return flags
}

func codecLabel(codec disc.Codec) string {
	if codec.Name != "" {
		return codec.Name
	}
	return codec.ID
}

// Length returns the playlist length as a duration.
func (p PlaylistReport) Length() time.Duration {
	return time.Duration(p.LengthSeconds * float64(time.Second))
}

// KeptTracks returns the tracks marked to keep.
func (p PlaylistReport) KeptTracks() []TrackReport {
	var out []TrackReport
	for _, track := range p.Tracks {
		if track.Keep {
			out = append(out, track)
		}
	}
	return out
}

// Marshal encodes the report as indented JSON.
func (r Report) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a report written by Marshal.
func Unmarshal(data []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	return r, nil
}
