package disc

import (
	"fmt"
	"strings"

	"discsift/internal/language"
)

// TrackKind is the elementary stream category of a track.
type TrackKind string

const (
	TrackKindUnknown  TrackKind = ""
	TrackKindVideo    TrackKind = "video"
	TrackKindAudio    TrackKind = "audio"
	TrackKindSubtitle TrackKind = "subtitle"
)

// ParseTrackKind normalizes a reader-supplied kind string.
func ParseTrackKind(value string) (TrackKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "video", "v":
		return TrackKindVideo, nil
	case "audio", "a":
		return TrackKindAudio, nil
	case "subtitle", "subtitles", "text", "graphics", "s":
		return TrackKindSubtitle, nil
	default:
		return TrackKindUnknown, fmt.Errorf("unknown track kind %q", value)
	}
}

// Codec describes the codec of a track and what the output pipeline can do with it.
type Codec struct {
	ID        string
	Name      string
	IsKnown   bool
	IsMuxable bool
}

// Usable reports whether the codec is both recognized and muxable.
func (c Codec) Usable() bool {
	return c.IsKnown && c.IsMuxable
}

// Track is one elementary stream within a playlist.
type Track struct {
	// Index is the absolute position within the playlist.
	Index int
	// IndexOfType is the position among tracks of the same kind.
	IndexOfType int
	Kind        TrackKind
	// Language is an ISO 639-2 code; empty or "und" when unknown.
	Language string
	Name     string
	IsHidden bool
	Codec    Codec

	ChannelCount int
	VideoHeight  int
	VideoFormat  string
	FrameRate    float64

	// Written by the detection pass.
	Type        Role
	Keep        bool
	IsBestGuess bool
}

func (t *Track) IsVideo() bool    { return t != nil && t.Kind == TrackKindVideo }
func (t *Track) IsAudio() bool    { return t != nil && t.Kind == TrackKindAudio }
func (t *Track) IsSubtitle() bool { return t != nil && t.Kind == TrackKindSubtitle }

// LanguageCode returns the normalized ISO 639-2 code, or "" when the
// language is not identifiable.
func (t *Track) LanguageCode() string {
	if t == nil {
		return ""
	}
	code := language.ToISO3(t.Language)
	if code == language.Undetermined {
		return ""
	}
	return code
}

// LanguageName returns a display name for the track language.
func (t *Track) LanguageName() string {
	return language.DisplayName(t.LanguageCode())
}

// Describe returns a compact summary such as "audio#1 eng 6ch TrueHD".
func (t *Track) Describe() string {
	if t == nil {
		return ""
	}
	parts := []string{fmt.Sprintf("%s#%d", t.Kind, t.IndexOfType)}
	if code := t.LanguageCode(); code != "" {
		parts = append(parts, code)
	}
	switch t.Kind {
	case TrackKindVideo:
		if t.VideoFormat != "" {
			parts = append(parts, t.VideoFormat)
		} else if t.VideoHeight > 0 {
			parts = append(parts, fmt.Sprintf("%dp", t.VideoHeight))
		}
	case TrackKindAudio:
		if t.ChannelCount > 0 {
			parts = append(parts, fmt.Sprintf("%dch", t.ChannelCount))
		}
	}
	if name := strings.TrimSpace(t.Codec.Name); name != "" {
		parts = append(parts, name)
	}
	if t.IsHidden {
		parts = append(parts, "hidden")
	}
	return strings.Join(parts, " ")
}
