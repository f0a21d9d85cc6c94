package testsupport

import (
	"fmt"
	"time"

	"discsift/internal/disc"
)

// PlaylistOption customizes a playlist built by Playlist.
type PlaylistOption func(*disc.Playlist)

// Playlist builds a playlist with the given length. Unless overridden it
// has a size proportional to its length and one stream clip named after the
// playlist. Track indexes are filled after options apply.
func Playlist(name string, length time.Duration, opts ...PlaylistOption) *disc.Playlist {
	playlist := &disc.Playlist{
		FileName: name,
		FullPath: "/BDMV/PLAYLIST/" + name,
		FileSize: uint64(length/time.Second) * 4 << 20,
		Length:   length,
	}
	playlist.StreamClips = []*disc.StreamClip{{FileName: clipName(name, 0), Length: length, FileSize: playlist.FileSize}}
	for _, opt := range opts {
		opt(playlist)
	}
	playlist.IndexTracks()
	return playlist
}

// Tracks appends tracks in order.
func Tracks(tracks ...*disc.Track) PlaylistOption {
	return func(p *disc.Playlist) {
		p.Tracks = append(p.Tracks, tracks...)
	}
}

// Chapters replaces the chapter list with n evenly spaced chapters.
func Chapters(n int) PlaylistOption {
	return func(p *disc.Playlist) {
		p.Chapters = nil
		if n <= 0 {
			return
		}
		step := p.Length / time.Duration(n)
		for i := range n {
			p.Chapters = append(p.Chapters, &disc.Chapter{Number: i + 1, StartTime: step * time.Duration(i)})
		}
	}
}

// Clips replaces the stream clips with the named files, splitting the
// playlist length and size evenly. Repeated names share an in point.
func Clips(names ...string) PlaylistOption {
	return func(p *disc.Playlist) {
		p.StreamClips = nil
		if len(names) == 0 {
			return
		}
		length := p.Length / time.Duration(len(names))
		size := p.FileSize / uint64(len(names))
		for i, name := range names {
			p.StreamClips = append(p.StreamClips, &disc.StreamClip{
				FileName: name,
				FileSize: size,
				Length:   length,
				Index:    i,
			})
		}
	}
}

// Size overrides the playlist file size.
func Size(bytes uint64) PlaylistOption {
	return func(p *disc.Playlist) {
		p.FileSize = bytes
	}
}

// Type presets the playlist role.
func Type(role disc.Role) PlaylistOption {
	return func(p *disc.Playlist) {
		p.Type = role
	}
}

// Video builds an H.264 video track of the given height.
func Video(height int) *disc.Track {
	return &disc.Track{
		Kind:        disc.TrackKindVideo,
		Codec:       disc.Codec{ID: "V_MPEG4/ISO/AVC", Name: "H.264", IsKnown: true, IsMuxable: true},
		VideoHeight: height,
		VideoFormat: fmt.Sprintf("%dp", height),
		FrameRate:   23.976,
	}
}

// Audio builds an audio track in lang with the given channel count.
func Audio(lang string, channels int) *disc.Track {
	return &disc.Track{
		Kind:         disc.TrackKindAudio,
		Language:     lang,
		Codec:        disc.Codec{ID: "A_DTS", Name: "DTS-HD MA", IsKnown: true, IsMuxable: true},
		ChannelCount: channels,
	}
}

// Subtitle builds a PGS subtitle track in lang.
func Subtitle(lang string) *disc.Track {
	return &disc.Track{
		Kind:     disc.TrackKindSubtitle,
		Language: lang,
		Codec:    disc.Codec{ID: "S_HDMV/PGS", Name: "PGS", IsKnown: true, IsMuxable: true},
	}
}

// Hidden marks track hidden and returns it.
func Hidden(track *disc.Track) *disc.Track {
	track.IsHidden = true
	return track
}

// WithCodec replaces the track codec and returns it.
func WithCodec(track *disc.Track, codec disc.Codec) *disc.Track {
	track.Codec = codec
	return track
}

// WithRole presets the track role and returns it.
func WithRole(track *disc.Track, role disc.Role) *disc.Track {
	track.Type = role
	return track
}

// Disc wraps playlists in a disc.
func Disc(label string, playlists ...*disc.Playlist) *disc.Disc {
	return &disc.Disc{VolumeLabel: label, Playlists: playlists}
}

// FeatureTracks returns a video, a 5.1 audio, and a subtitle track in lang.
func FeatureTracks(lang string) []*disc.Track {
	return []*disc.Track{Video(1080), Audio(lang, 6), Subtitle(lang)}
}

func clipName(playlist string, n int) string {
	base := playlist
	if len(base) > 5 {
		base = base[:5]
	}
	return fmt.Sprintf("%s%d.M2TS", base, n)
}
