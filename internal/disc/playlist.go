package disc

import "time"

// StreamClip is one media segment referenced by a playlist.
type StreamClip struct {
	FileName   string
	FileSize   uint64
	Length     time.Duration
	TimeIn     time.Duration
	Index      int
	AngleIndex int
}

// Chapter is a chapter mark within a playlist. Numbers are 1-based.
type Chapter struct {
	Number    int
	StartTime time.Duration
	Title     string
	Keep      bool
}

// ChapterSearchResult is an alternative chapter set supplied by an external
// lookup. The detection pass never reads it.
type ChapterSearchResult struct {
	Source   string
	Title    string
	Chapters []Chapter
}

// Playlist is one selectable title on the disc.
type Playlist struct {
	FileName string
	FullPath string
	FileSize uint64
	Length   time.Duration

	Tracks               []*Track
	Chapters             []*Chapter
	StreamClips          []*StreamClip
	ChapterSearchResults []ChapterSearchResult

	// Written by the detection pass.
	IsDuplicate             bool
	HasDuplicateStreamClips bool
	HasLoops                bool
	IsMaxQuality            bool
	IsBestGuess             bool
	Type                    Role
}

func (p *Playlist) tracksOf(kind TrackKind) []*Track {
	if p == nil {
		return nil
	}
	out := make([]*Track, 0, len(p.Tracks))
	for _, track := range p.Tracks {
		if track != nil && track.Kind == kind {
			out = append(out, track)
		}
	}
	return out
}

// VideoTracks returns the video tracks in playlist order.
func (p *Playlist) VideoTracks() []*Track { return p.tracksOf(TrackKindVideo) }

// AudioTracks returns the audio tracks in playlist order.
func (p *Playlist) AudioTracks() []*Track { return p.tracksOf(TrackKindAudio) }

// SubtitleTracks returns the subtitle tracks in playlist order.
func (p *Playlist) SubtitleTracks() []*Track { return p.tracksOf(TrackKindSubtitle) }

// MaxAvailableVideoResolution returns the tallest video height in the playlist.
func (p *Playlist) MaxAvailableVideoResolution() int {
	height := 0
	for _, track := range p.VideoTracks() {
		height = max(height, track.VideoHeight)
	}
	return height
}

// MaxSelectedVideoResolution returns the tallest video height among kept tracks.
func (p *Playlist) MaxSelectedVideoResolution() int {
	height := 0
	for _, track := range p.VideoTracks() {
		if track.Keep {
			height = max(height, track.VideoHeight)
		}
	}
	return height
}

// MaxAudioChannels returns the highest channel count among audio tracks.
func (p *Playlist) MaxAudioChannels() int {
	channels := 0
	for _, track := range p.AudioTracks() {
		channels = max(channels, track.ChannelCount)
	}
	return channels
}

// HasHiddenFirstTracks reports whether the first video or first audio track is hidden.
func (p *Playlist) HasHiddenFirstTracks() bool {
	if video := p.VideoTracks(); len(video) > 0 && video[0].IsHidden {
		return true
	}
	if audio := p.AudioTracks(); len(audio) > 0 && audio[0].IsHidden {
		return true
	}
	return false
}

// HiddenTrackCount returns the number of hidden tracks of any kind.
func (p *Playlist) HiddenTrackCount() int {
	if p == nil {
		return 0
	}
	count := 0
	for _, track := range p.Tracks {
		if track != nil && track.IsHidden {
			count++
		}
	}
	return count
}

// IsBogus reports whether the playlist is a duplicate, references the same
// clip twice, loops, or hides its leading tracks.
func (p *Playlist) IsBogus() bool {
	if p == nil {
		return true
	}
	return p.IsDuplicate || p.HasDuplicateStreamClips || p.HasLoops || p.HasHiddenFirstTracks()
}

// HasMinimumStructure reports whether the playlist carries at least one
// video, audio and subtitle track and at least minChapters chapters.
func (p *Playlist) HasMinimumStructure(minChapters int) bool {
	if p == nil {
		return false
	}
	return len(p.VideoTracks()) > 0 &&
		len(p.AudioTracks()) > 0 &&
		len(p.SubtitleTracks()) > 0 &&
		len(p.Chapters) >= minChapters
}

// DefaultMainFeatureChapters is the chapter count a plausible main feature needs.
const DefaultMainFeatureChapters = 2

// IsPlausibleMainFeature applies HasMinimumStructure with the default chapter minimum.
func (p *Playlist) IsPlausibleMainFeature() bool {
	return p.HasMinimumStructure(DefaultMainFeatureChapters)
}

// HasVideoCommentary reports whether the primary video track is typed commentary.
func (p *Playlist) HasVideoCommentary() bool {
	video := p.VideoTracks()
	return len(video) > 0 && video[0].Type == RoleCommentary
}

// IsValidMainFeature reports whether the playlist is a main feature that is not bogus.
func (p *Playlist) IsValidMainFeature() bool {
	return p != nil && p.Type == RoleMainFeature && !p.IsBogus()
}

// DefaultAngleClips returns the stream clips of the default angle in order.
func (p *Playlist) DefaultAngleClips() []*StreamClip {
	if p == nil {
		return nil
	}
	out := make([]*StreamClip, 0, len(p.StreamClips))
	for _, clip := range p.StreamClips {
		if clip != nil && clip.AngleIndex == 0 {
			out = append(out, clip)
		}
	}
	return out
}

// KeptTracks returns the tracks currently selected for output.
func (p *Playlist) KeptTracks() []*Track {
	if p == nil {
		return nil
	}
	out := make([]*Track, 0, len(p.Tracks))
	for _, track := range p.Tracks {
		if track != nil && track.Keep {
			out = append(out, track)
		}
	}
	return out
}

// IndexTracks fills Index with each track's position and IndexOfType with
// its position among tracks of the same kind.
func (p *Playlist) IndexTracks() {
	if p == nil {
		return
	}
	perKind := make(map[TrackKind]int)
	for i, track := range p.Tracks {
		if track == nil {
			continue
		}
		track.Index = i
		track.IndexOfType = perKind[track.Kind]
		perKind[track.Kind]++
	}
}
