package discreader

// The document types mirror the on-disk description. JSON and YAML share
// field names.

type discDocument struct {
	VolumeLabel     string             `json:"volume_label" yaml:"volume_label"`
	DiscName        string             `json:"disc_name,omitempty" yaml:"disc_name,omitempty"`
	PrimaryLanguage string             `json:"primary_language,omitempty" yaml:"primary_language,omitempty"`
	Playlists       []playlistDocument `json:"playlists" yaml:"playlists"`
}

type playlistDocument struct {
	FileName                string                  `json:"file_name" yaml:"file_name"`
	FullPath                string                  `json:"full_path,omitempty" yaml:"full_path,omitempty"`
	FileSize                uint64                  `json:"file_size" yaml:"file_size"`
	LengthSeconds           float64                 `json:"length_seconds" yaml:"length_seconds"`
	Type                    string                  `json:"type,omitempty" yaml:"type,omitempty"`
	HasLoops                bool                    `json:"has_loops,omitempty" yaml:"has_loops,omitempty"`
	HasDuplicateStreamClips bool                    `json:"has_duplicate_stream_clips,omitempty" yaml:"has_duplicate_stream_clips,omitempty"`
	Tracks                  []trackDocument         `json:"tracks" yaml:"tracks"`
	Chapters                []chapterDocument       `json:"chapters,omitempty" yaml:"chapters,omitempty"`
	StreamClips             []clipDocument          `json:"stream_clips,omitempty" yaml:"stream_clips,omitempty"`
	ChapterSearchResults    []chapterSearchDocument `json:"chapter_search_results,omitempty" yaml:"chapter_search_results,omitempty"`
}

type trackDocument struct {
	Index       *int          `json:"index,omitempty" yaml:"index,omitempty"`
	IndexOfType *int          `json:"index_of_type,omitempty" yaml:"index_of_type,omitempty"`
	Kind        string        `json:"kind" yaml:"kind"`
	Language    string        `json:"language,omitempty" yaml:"language,omitempty"`
	Name        string        `json:"name,omitempty" yaml:"name,omitempty"`
	Hidden      bool          `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Codec       codecDocument `json:"codec" yaml:"codec"`
	Channels    int           `json:"channels,omitempty" yaml:"channels,omitempty"`
	VideoHeight int           `json:"video_height,omitempty" yaml:"video_height,omitempty"`
	VideoFormat string        `json:"video_format,omitempty" yaml:"video_format,omitempty"`
	FrameRate   float64       `json:"frame_rate,omitempty" yaml:"frame_rate,omitempty"`
	Type        string        `json:"type,omitempty" yaml:"type,omitempty"`
}

// codecDocument flags default to true when omitted.
type codecDocument struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Known   *bool  `json:"known,omitempty" yaml:"known,omitempty"`
	Muxable *bool  `json:"muxable,omitempty" yaml:"muxable,omitempty"`
}

type chapterDocument struct {
	Number       int     `json:"number,omitempty" yaml:"number,omitempty"`
	StartSeconds float64 `json:"start_seconds" yaml:"start_seconds"`
	Title        string  `json:"title,omitempty" yaml:"title,omitempty"`
}

type clipDocument struct {
	FileName      string  `json:"file_name" yaml:"file_name"`
	FileSize      uint64  `json:"file_size,omitempty" yaml:"file_size,omitempty"`
	LengthSeconds float64 `json:"length_seconds" yaml:"length_seconds"`
	TimeInSeconds float64 `json:"time_in_seconds,omitempty" yaml:"time_in_seconds,omitempty"`
	AngleIndex    int     `json:"angle_index,omitempty" yaml:"angle_index,omitempty"`
}

type chapterSearchDocument struct {
	Source   string            `json:"source" yaml:"source"`
	Title    string            `json:"title,omitempty" yaml:"title,omitempty"`
	Chapters []chapterDocument `json:"chapters" yaml:"chapters"`
}
