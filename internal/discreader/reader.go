package discreader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"discsift/internal/disc"
)

// ErrUnsupportedFormat is returned for descriptions that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported disc description format")

// Format names a description encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Reader produces a fully populated disc from a source location.
type Reader interface {
	ReadDisc(ctx context.Context, source string) (*disc.Disc, error)
}

// FileReader reads descriptions from the local filesystem.
type FileReader struct{}

// NewFileReader returns a FileReader.
func NewFileReader() *FileReader {
	return &FileReader{}
}

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// ReadDisc loads and converts the description at path.
func (FileReader) ReadDisc(ctx context.Context, path string) (*disc.Disc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open disc description: %w", err)
	}
	defer file.Close()

	d, err := Decode(file, format)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return d, nil
}

// Decode parses a description in the given format. Unknown fields are rejected.
func Decode(r io.Reader, format Format) (*disc.Disc, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read disc description: %w", err)
	}

	var doc discDocument
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("decode yaml: empty document")
			}
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return doc.toDisc()
}

func (doc discDocument) toDisc() (*disc.Disc, error) {
	d := &disc.Disc{
		VolumeLabel:     strings.TrimSpace(doc.VolumeLabel),
		DiscName:        strings.TrimSpace(doc.DiscName),
		PrimaryLanguage: strings.TrimSpace(doc.PrimaryLanguage),
		Playlists:       make([]*disc.Playlist, 0, len(doc.Playlists)),
	}
	seen := make(map[string]struct{}, len(doc.Playlists))
	for i, pd := range doc.Playlists {
		playlist, err := pd.toPlaylist()
		if err != nil {
			return nil, fmt.Errorf("playlist %d: %w", i, err)
		}
		key := strings.ToUpper(playlist.FileName)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("playlist %d: duplicate file name %q", i, playlist.FileName)
		}
		seen[key] = struct{}{}
		d.Playlists = append(d.Playlists, playlist)
	}
	return d, nil
}

func (pd playlistDocument) toPlaylist() (*disc.Playlist, error) {
	name := strings.TrimSpace(pd.FileName)
	if name == "" {
		return nil, errors.New("file_name is required")
	}
	length, err := seconds("length_seconds", pd.LengthSeconds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	role, err := disc.ParseRole(pd.Type)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	playlist := &disc.Playlist{
		FileName:                name,
		FullPath:                strings.TrimSpace(pd.FullPath),
		FileSize:                pd.FileSize,
		Length:                  length,
		Type:                    role,
		HasLoops:                pd.HasLoops,
		HasDuplicateStreamClips: pd.HasDuplicateStreamClips,
	}

	explicitIndexes := len(pd.Tracks) > 0
	for i, td := range pd.Tracks {
		track, err := td.toTrack()
		if err != nil {
			return nil, fmt.Errorf("%s track %d: %w", name, i, err)
		}
		if td.Index == nil || td.IndexOfType == nil {
			explicitIndexes = false
		}
		playlist.Tracks = append(playlist.Tracks, track)
	}
	if !explicitIndexes {
		playlist.IndexTracks()
	}

	for i, cd := range pd.Chapters {
		chapter, err := cd.toChapter(i)
		if err != nil {
			return nil, fmt.Errorf("%s chapter %d: %w", name, i+1, err)
		}
		playlist.Chapters = append(playlist.Chapters, &chapter)
	}

	for i, cd := range pd.StreamClips {
		clip, err := cd.toClip(i)
		if err != nil {
			return nil, fmt.Errorf("%s clip %d: %w", name, i, err)
		}
		playlist.StreamClips = append(playlist.StreamClips, clip)
	}

	for _, sd := range pd.ChapterSearchResults {
		result := disc.ChapterSearchResult{Source: sd.Source, Title: sd.Title}
		for i, cd := range sd.Chapters {
			chapter, err := cd.toChapter(i)
			if err != nil {
				return nil, fmt.Errorf("%s chapter search %q: %w", name, sd.Source, err)
			}
			result.Chapters = append(result.Chapters, chapter)
		}
		playlist.ChapterSearchResults = append(playlist.ChapterSearchResults, result)
	}
	return playlist, nil
}

func (td trackDocument) toTrack() (*disc.Track, error) {
	if strings.TrimSpace(td.Kind) == "" {
		return nil, errors.New("kind is required")
	}
	kind, err := disc.ParseTrackKind(td.Kind)
	if err != nil {
		return nil, err
	}
	role, err := disc.ParseRole(td.Type)
	if err != nil {
		return nil, err
	}
	if td.Channels < 0 || td.VideoHeight < 0 {
		return nil, errors.New("channels and video_height must not be negative")
	}

	track := &disc.Track{
		Kind:     kind,
		Language: strings.TrimSpace(td.Language),
		Name:     strings.TrimSpace(td.Name),
		IsHidden: td.Hidden,
		Codec: disc.Codec{
			ID:        strings.TrimSpace(td.Codec.ID),
			Name:      strings.TrimSpace(td.Codec.Name),
			IsKnown:   boolOr(td.Codec.Known, true),
			IsMuxable: boolOr(td.Codec.Muxable, true),
		},
		VideoFormat: strings.TrimSpace(td.VideoFormat),
		FrameRate:   td.FrameRate,
		Type:        role,
	}
	switch kind {
	case disc.TrackKindAudio:
		track.ChannelCount = td.Channels
	case disc.TrackKindVideo:
		track.VideoHeight = td.VideoHeight
	}
	if td.Index != nil {
		track.Index = *td.Index
	}
	if td.IndexOfType != nil {
		track.IndexOfType = *td.IndexOfType
	}
	return track, nil
}

// toChapter numbers chapters by position when the document omits numbers.
func (cd chapterDocument) toChapter(position int) (disc.Chapter, error) {
	start, err := seconds("start_seconds", cd.StartSeconds)
	if err != nil {
		return disc.Chapter{}, err
	}
	number := cd.Number
	if number <= 0 {
		number = position + 1
	}
	return disc.Chapter{Number: number, StartTime: start, Title: strings.TrimSpace(cd.Title)}, nil
}

func (cd clipDocument) toClip(position int) (*disc.StreamClip, error) {
	name := strings.TrimSpace(cd.FileName)
	if name == "" {
		return nil, errors.New("file_name is required")
	}
	length, err := seconds("length_seconds", cd.LengthSeconds)
	if err != nil {
		return nil, err
	}
	timeIn, err := seconds("time_in_seconds", cd.TimeInSeconds)
	if err != nil {
		return nil, err
	}
	if cd.AngleIndex < 0 {
		return nil, errors.New("angle_index must not be negative")
	}
	return &disc.StreamClip{
		FileName:   name,
		FileSize:   cd.FileSize,
		Length:     length,
		TimeIn:     timeIn,
		Index:      position,
		AngleIndex: cd.AngleIndex,
	}, nil
}

func seconds(field string, value float64) (time.Duration, error) {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be a non-negative number, got %v", field, value)
	}
	return time.Duration(math.Round(value * float64(time.Second))), nil
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
