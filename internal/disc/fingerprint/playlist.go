package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sort"
	"strconv"
	"strings"
	"time"

	"discsift/internal/disc"
)

// Playlist returns the content fingerprint of a playlist. Track metadata and
// the file name are intentionally excluded so renamed copies still match.
func Playlist(playlist *disc.Playlist) string {
	if playlist == nil {
		return ""
	}
	hasher := sha256.New()

	writeComponent(hasher, durationComponent(playlist.Length))
	writeComponent(hasher, strconv.FormatUint(playlist.FileSize, 10))

	clips := playlist.DefaultAngleClips()
	writeComponent(hasher, "clips:"+strconv.Itoa(len(clips)))
	for _, clip := range clips {
		writeComponent(hasher, strings.ToUpper(strings.TrimSpace(clip.FileName)))
		writeComponent(hasher, durationComponent(clip.Length))
		writeComponent(hasher, strconv.FormatUint(clip.FileSize, 10))
	}

	chapters := make([]*disc.Chapter, 0, len(playlist.Chapters))
	for _, chapter := range playlist.Chapters {
		if chapter != nil {
			chapters = append(chapters, chapter)
		}
	}
	writeComponent(hasher, "chapters:"+strconv.Itoa(len(chapters)))
	for _, chapter := range chapters {
		writeComponent(hasher, strconv.Itoa(chapter.Number))
		writeComponent(hasher, durationComponent(chapter.StartTime))
	}

	return hex.EncodeToString(hasher.Sum(nil))
}

// Disc returns a fingerprint for the whole disc built from the sorted
// playlist file names and their content fingerprints.
func Disc(d *disc.Disc) string {
	if d == nil {
		return ""
	}
	entries := make([]string, 0, len(d.Playlists))
	for _, playlist := range d.Playlists {
		name := strings.ToUpper(strings.TrimSpace(playlist.FileName))
		entries = append(entries, name+"="+Playlist(playlist))
	}
	sort.Strings(entries)

	hasher := sha256.New()
	writeComponent(hasher, strings.TrimSpace(d.VolumeLabel))
	for _, entry := range entries {
		writeComponent(hasher, entry)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

func durationComponent(d time.Duration) string {
	return strconv.FormatInt(int64(d), 10)
}

func writeComponent(hasher hash.Hash, value string) {
	_, _ = hasher.Write([]byte(value))
	_, _ = hasher.Write([]byte{0})
}
