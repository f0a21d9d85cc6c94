// Package discreader loads disc descriptions produced by an external disc
// scanner. Descriptions are JSON or YAML documents listing playlists with
// their tracks, chapters, and stream clips; lengths and offsets are given in
// seconds. The reader fills track indexes that the document leaves out and
// rejects structurally invalid input before the detection pass sees it.
package discreader
