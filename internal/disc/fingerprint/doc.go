// Package fingerprint computes deterministic content fingerprints for disc
// playlists.
//
// A playlist fingerprint covers the playlist length and size, the ordered
// default-angle stream clips and the ordered chapter marks. Two playlists with
// the same fingerprint play the same content and are duplicate candidates. The
// disc fingerprint combines every playlist fingerprint and keys the detection
// history.
package fingerprint
