// Package disc holds the structural model of a scanned optical disc.
//
// A Disc is an ordered set of playlists; each Playlist references stream
// clips, chapters and elementary tracks. The disc reader populates the
// structural fields, and the autodetect package writes the derived flags
// (duplicate, max quality, best guess, roles) in place during a single
// detection pass. Everything else here is a read-only view over that graph:
// track groupings by kind, resolution and channel maxima, and the bogus
// predicate that the detection phases share.
//
// Only the default angle (AngleIndex 0) of a playlist is considered by any
// accessor that looks at stream clips.
package disc
