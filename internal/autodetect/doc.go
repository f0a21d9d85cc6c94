// Package autodetect classifies the playlists and tracks of a scanned disc
// and picks the defaults a user would most likely want.
//
// A pass runs three ordered phases over a fully populated disc.Disc:
// gathering (clip analysis, language inference, duplicate detection),
// classification (quality tier, playlist roles, track roles), and selection
// (best-guess playlist and default tracks). Values produced by one phase are
// handed to the next as parameters. Flags are written in place on the disc
// graph and are only ever set, never cleared, so a canceled pass leaves the
// flags of completed phases visible and a repeated pass is a no-op.
package autodetect
