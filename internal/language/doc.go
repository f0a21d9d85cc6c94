// Package language normalizes the language codes found on disc tracks.
//
// Disc readers report ISO 639-2 codes (sometimes the bibliographic variant),
// configuration files tend to use ISO 639-1 or plain words. Everything is
// folded to one canonical form here so language grouping and primary
// language matching compare like with like. A small built-in table covers
// the common disc languages; anything else falls back to golang.org/x/text.
package language
