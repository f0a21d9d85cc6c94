package autodetect

import (
	"testing"
	"time"

	"discsift/internal/disc"
	ts "discsift/internal/testsupport"
)

func TestAnalyzeClips(t *testing.T) {
	tests := []struct {
		name           string
		clips          []*disc.StreamClip
		wantDuplicates bool
		wantLoops      bool
	}{
		{
			name: "distinct clips",
			clips: []*disc.StreamClip{
				{FileName: "00001.M2TS"},
				{FileName: "00002.M2TS"},
			},
		},
		{
			name: "clip reused at a new in point",
			clips: []*disc.StreamClip{
				{FileName: "00001.M2TS", TimeIn: 0},
				{FileName: "00001.m2ts", TimeIn: 10 * time.Minute},
			},
			wantDuplicates: true,
		},
		{
			name: "clip replayed from the same in point",
			clips: []*disc.StreamClip{
				{FileName: "00001.M2TS"},
				{FileName: "00002.M2TS"},
				{FileName: "00001.M2TS"},
			},
			wantDuplicates: true,
			wantLoops:      true,
		},
		{
			name: "repeat only on an alternate angle",
			clips: []*disc.StreamClip{
				{FileName: "00001.M2TS"},
				{FileName: "00001.M2TS", AngleIndex: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			playlist := ts.Playlist("00001.MPLS", time.Hour)
			playlist.StreamClips = tt.clips

			analyzeClips(playlist)

			if playlist.HasDuplicateStreamClips != tt.wantDuplicates {
				t.Fatalf("HasDuplicateStreamClips = %v, want %v", playlist.HasDuplicateStreamClips, tt.wantDuplicates)
			}
			if playlist.HasLoops != tt.wantLoops {
				t.Fatalf("HasLoops = %v, want %v", playlist.HasLoops, tt.wantLoops)
			}
		})
	}
}

func TestAnalyzeClipsKeepsReaderFlags(t *testing.T) {
	playlist := ts.Playlist("00001.MPLS", time.Hour)
	playlist.HasLoops = true

	analyzeClips(playlist)

	if !playlist.HasLoops {
		t.Fatal("expected reader-set loop flag to be preserved")
	}
}
