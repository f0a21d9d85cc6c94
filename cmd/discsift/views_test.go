package main

import (
	"bytes"
	"testing"
	"time"

	"discsift/internal/disc"
	"discsift/internal/report"
)

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"length", formatLength(2*time.Hour + 3*time.Minute + 4*time.Second), "2:03:04"},
		{"zero length", formatLength(0), "0:00:00"},
		{"size", formatSize(1536), "1.5 KiB"},
		{"zero size", formatSize(0), "-"},
		{"language", formatLanguage("eng"), "English (eng)"},
		{"undetermined language", formatLanguage("und"), "-"},
		{"unset role", formatRole(disc.RoleUnset), "-"},
		{"role", formatRole(disc.RoleSpecialFeature), "Special Feature"},
		{"flags", formatFlags([]string{"duplicate", "loops"}), "duplicate, loops"},
		{"short id", shortID("0123456789abcdef"), "01234567"},
		{"fingerprint", formatFingerprint("abcdefabcdefabcdef"), "abcdefabcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestBuildTrackRows(t *testing.T) {
	rows := buildTrackRows([]report.TrackReport{
		{Index: 0, Kind: disc.TrackKindVideo, VideoHeight: 1080, Type: disc.RoleMainFeature, Keep: true, BestGuess: true},
		{Index: 1, Kind: disc.TrackKindAudio, Language: "eng", Channels: 2, Hidden: true, Type: disc.RoleCommentary},
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][4] != "1080p" || rows[0][6] != "default" {
		t.Fatalf("unexpected video row: %v", rows[0])
	}
	if rows[1][4] != "2ch hidden" || rows[1][5] != "Commentary" || rows[1][6] != "" {
		t.Fatalf("unexpected audio row: %v", rows[1])
	}
}

func TestProgressLine(t *testing.T) {
	var buf bytes.Buffer
	line := newProgressLine(&buf, true)
	line.ReportProgress("autodetect", 25, "classifying playlists")
	line.ReportProgress("autodetect", 100, "done")
	line.finish()

	want := "\r[ 25%] classifying playlists\r[100%] done" + "                 " + "\n"
	if buf.String() != want {
		t.Fatalf("progress output = %q, want %q", buf.String(), want)
	}

	var quiet bytes.Buffer
	silent := newProgressLine(&quiet, false)
	silent.ReportProgress("autodetect", 50, "ignored")
	silent.finish()
	if quiet.Len() != 0 {
		t.Fatalf("expected no output when not interactive, got %q", quiet.String())
	}
}

func TestStatusWriterPlain(t *testing.T) {
	var buf bytes.Buffer
	w := newStatusWriter(&buf)
	w.section("Preflight")
	w.line("Data directory", statusOK, "/tmp (read/write ok)")
	w.line("History", statusError, "")

	want := "== Preflight ==\n" +
		"---------------\n" +
		"  Data directory:      [OK] /tmp (read/write ok)\n" +
		"  History:             [ERROR]\n"
	if buf.String() != want {
		t.Fatalf("status output = %q, want %q", buf.String(), want)
	}
}
