package autodetect_test

import (
	"context"
	"testing"
	"time"

	"discsift/internal/autodetect"
	"discsift/internal/disc"
	ts "discsift/internal/testsupport"
)

type progressEvent struct {
	source  string
	percent float64
	status  string
}

func recordProgress(events *[]progressEvent) autodetect.ProgressFunc {
	return func(source string, percent float64, status string) {
		*events = append(*events, progressEvent{source: source, percent: percent, status: status})
	}
}

// scenarioDisc builds a feature (A), a hidden-audio copy of it (B), and a
// short stereo extra (C).
func scenarioDisc() (*disc.Disc, *disc.Playlist, *disc.Playlist, *disc.Playlist) {
	a := ts.Playlist("00001.MPLS", 90*time.Minute,
		ts.Tracks(ts.Video(1080), ts.Audio("eng", 6), ts.Subtitle("eng")),
		ts.Chapters(3),
		ts.Clips("00010.M2TS"),
	)
	b := ts.Playlist("00002.MPLS", 90*time.Minute,
		ts.Tracks(ts.Video(1080), ts.Hidden(ts.Audio("eng", 6)), ts.Subtitle("eng")),
		ts.Chapters(3),
		ts.Clips("00010.M2TS"),
	)
	c := ts.Playlist("00003.MPLS", 5*time.Minute,
		ts.Tracks(ts.Video(720), ts.Audio("eng", 2)),
		ts.Chapters(1),
	)
	return ts.Disc("SCENARIO_DISC", a, b, c), a, b, c
}

func TestAutoDetectDuplicateWithHiddenAudio(t *testing.T) {
	d, a, b, c := scenarioDisc()
	job := autodetect.NewJob(d)

	outcome := autodetect.New(autodetect.DefaultOptions(), nil, nil).AutoDetect(context.Background(), job)

	if outcome.Canceled {
		t.Fatal("expected pass to complete")
	}
	if outcome.RunID == "" {
		t.Fatal("expected run id")
	}
	if !b.IsDuplicate {
		t.Fatal("expected B to be flagged duplicate")
	}
	if a.IsDuplicate || c.IsDuplicate {
		t.Fatalf("expected A and C to survive, got A=%v C=%v", a.IsDuplicate, c.IsDuplicate)
	}
	if !a.IsMaxQuality {
		t.Fatal("expected A to be max quality")
	}
	if b.IsMaxQuality || c.IsMaxQuality {
		t.Fatalf("expected only A max quality, got B=%v C=%v", b.IsMaxQuality, c.IsMaxQuality)
	}
	if a.Type != disc.RoleMainFeature {
		t.Fatalf("expected A main feature, got %s", a.Type)
	}
	if b.Type != disc.RoleMisc {
		t.Fatalf("expected duplicate B to stay misc, got %s", b.Type)
	}
	for _, track := range b.Tracks {
		if track.Type == disc.RoleSpecialFeature {
			t.Fatalf("expected no B track typed special feature, got %s", track.Describe())
		}
	}
	if c.Type != disc.RoleMisc {
		t.Fatalf("expected C misc, got %s", c.Type)
	}
	if !job.HasSelection() || job.SelectedPlaylistIndex != 0 {
		t.Fatalf("expected A selected, got index %d", job.SelectedPlaylistIndex)
	}
	if !a.IsBestGuess || b.IsBestGuess || c.IsBestGuess {
		t.Fatalf("unexpected best guess flags A=%v B=%v C=%v", a.IsBestGuess, b.IsBestGuess, c.IsBestGuess)
	}
	for _, track := range a.Tracks {
		if !track.Keep || !track.IsBestGuess {
			t.Fatalf("expected every A track kept, %s was not", track.Describe())
		}
	}
	if d.PrimaryLanguage != "eng" {
		t.Fatalf("expected primary language eng, got %q", d.PrimaryLanguage)
	}
	if outcome.Duplicates != 1 || outcome.MainFeatures != 1 {
		t.Fatalf("unexpected outcome counts: %+v", outcome)
	}
	if outcome.FeatureBaseline != 90*time.Minute || outcome.MaxAudioChannels != 6 || outcome.MaxVideoHeight != 1080 {
		t.Fatalf("unexpected quality summary: %+v", outcome)
	}
}

func TestAutoDetectNoValidMainFeature(t *testing.T) {
	extra := ts.Playlist("00005.MPLS", 3*time.Minute,
		ts.Tracks(ts.Video(1080), ts.Audio("eng", 2)),
	)
	junk := ts.Playlist("00006.MPLS", 20*time.Second, ts.Tracks(ts.Video(480)))
	d := ts.Disc("EXTRAS", extra, junk)
	job := autodetect.NewJob(d)

	autodetect.New(autodetect.DefaultOptions(), nil, nil).AutoDetect(context.Background(), job)

	if job.HasSelection() {
		t.Fatalf("expected no selection, got %d", job.SelectedPlaylistIndex)
	}
	if job.SelectedPlaylistIndex != autodetect.NoSelection {
		t.Fatalf("expected selection index to stay unset, got %d", job.SelectedPlaylistIndex)
	}
	for _, playlist := range d.Playlists {
		if playlist.IsBestGuess {
			t.Fatalf("expected %s not to be a best guess", playlist.FileName)
		}
	}
}

func TestAutoDetectReportsMilestones(t *testing.T) {
	d, _, _, _ := scenarioDisc()
	var events []progressEvent

	autodetect.New(autodetect.DefaultOptions(), nil, recordProgress(&events)).AutoDetect(context.Background(), autodetect.NewJob(d))

	want := []float64{0, 25, 75, 100}
	if len(events) != len(want) {
		t.Fatalf("expected %d progress events, got %+v", len(want), events)
	}
	for i, event := range events {
		if event.percent != want[i] {
			t.Fatalf("event %d: percent %v, want %v", i, event.percent, want[i])
		}
		if event.source != autodetect.ProgressSource {
			t.Fatalf("event %d: source %q", i, event.source)
		}
		if event.status == "" {
			t.Fatalf("event %d: empty status", i)
		}
	}
}

func TestAutoDetectCanceledKeepsPartialFlags(t *testing.T) {
	d, a, b, _ := scenarioDisc()
	job := autodetect.NewJob(d)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var events []progressEvent

	outcome := autodetect.New(autodetect.DefaultOptions(), nil, recordProgress(&events)).AutoDetect(ctx, job)

	if !outcome.Canceled {
		t.Fatal("expected canceled outcome")
	}
	if !outcome.Ran(autodetect.PhaseGather) || outcome.Ran(autodetect.PhaseClassify) {
		t.Fatalf("expected only the gather phase to complete, got %v", outcome.Completed)
	}
	if len(events) != 1 || events[0].percent != 0 {
		t.Fatalf("expected only the start milestone, got %+v", events)
	}
	if !b.IsDuplicate {
		t.Fatal("expected gather-phase duplicate flag to remain")
	}
	if a.IsMaxQuality || a.Type == disc.RoleMainFeature {
		t.Fatal("expected classification not to run")
	}
	if job.HasSelection() {
		t.Fatal("expected no selection after cancel")
	}
}

func TestAutoDetectIsIdempotent(t *testing.T) {
	d, _, _, _ := scenarioDisc()
	detector := autodetect.New(autodetect.DefaultOptions(), nil, nil)
	job := autodetect.NewJob(d)

	detector.AutoDetect(context.Background(), job)
	first := snapshot(d)
	firstSelection := job.SelectedPlaylistIndex

	detector.AutoDetect(context.Background(), job)
	second := snapshot(d)

	if job.SelectedPlaylistIndex != firstSelection {
		t.Fatalf("selection changed: %d then %d", firstSelection, job.SelectedPlaylistIndex)
	}
	if len(first) != len(second) {
		t.Fatalf("snapshot size changed")
	}
	for key, value := range first {
		if second[key] != value {
			t.Fatalf("%s changed from %q to %q", key, value, second[key])
		}
	}
}

func TestAutoDetectPreferredLanguageWins(t *testing.T) {
	feature := ts.Playlist("00001.MPLS", 100*time.Minute,
		ts.Tracks(ts.Video(1080), ts.Audio("eng", 6), ts.Audio("fre", 6), ts.Subtitle("eng"), ts.Subtitle("fre")),
		ts.Chapters(12),
	)
	d := ts.Disc("FRENCH_PREF", feature)
	opts := autodetect.DefaultOptions()
	opts.PreferredLanguage = "fr"

	autodetect.New(opts, nil, nil).AutoDetect(context.Background(), autodetect.NewJob(d))

	if d.PrimaryLanguage != "fra" {
		t.Fatalf("expected primary language fra, got %q", d.PrimaryLanguage)
	}
	audio := feature.AudioTracks()
	if audio[0].Keep || !audio[1].Keep {
		t.Fatalf("expected only the French audio kept, got eng=%v fra=%v", audio[0].Keep, audio[1].Keep)
	}
	subs := feature.SubtitleTracks()
	if subs[0].Keep || !subs[1].Keep {
		t.Fatalf("expected only the French subtitle kept, got eng=%v fra=%v", subs[0].Keep, subs[1].Keep)
	}
}

func TestAutoDetectWithoutDisc(t *testing.T) {
	outcome := autodetect.New(autodetect.DefaultOptions(), nil, nil).AutoDetect(context.Background(), autodetect.NewJob(nil))
	if outcome.Canceled || len(outcome.Completed) != 0 {
		t.Fatalf("expected empty outcome, got %+v", outcome)
	}
}

func snapshot(d *disc.Disc) map[string]string {
	out := make(map[string]string)
	for _, playlist := range d.Playlists {
		out[playlist.FileName] = playlist.Type.String() +
			flag(playlist.IsDuplicate) + flag(playlist.IsMaxQuality) + flag(playlist.IsBestGuess)
		for _, track := range playlist.Tracks {
			out[playlist.FileName+"/"+track.Describe()] = track.Type.String() + flag(track.Keep) + flag(track.IsBestGuess)
		}
	}
	return out
}

func flag(v bool) string {
	if v {
		return "+"
	}
	return "-"
}
