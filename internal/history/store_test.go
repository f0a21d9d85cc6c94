package history_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"discsift/internal/config"
	"discsift/internal/disc"
	"discsift/internal/history"
	"discsift/internal/report"
	"discsift/internal/testsupport"
)

func sampleReport(runID, fingerprint string, started time.Time) report.Report {
	return report.Report{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
		Phases:     []string{"gather", "classify", "select"},
		Disc: report.DiscSummary{
			Title:       "Report Sample",
			Fingerprint: fingerprint,
		},
		SelectedPlaylist: "00800.MPLS",
		Playlists: []report.PlaylistReport{
			{FileName: "00800.MPLS", Type: disc.RoleMainFeature, Selected: true},
			{FileName: "00010.MPLS", Type: disc.RoleSpecialFeature},
		},
	}
}

func openStore(t *testing.T, cfg *config.Config) *history.Store {
	t.Helper()
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustRecord(t *testing.T, store *history.Store, rep report.Report) *history.Run {
	t.Helper()
	run, err := history.NewRun("/discs/sample.json", rep)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	if err := store.Record(context.Background(), run); err != nil {
		t.Fatalf("Record: %v", err)
	}
	return run
}

func TestRecordAndGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := openStore(t, cfg)

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recorded := mustRecord(t, store, sampleReport("0f9d8e7c-1111-4222-8333-444455556666", "fp-a", started))
	if recorded.ID == 0 {
		t.Fatal("expected Record to assign a row id")
	}

	got, err := store.Get(context.Background(), recorded.RunID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.DiscTitle != "Report Sample" || got.SelectedPlaylist != "00800.MPLS" {
		t.Fatalf("unexpected run: %+v", got)
	}
	if got.PlaylistCount != 2 || got.MainFeatureCount != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", got.PlaylistCount, got.MainFeatureCount)
	}
	if got.SourcePath != "/discs/sample.json" {
		t.Fatalf("source path = %q", got.SourcePath)
	}
	if !got.StartedAt.Equal(started) {
		t.Fatalf("started at = %v, want %v", got.StartedAt, started)
	}
	if got.Duration() != 1500*time.Millisecond {
		t.Fatalf("duration = %v", got.Duration())
	}

	rep, err := got.Report()
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if len(rep.Playlists) != 2 || rep.Playlists[0].Type != disc.RoleMainFeature {
		t.Fatalf("decoded report mismatch: %+v", rep.Playlists)
	}
}

func TestGetByPrefix(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := openStore(t, cfg)
	now := time.Now().UTC()

	mustRecord(t, store, sampleReport("abcd1111-0000-4000-8000-000000000001", "fp-a", now))
	mustRecord(t, store, sampleReport("abcd2222-0000-4000-8000-000000000002", "fp-b", now))

	got, err := store.Get(context.Background(), "abcd2")
	if err != nil {
		t.Fatalf("Get prefix: %v", err)
	}
	if got.DiscFingerprint != "fp-b" {
		t.Fatalf("prefix resolved to %q", got.DiscFingerprint)
	}

	if _, err := store.Get(context.Background(), "abcd"); !errors.Is(err, history.ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	if _, err := store.Get(context.Background(), "abc"); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("short prefix should not match, got %v", err)
	}
	if _, err := store.Get(context.Background(), "ffff"); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirstAndPrune(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHistory(true, 3))
	store := openStore(t, cfg)
	base := time.Now().UTC()

	ids := []string{
		"00000001-0000-4000-8000-000000000000",
		"00000002-0000-4000-8000-000000000000",
		"00000003-0000-4000-8000-000000000000",
		"00000004-0000-4000-8000-000000000000",
	}
	for i, id := range ids {
		mustRecord(t, store, sampleReport(id, "fp", base.Add(time.Duration(i)*time.Minute)))
	}

	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected pruning to keep 3 runs, got %d", len(runs))
	}
	if runs[0].RunID != ids[3] || runs[2].RunID != ids[1] {
		t.Fatalf("unexpected order: %s .. %s", runs[0].RunID, runs[2].RunID)
	}

	limited, err := store.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List limit: %v", err)
	}
	if len(limited) != 1 || limited[0].RunID != ids[3] {
		t.Fatalf("limit 1 returned %+v", limited)
	}
}

func TestForFingerprint(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := openStore(t, cfg)
	now := time.Now().UTC()

	mustRecord(t, store, sampleReport("aaaa0000-0000-4000-8000-000000000001", "fp-a", now))
	mustRecord(t, store, sampleReport("bbbb0000-0000-4000-8000-000000000002", "fp-b", now))
	mustRecord(t, store, sampleReport("cccc0000-0000-4000-8000-000000000003", "fp-a", now))

	runs, err := store.ForFingerprint(context.Background(), "fp-a")
	if err != nil {
		t.Fatalf("ForFingerprint: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID[:4] != "cccc" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	none, err := store.ForFingerprint(context.Background(), "")
	if err != nil || len(none) != 0 {
		t.Fatalf("empty fingerprint = %v, %v", none, err)
	}
}

func TestClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := openStore(t, cfg)
	mustRecord(t, store, sampleReport("dddd0000-0000-4000-8000-000000000001", "fp", time.Now()))

	removed, err := store.Clear(context.Background())
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	count, err := store.Count(context.Background())
	if err != nil || count != 0 {
		t.Fatalf("count after clear = %d, %v", count, err)
	}
}

func TestRecordFailsWhileLockHeld(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := openStore(t, cfg)

	other := flock.New(cfg.HistoryLockPath())
	locked, err := other.TryLock()
	if err != nil || !locked {
		t.Fatalf("TryLock: %v %v", locked, err)
	}
	defer func() { _ = other.Unlock() }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	run, err := history.NewRun("", sampleReport("eeee0000-0000-4000-8000-000000000001", "fp", time.Now()))
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	if err := store.Record(ctx, run); err == nil {
		t.Fatal("expected Record to fail while another holder has the lock")
	}
}

func TestNewRunRequiresRunID(t *testing.T) {
	if _, err := history.NewRun("", report.Report{}); err == nil {
		t.Fatal("expected error for report without run id")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := openStore(t, cfg)
	path := store.Path()
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("update version: %v", err)
	}
	_ = db.Close()

	if _, err := history.Open(cfg); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database should be left in place: %v", err)
	}
}
