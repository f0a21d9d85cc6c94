package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"discsift/internal/disc"
	"discsift/internal/report"
)

// ErrNotFound is returned when no recorded run matches a lookup.
var ErrNotFound = errors.New("run not found")

// ErrAmbiguous is returned when a run ID prefix matches more than one run.
var ErrAmbiguous = errors.New("run id prefix is ambiguous")

// minPrefixLen is the shortest run ID prefix accepted by Get.
const minPrefixLen = 4

// Run is one recorded detection pass.
type Run struct {
	ID               int64
	RunID            string
	SourcePath       string
	DiscFingerprint  string
	DiscTitle        string
	SelectedPlaylist string
	PlaylistCount    int
	MainFeatureCount int
	Canceled         bool
	StartedAt        time.Time
	FinishedAt       time.Time
	ReportJSON       string
}

// NewRun captures a report for storage.
func NewRun(sourcePath string, rep report.Report) (*Run, error) {
	if strings.TrimSpace(rep.RunID) == "" {
		return nil, errors.New("history: report has no run id")
	}
	payload, err := rep.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	mainFeatures := 0
	for _, playlist := range rep.Playlists {
		if playlist.Type == disc.RoleMainFeature {
			mainFeatures++
		}
	}
	return &Run{
		RunID:            rep.RunID,
		SourcePath:       sourcePath,
		DiscFingerprint:  rep.Disc.Fingerprint,
		DiscTitle:        rep.Disc.Title,
		SelectedPlaylist: rep.SelectedPlaylist,
		PlaylistCount:    len(rep.Playlists),
		MainFeatureCount: mainFeatures,
		Canceled:         rep.Canceled,
		StartedAt:        rep.StartedAt,
		FinishedAt:       rep.FinishedAt,
		ReportJSON:       string(payload),
	}, nil
}

// Report decodes the stored report payload.
func (r *Run) Report() (report.Report, error) {
	if r == nil || r.ReportJSON == "" {
		return report.Report{}, errors.New("history: run has no report")
	}
	return report.Unmarshal([]byte(r.ReportJSON))
}

// Duration returns how long the pass took.
func (r *Run) Duration() time.Duration {
	if r == nil || r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

const runColumns = `id, run_id, source_path, disc_fingerprint, disc_title, selected_playlist,
    playlist_count, main_feature_count, canceled, started_at, finished_at, report_json`

// Record stores a run and prunes the oldest entries beyond history.max_entries.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("history: run is nil")
	}
	ctx = ensureContext(ctx)
	return s.withWriteLock(ctx, func() error {
		res, err := s.execWithRetry(ctx, `INSERT INTO runs (
            run_id, source_path, disc_fingerprint, disc_title, selected_playlist,
            playlist_count, main_feature_count, canceled, started_at, finished_at, report_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID,
			nullableString(run.SourcePath),
			run.DiscFingerprint,
			nullableString(run.DiscTitle),
			nullableString(run.SelectedPlaylist),
			run.PlaylistCount,
			run.MainFeatureCount,
			boolToInt(run.Canceled),
			formatTime(run.StartedAt),
			nullableTime(run.FinishedAt),
			run.ReportJSON,
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		if id, idErr := res.LastInsertId(); idErr == nil {
			run.ID = id
		}
		if s.maxEntries > 0 {
			if _, err := s.prune(ctx, s.maxEntries); err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns up to limit runs, newest first. A limit of zero returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + runColumns + " FROM runs ORDER BY id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.queryRuns(ctx, query, args...)
}

// ForFingerprint returns earlier runs for the same disc, newest first.
func (s *Store) ForFingerprint(ctx context.Context, fingerprint string) ([]*Run, error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(fingerprint) == "" {
		return nil, nil
	}
	return s.queryRuns(ctx,
		"SELECT "+runColumns+" FROM runs WHERE disc_fingerprint = ? ORDER BY id DESC",
		fingerprint,
	)
}

// Get looks up a run by its full ID or an unambiguous prefix.
func (s *Store) Get(ctx context.Context, runID string) (*Run, error) {
	ctx = ensureContext(ctx)
	runID = strings.ToLower(strings.TrimSpace(runID))
	if runID == "" {
		return nil, fmt.Errorf("%w: empty run id", ErrNotFound)
	}
	runs, err := s.queryRuns(ctx, "SELECT "+runColumns+" FROM runs WHERE run_id = ?", runID)
	if err != nil {
		return nil, err
	}
	if len(runs) == 1 {
		return runs[0], nil
	}
	if len(runID) < minPrefixLen {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	runs, err = s.queryRuns(ctx,
		"SELECT "+runColumns+" FROM runs WHERE substr(run_id, 1, ?) = ? ORDER BY id DESC LIMIT 2",
		len(runID), runID,
	)
	if err != nil {
		return nil, err
	}
	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	case 1:
		return runs[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, runID)
	}
}

// Count returns the number of stored runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM runs").Scan(&count); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}

// Prune keeps the newest keep runs and deletes the rest.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	ctx = ensureContext(ctx)
	if keep < 0 {
		keep = 0
	}
	var removed int64
	err := s.withWriteLock(ctx, func() error {
		var err error
		removed, err = s.prune(ctx, keep)
		return err
	})
	return removed, err
}

// Clear removes every stored run.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	return s.Prune(ctx, 0)
}

func (s *Store) prune(ctx context.Context, keep int) (int64, error) {
	res, err := s.execWithRetry(ctx,
		"DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)",
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run        Run
		source     sql.NullString
		title      sql.NullString
		selected   sql.NullString
		canceled   int
		startedAt  string
		finishedAt sql.NullString
	)
	if err := row.Scan(
		&run.ID,
		&run.RunID,
		&source,
		&run.DiscFingerprint,
		&title,
		&selected,
		&run.PlaylistCount,
		&run.MainFeatureCount,
		&canceled,
		&startedAt,
		&finishedAt,
		&run.ReportJSON,
	); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.SourcePath = source.String
	run.DiscTitle = title.String
	run.SelectedPlaylist = selected.String
	run.Canceled = canceled != 0
	run.StartedAt = parseTimeString(startedAt)
	if finishedAt.Valid {
		run.FinishedAt = parseTimeString(finishedAt.String)
	}
	return &run, nil
}
