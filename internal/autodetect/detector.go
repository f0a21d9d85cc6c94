package autodetect

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"discsift/internal/disc"
	"discsift/internal/logging"
)

// Phase names one step of a detection pass.
type Phase string

const (
	PhaseGather   Phase = "gather"
	PhaseClassify Phase = "classify"
	PhaseSelect   Phase = "select"
)

// Outcome summarises one detection pass.
type Outcome struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	// Canceled is set when the context ended before every phase ran. Flags
	// written by completed phases stay on the disc.
	Canceled bool
	// Completed lists the phases that ran to completion, in order.
	Completed []Phase

	FeatureBaseline  time.Duration
	MaxAudioChannels int
	MaxVideoHeight   int
	Duplicates       int
	MainFeatures     int
}

// Ran reports whether phase ran to completion.
func (o Outcome) Ran(phase Phase) bool {
	for _, done := range o.Completed {
		if done == phase {
			return true
		}
	}
	return false
}

// Detector runs detection passes.
type Detector struct {
	opts     Options
	logger   *slog.Logger
	progress ProgressReporter
}

// New builds a Detector. A nil logger or progress reporter discards output.
func New(opts Options, logger *slog.Logger, progress ProgressReporter) *Detector {
	if logger == nil {
		logger = logging.NewNop()
	}
	if progress == nil {
		progress = noopProgress{}
	}
	return &Detector{
		opts:     opts.withDefaults(),
		logger:   logging.NewComponentLogger(logger, "autodetect"),
		progress: progress,
	}
}

// AutoDetect runs one pass over job.Disc. Cancellation is checked after each
// phase; a canceled pass returns at once with Outcome.Canceled set.
func (d *Detector) AutoDetect(ctx context.Context, job *Job) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	outcome := Outcome{RunID: uuid.NewString(), StartedAt: time.Now()}
	ctx = logging.WithRunID(ctx, outcome.RunID)
	logger := logging.WithContext(ctx, d.logger)

	if job == nil || job.Disc == nil {
		logger.Warn("detection skipped; job has no disc",
			logging.String(logging.FieldEventType, "detection_skipped"),
			logging.String(logging.FieldErrorHint, "load a disc description before running detection"),
			logging.String(logging.FieldImpact, "no playlist or track defaults were chosen"),
		)
		outcome.FinishedAt = time.Now()
		return outcome
	}
	target := job.Disc

	logger.Info("detection started",
		logging.String("disc_title", target.DisplayTitle()),
		logging.Int("playlist_count", len(target.Playlists)),
	)

	d.report(0, "Analyzing disc structure")
	outcome.Duplicates = d.gather(logging.WithPhase(ctx, string(PhaseGather)), target)
	if d.finishPhase(ctx, &outcome, PhaseGather) {
		return outcome
	}

	d.report(25, "Classifying playlists")
	baseline, tier := d.classify(logging.WithPhase(ctx, string(PhaseClassify)), target)
	outcome.FeatureBaseline = baseline.longest
	outcome.MaxAudioChannels = tier.channels
	outcome.MaxVideoHeight = tier.height
	if d.finishPhase(ctx, &outcome, PhaseClassify) {
		return outcome
	}

	d.report(75, "Selecting defaults")
	outcome.MainFeatures = d.selectDefaults(logging.WithPhase(ctx, string(PhaseSelect)), job)
	if d.finishPhase(ctx, &outcome, PhaseSelect) {
		return outcome
	}

	d.report(100, "Detection complete")
	outcome.FinishedAt = time.Now()

	selected := "none"
	if playlist := job.SelectedPlaylist(); playlist != nil {
		selected = playlist.FileName
	}
	logger.Info("detection complete",
		logging.String("decision_selected", selected),
		logging.Int("main_feature_count", outcome.MainFeatures),
		logging.Int("duplicate_count", outcome.Duplicates),
		logging.String("primary_language", target.PrimaryLanguage),
		logging.Duration("pass_duration", outcome.FinishedAt.Sub(outcome.StartedAt)),
	)
	return outcome
}

// finishPhase records phase as complete and reports whether the pass must stop.
func (d *Detector) finishPhase(ctx context.Context, outcome *Outcome, phase Phase) bool {
	outcome.Completed = append(outcome.Completed, phase)
	if ctx.Err() == nil {
		return false
	}
	outcome.Canceled = true
	outcome.FinishedAt = time.Now()
	logging.WithContext(ctx, d.logger).Info("detection canceled",
		logging.String(logging.FieldEventType, "detection_canceled"),
		logging.String("last_phase", string(phase)),
		logging.Error(ctx.Err()),
	)
	return true
}

func (d *Detector) report(percent float64, status string) {
	d.progress.ReportProgress(ProgressSource, percent, status)
}

// gather prepares the disc for classification and returns the number of
// playlists newly flagged as duplicates.
func (d *Detector) gather(ctx context.Context, target *disc.Disc) int {
	logger := logging.WithContext(ctx, d.logger)

	for _, playlist := range target.Playlists {
		if !playlist.Type.IsSet() {
			playlist.Type = disc.RoleMisc
		}
		analyzeClips(playlist)
	}

	preferred := d.opts.PreferredLanguage
	if preferred == "" {
		preferred = target.PrimaryLanguage
	}
	target.ComputeLanguages(preferred)
	logger.Debug("languages inferred",
		logging.String("primary_language", target.PrimaryLanguage),
		logging.Strings("languages", target.Languages),
	)

	return markDuplicates(target.Playlists, logger)
}

func (d *Detector) classify(ctx context.Context, target *disc.Disc) (featureBaseline, qualityTier) {
	logger := logging.WithContext(ctx, d.logger)

	baseline := computeFeatureBaseline(target.Playlists, d.opts)
	tier := computeQualityTier(target.Playlists, baseline)
	markMaxQuality(target.Playlists, tier)
	logger.Debug("quality tier computed",
		logging.Duration("feature_baseline", baseline.longest),
		logging.Duration("feature_threshold", baseline.threshold()),
		logging.Int("max_audio_channels", tier.channels),
		logging.Int("max_video_height", tier.height),
		logging.Bool("tier_found", tier.found),
	)

	classifyPlaylists(target.Playlists, baseline, tier, d.opts, logger)
	classifyTracks(target.Playlists, logger)
	return baseline, tier
}

// selectDefaults returns the number of best-guess main features.
func (d *Detector) selectDefaults(ctx context.Context, job *Job) int {
	logger := logging.WithContext(ctx, d.logger)
	candidates := selectPlaylists(job, logger)
	for _, playlist := range job.Disc.Playlists {
		selectTracks(playlist, job.Disc.PrimaryLanguage, logger)
	}
	return len(candidates)
}
