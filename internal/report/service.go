// Package report orchestrates one report request end to end: validate
// the period, fetch the activity snapshot from the storage collaborator,
// aggregate, derive recommendations, export the artifact and hand it to
// blob storage, tracking status transitions on the way.
//
// The package owns none of the persistence mechanics; stores and trackers
// are collaborator interfaces supplied by the caller.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/engine"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/export"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/logging"
)

// Status is the lifecycle of a report request. A request ends completed
// with an artifact, or failed with neither artifact nor partial file.
type Status string

// Report statuses.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Request describes one report generation. Owner and institution scope
// the activity query; at least one must be set by the caller's access
// rules, which this package does not enforce.
type Request struct {
	ID            string
	OwnerID       *uuid.UUID
	InstitutionID *uuid.UUID
	Period        engine.Period
	Format        export.Format
}

// Result is a finished report: the aggregated statistics and the exported
// artifact.
type Result struct {
	ID       string
	Status   Status
	Report   *engine.AggregatedReport
	Artifact *export.Artifact
}

// ActivityStore is the storage collaborator supplying computed activity
// records for an owner or institution within a date range.
type ActivityStore interface {
	ListActivities(
		ctx context.Context,
		ownerID, institutionID *uuid.UUID,
		period engine.Period,
	) ([]carbon.ActivityRecord, error)
}

// BlobStore receives exported artifact bytes. Writes are one-shot and
// keyed by the artifact file name, which embeds a unique report ULID.
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) error
}

// Tracker records report status transitions for the caller's report
// record. Implementations should be cheap; failures are logged, not
// propagated, so tracking never breaks report generation.
type Tracker interface {
	SetStatus(ctx context.Context, id string, status Status, detail string) error
}

// Service generates reports. It is stateless and safe for concurrent use;
// identical requests recompute independently.
type Service struct {
	activities ActivityStore
	blobs      BlobStore
	tracker    Tracker
	exporter   *export.Exporter
}

// NewService wires the report pipeline. A nil tracker disables status
// tracking; a nil blob store skips artifact persistence (the artifact is
// still returned).
func NewService(activities ActivityStore, blobs BlobStore, tracker Tracker, exporter *export.Exporter) *Service {
	if tracker == nil {
		tracker = NopTracker{}
	}
	return &Service{activities: activities, blobs: blobs, tracker: tracker, exporter: exporter}
}

// Generate runs one report request.
//
// An invalid period fails before aggregation executes. An unsupported
// format or export failure marks the report failed and leaves no
// artifact. The context deadline is honored between every phase.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	if req.ID == "" {
		req.ID = ulid.Make().String()
	}

	s.track(ctx, req.ID, StatusPending, "")

	if err := req.Period.Validate(); err != nil {
		s.track(ctx, req.ID, StatusFailed, err.Error())
		return nil, err
	}
	if _, err := export.ParseFormat(string(req.Format)); err != nil {
		s.track(ctx, req.ID, StatusFailed, err.Error())
		return nil, err
	}

	s.track(ctx, req.ID, StatusProcessing, "")

	records, err := s.activities.ListActivities(ctx, req.OwnerID, req.InstitutionID, req.Period)
	if err != nil {
		s.track(ctx, req.ID, StatusFailed, err.Error())
		return nil, fmt.Errorf("list activities: %w", err)
	}

	aggregated, err := engine.Aggregate(ctx, records, req.Period)
	if err != nil {
		s.track(ctx, req.ID, StatusFailed, err.Error())
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	aggregated.Recommendations = engine.Recommend(aggregated.EmissionsByCategory)

	artifact, err := s.exporter.Export(ctx, aggregated, req.Period, req.Format)
	if err != nil {
		s.track(ctx, req.ID, StatusFailed, err.Error())
		return nil, fmt.Errorf("export: %w", err)
	}

	if s.blobs != nil {
		if err := s.blobs.Put(ctx, artifact.FileName, artifact.ContentType, artifact.Data); err != nil {
			s.track(ctx, req.ID, StatusFailed, err.Error())
			return nil, fmt.Errorf("store artifact: %w", err)
		}
	}

	s.track(ctx, req.ID, StatusCompleted, artifact.FileName)

	log.Info().
		Ctx(ctx).
		Str("component", "report").
		Str("operation", "generate").
		Str("report_id", req.ID).
		Str("format", string(req.Format)).
		Int("records", len(records)).
		Int("skipped", len(aggregated.SkippedRecords)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("report generated")

	return &Result{ID: req.ID, Status: StatusCompleted, Report: aggregated, Artifact: artifact}, nil
}

func (s *Service) track(ctx context.Context, id string, status Status, detail string) {
	if err := s.tracker.SetStatus(ctx, id, status, detail); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Ctx(ctx).
			Str("component", "report").
			Str("report_id", id).
			Str("status", string(status)).
			Err(err).
			Msg("status tracking failed")
	}
}
