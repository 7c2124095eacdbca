package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/engine"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/export"
)

type stubActivities struct {
	records []carbon.ActivityRecord
	err     error
}

func (s stubActivities) ListActivities(
	context.Context, *uuid.UUID, *uuid.UUID, engine.Period,
) ([]carbon.ActivityRecord, error) {
	return s.records, s.err
}

type failingBlobs struct{}

func (failingBlobs) Put(context.Context, string, string, []byte) error {
	return errors.New("disk full")
}

func testRecords() []carbon.ActivityRecord {
	return []carbon.ActivityRecord{
		{
			ID:               uuid.New(),
			UserID:           uuid.New(),
			Category:         carbon.CategoryTransportation,
			ActivityDate:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			CarbonEmissionKg: 3.42,
			DataSource:       carbon.SourceManual,
		},
		{
			ID:               uuid.New(),
			UserID:           uuid.New(),
			Category:         carbon.CategoryElectricity,
			ActivityDate:     time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
			CarbonEmissionKg: 82,
			DataSource:       carbon.SourceManual,
		},
	}
}

func testPeriod() engine.Period {
	return engine.Period{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateCompletes(t *testing.T) {
	dir := t.TempDir()
	tracker := NewMemoryTracker()
	svc := NewService(
		stubActivities{records: testRecords()},
		DirBlobStore{Dir: dir},
		tracker,
		export.NewExporter("CarbonNet"),
	)

	result, err := svc.Generate(context.Background(), Request{
		Period: testPeriod(),
		Format: export.FormatJSON,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, StatusCompleted, result.Status)
	require.NotNil(t, result.Report)
	assert.InDelta(t, 85.42, result.Report.TotalEmissions, 0.001)
	assert.NotEmpty(t, result.Report.Recommendations)
	require.NotNil(t, result.Artifact)

	// Artifact landed in blob storage.
	data, err := os.ReadFile(filepath.Join(dir, result.Artifact.FileName))
	require.NoError(t, err)
	assert.Equal(t, result.Artifact.Data, data)

	assert.Equal(t,
		[]Status{StatusPending, StatusProcessing, StatusCompleted},
		tracker.Transitions(result.ID))
}

func TestGenerateKeepsSuppliedID(t *testing.T) {
	svc := NewService(stubActivities{}, nil, nil, export.NewExporter("CarbonNet"))

	result, err := svc.Generate(context.Background(), Request{
		ID:     "report-42",
		Period: testPeriod(),
		Format: export.FormatCSV,
	})
	require.NoError(t, err)
	assert.Equal(t, "report-42", result.ID)
}

func TestGenerateInvalidPeriod(t *testing.T) {
	tracker := NewMemoryTracker()
	svc := NewService(stubActivities{}, nil, tracker, export.NewExporter("CarbonNet"))

	_, err := svc.Generate(context.Background(), Request{
		ID: "bad-period",
		Period: engine.Period{
			Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Format: export.FormatJSON,
	})
	assert.ErrorIs(t, err, engine.ErrInvalidPeriod)
	assert.Equal(t, []Status{StatusPending, StatusFailed}, tracker.Transitions("bad-period"))
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	tracker := NewMemoryTracker()
	svc := NewService(stubActivities{}, nil, tracker, export.NewExporter("CarbonNet"))

	_, err := svc.Generate(context.Background(), Request{
		ID:     "bad-format",
		Period: testPeriod(),
		Format: export.Format("docx"),
	})
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
	assert.Equal(t, []Status{StatusPending, StatusFailed}, tracker.Transitions("bad-format"))
}

func TestGenerateStoreFailure(t *testing.T) {
	tracker := NewMemoryTracker()
	svc := NewService(
		stubActivities{err: errors.New("database offline")},
		nil,
		tracker,
		export.NewExporter("CarbonNet"),
	)

	_, err := svc.Generate(context.Background(), Request{
		ID:     "store-down",
		Period: testPeriod(),
		Format: export.FormatJSON,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list activities")
	assert.Equal(t,
		[]Status{StatusPending, StatusProcessing, StatusFailed},
		tracker.Transitions("store-down"))
}

func TestGenerateBlobFailureLeavesNoArtifact(t *testing.T) {
	tracker := NewMemoryTracker()
	svc := NewService(
		stubActivities{records: testRecords()},
		failingBlobs{},
		tracker,
		export.NewExporter("CarbonNet"),
	)

	result, err := svc.Generate(context.Background(), Request{
		ID:     "blob-down",
		Period: testPeriod(),
		Format: export.FormatJSON,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t,
		[]Status{StatusPending, StatusProcessing, StatusFailed},
		tracker.Transitions("blob-down"))
}

func TestGenerateWithoutBlobStore(t *testing.T) {
	svc := NewService(stubActivities{records: testRecords()}, nil, nil, export.NewExporter("CarbonNet"))

	result, err := svc.Generate(context.Background(), Request{
		Period: testPeriod(),
		Format: export.FormatCSV,
	})
	require.NoError(t, err)
	assert.NotNil(t, result.Artifact)
}

func TestGenerateEmptyRecordSet(t *testing.T) {
	svc := NewService(stubActivities{}, nil, nil, export.NewExporter("CarbonNet"))

	result, err := svc.Generate(context.Background(), Request{
		Period: testPeriod(),
		Format: export.FormatJSON,
	})
	require.NoError(t, err)
	assert.Zero(t, result.Report.TotalEmissions)
	// Encouragement still present for quiet periods.
	assert.Len(t, result.Report.Recommendations, 1)
}
