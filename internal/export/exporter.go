// Package export serializes an AggregatedReport into interchangeable
// artifact formats: pretty JSON, flat CSV, a three-sheet spreadsheet and
// a paginated PDF document.
//
// Every format is derived purely from the report and its statistics; no
// further data access happens here. Artifact file names are keyed by a
// fresh ULID so concurrent exports never target the same path.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/engine"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/logging"
)

// Format selects the artifact serialization.
type Format string

// Supported export formats.
const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV, FormatExcel, FormatPDF:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Artifact is one exported report file plus its metadata.
type Artifact struct {
	Data        []byte
	FileName    string
	FileSize    int64
	ContentType string
}

// Exporter renders AggregatedReports into artifacts. The zero value is
// not usable; construct with NewExporter.
type Exporter struct {
	brand string
	now   func() time.Time
}

// NewExporter returns an Exporter branding its artifacts with the given
// name (the PDF header line and file-name prefix).
func NewExporter(brand string) *Exporter {
	return &Exporter{brand: brand, now: time.Now}
}

// Export serializes the report into the requested format.
//
// An unsupported format returns ErrUnsupportedFormat with no partial
// artifact; serialization failures return ErrExportIO. Empty reports
// still produce valid artifacts carrying explicit no-data markers.
func (e *Exporter) Export(
	ctx context.Context,
	report *engine.AggregatedReport,
	period engine.Period,
	format Format,
) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)

	var (
		data        []byte
		ext         string
		contentType string
		err         error
	)

	switch format {
	case FormatJSON:
		data, err = e.renderJSON(report)
		ext, contentType = "json", "application/json"
	case FormatCSV:
		data, err = e.renderCSV(report)
		ext, contentType = "csv", "text/csv"
	case FormatExcel:
		data, err = e.renderExcel(report)
		ext, contentType = "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		doc := e.BuildDocument(report, period)
		data, err = renderPDF(doc)
		ext, contentType = "pdf", "application/pdf"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: render %s: %v", ErrExportIO, format, err)
	}

	artifact := &Artifact{
		Data:        data,
		FileName:    fmt.Sprintf("carbon_report_%s.%s", ulid.Make(), ext),
		FileSize:    int64(len(data)),
		ContentType: contentType,
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "export").
		Str("format", string(format)).
		Str("file_name", artifact.FileName).
		Int64("file_size", artifact.FileSize).
		Msg("report artifact rendered")

	return artifact, nil
}
