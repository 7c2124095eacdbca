package export

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for report export.
var (
	// ErrUnsupportedFormat indicates a format outside json/csv/excel/pdf.
	// No artifact is produced.
	ErrUnsupportedFormat = constError("unsupported export format")

	// ErrExportIO indicates a serialization failure. It is fatal for the
	// one report being exported; retrying belongs to the caller.
	ErrExportIO = constError("export failed")
)
