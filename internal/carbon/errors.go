package carbon

// constError is an immutable error type for sentinel errors. It implements
// the error interface and can be compared with errors.Is.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for emission computation.
var (
	// ErrUnknownCategory indicates a record whose category is not one of
	// the recognized values. Such records are skipped during batch
	// computation and counted, not fatal.
	ErrUnknownCategory = constError("unknown activity category")

	// ErrMissingDetail indicates a record without the detail variant its
	// category requires (e.g. a transportation record with no
	// transportation detail).
	ErrMissingDetail = constError("missing category detail")

	// ErrNilRecord indicates a nil record passed to the calculator.
	ErrNilRecord = constError("nil activity record")
)
