package engine

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidPeriod indicates a reporting window whose end does not follow
// its start. It is surfaced before aggregation runs; aggregation itself
// never executes against an invalid period.
var ErrInvalidPeriod = constError("invalid report period: end date must be after start date")
