package factors

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for factor resolution and table loading.
var (
	// ErrFactorNotFound indicates that no tier — institution, global or
	// the default table — holds a factor for the query. The resolver
	// recovers from this internally wherever a category-level default
	// exists; it surfaces only for categories absent from the default
	// table entirely.
	ErrFactorNotFound = constError("emission factor not found")

	// ErrInvalidTableVersion indicates a default-factor table whose
	// version string is not valid semantic versioning.
	ErrInvalidTableVersion = constError("invalid factor table version")
)
