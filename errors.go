package segment

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidCandidates indicates a candidate sequence that is unsorted,
	// duplicated, out of range, or not aligned to rune starts.
	ErrInvalidCandidates = errors.New("segment: invalid candidate sequence")

	// ErrUnknownOutcome indicates the classifier reported a best outcome
	// that has no position in its own distribution.
	ErrUnknownOutcome = errors.New("segment: unknown outcome")
)
