package scoring

import "errors"

var (
	// ErrNoQuestions means the document held no recognizable question blocks,
	// so it is not a response sheet of the expected layout.
	ErrNoQuestions = errors.New("no questions could be parsed from the response sheet")

	// ErrInvalidLevel is returned for a level with no percentile table.
	ErrInvalidLevel = errors.New("invalid exam level")
)
