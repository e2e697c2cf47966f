package dataset

import "errors"

// Load failures. Load recovers from all of them by substituting Fallback.
var (
	// ErrFetch indicates the dataset could not be retrieved.
	ErrFetch = errors.New("dataset: fetch failed")

	// ErrEmpty indicates the dataset had no content.
	ErrEmpty = errors.New("dataset: empty content")

	// ErrParse indicates the content is not valid delimited text.
	ErrParse = errors.New("dataset: parse failed")

	// ErrNoRows indicates no row survived filtering.
	ErrNoRows = errors.New("dataset: no valid rows")
)
