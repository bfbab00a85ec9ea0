package shapley

import "errors"

var (
	// ErrShortRecord is returned for a dataset line with fewer than two fields.
	ErrShortRecord = errors.New("shapley: record has less than 2 fields")

	// ErrEmptyDataset is returned when a dataset has no records.
	ErrEmptyDataset = errors.New("shapley: empty dataset")

	// ErrTooManyPlayers is returned when a dataset names more players than a
	// coalition mask can hold.
	ErrTooManyPlayers = errors.New("shapley: too many players")

	// ErrNotNormalized is returned when the Shapley values do not sum to one.
	ErrNotNormalized = errors.New("shapley: sum of Shapley values isn't equal to one")
)
