package datagen

import "errors"

var (
	// ErrInvalidSampleSize is returned for a sample size outside [1, len(Genes)].
	ErrInvalidSampleSize = errors.New("datagen: invalid sample size")

	// ErrUnknownFlushMode is returned when parsing an unrecognized flush mode.
	ErrUnknownFlushMode = errors.New("datagen: unknown flush mode")

	// ErrUnknownFormat is returned when parsing an unrecognized output format.
	ErrUnknownFormat = errors.New("datagen: unknown output format")
)
