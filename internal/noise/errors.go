// Package noise implements a seeded gradient noise evaluator for 2 to 4
// dimensions, plus adapters that expose it and other noise backends through
// a common Source interface.
package noise

import "errors"

var (
	// ErrInvalidDimension is returned when an engine is built for fewer than
	// MinDimensions or more than MaxDimensions axes.
	ErrInvalidDimension = errors.New("noise: dimensions must be between 2 and 4")

	// ErrUnknownKind is returned by NewSource for an unsupported backend name.
	ErrUnknownKind = errors.New("noise: unknown noise kind")
)
