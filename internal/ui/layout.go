package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops the
	// base name, source path and long error text.
	LayoutCompactWidth = 100
)

// Timing constants.
const (
	// DefaultUIInterval refreshes the header's status and relative times.
	DefaultUIInterval = time.Second
)
