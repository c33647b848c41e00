package platform

import "campuszen/internal/core/timekeeper"

// NewIdleProvider returns the platform's user input idle checker. Platforms
// without a source return timekeeper.ErrIdleUnsupported from every check.
func NewIdleProvider() timekeeper.IdleChecker {
	return newIdleProvider()
}
