package platform

import (
	"time"

	"campuszen/internal/core/timekeeper"
)

type idleProvider struct{}

func newIdleProvider() timekeeper.IdleChecker {
	return &idleProvider{}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	return 0, timekeeper.ErrIdleUnsupported
}
