//go:build !windows

package overlay

// applyNativeOpacity is a no-op; the background rectangle alpha is used.
func (overlay *Window) applyNativeOpacity(alpha uint8) {}
