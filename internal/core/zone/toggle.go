// Package zone shows and hides the breathing guide when a trigger reports
// that something entered or left its area.
package zone

import "sync"

// Sources that may trigger the zone.
const (
	SourceUser     = "user"
	SourcePresence = "presence"
)

// Root is the presentation root whose visibility the zone controls.
type Root interface {
	Show()
	Hide()
}

// Toggle shows the root on enter and hides it on exit. Triggers from
// sources outside the accepted set are ignored.
type Toggle struct {
	mu      sync.Mutex
	root    Root
	accept  map[string]struct{}
	visible bool
}

// New creates a toggle and hides the root immediately. With no sources
// given, SourceUser is accepted.
func New(root Root, sources ...string) *Toggle {
	if len(sources) == 0 {
		sources = []string{SourceUser}
	}
	accept := make(map[string]struct{}, len(sources))
	for _, source := range sources {
		accept[source] = struct{}{}
	}

	toggle := &Toggle{root: root, accept: accept}
	if root != nil {
		root.Hide()
	}
	return toggle
}

// Enter shows the root when source is accepted.
func (toggle *Toggle) Enter(source string) {
	toggle.set(source, true)
}

// Exit hides the root when source is accepted.
func (toggle *Toggle) Exit(source string) {
	toggle.set(source, false)
}

// Flip enters when hidden and exits when visible.
func (toggle *Toggle) Flip(source string) {
	toggle.mu.Lock()
	visible := toggle.visible
	toggle.mu.Unlock()
	toggle.set(source, !visible)
}

// Visible reports whether the root is currently shown.
func (toggle *Toggle) Visible() bool {
	toggle.mu.Lock()
	defer toggle.mu.Unlock()
	return toggle.visible
}

func (toggle *Toggle) set(source string, visible bool) {
	toggle.mu.Lock()
	if _, ok := toggle.accept[source]; !ok || toggle.root == nil {
		toggle.mu.Unlock()
		return
	}
	toggle.visible = visible
	toggle.mu.Unlock()

	if visible {
		toggle.root.Show()
		return
	}
	toggle.root.Hide()
}
