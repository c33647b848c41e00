package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRoot struct {
	calls []string
}

func (root *fakeRoot) Show() { root.calls = append(root.calls, "show") }
func (root *fakeRoot) Hide() { root.calls = append(root.calls, "hide") }

func TestNewHidesRoot(t *testing.T) {
	root := &fakeRoot{}
	toggle := New(root)

	assert.Equal(t, []string{"hide"}, root.calls)
	assert.False(t, toggle.Visible())
}

func TestEnterExitFiltersSources(t *testing.T) {
	root := &fakeRoot{}
	toggle := New(root, SourceUser)

	toggle.Enter(SourcePresence)
	assert.False(t, toggle.Visible())

	toggle.Enter(SourceUser)
	assert.True(t, toggle.Visible())

	toggle.Exit(SourceUser)
	assert.False(t, toggle.Visible())
	assert.Equal(t, []string{"hide", "show", "hide"}, root.calls)
}

func TestFlip(t *testing.T) {
	root := &fakeRoot{}
	toggle := New(root, SourceUser, SourcePresence)

	toggle.Flip(SourceUser)
	assert.True(t, toggle.Visible())
	toggle.Flip(SourcePresence)
	assert.False(t, toggle.Visible())
}

func TestNilRootIsIgnored(t *testing.T) {
	toggle := New(nil)
	toggle.Enter(SourceUser)
	assert.False(t, toggle.Visible())
}
