package resources

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIcon(t *testing.T) {
	for _, kind := range []IconKind{IconApp, IconActive, IconPaused} {
		t.Run(string(kind), func(t *testing.T) {
			resource, err := Icon(kind)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(resource.Content()))
			require.NoError(t, err)
			assert.Equal(t, iconSize, img.Bounds().Dx())

			_, _, _, centerAlpha := img.At(iconSize/2, iconSize/2).RGBA()
			_, _, _, cornerAlpha := img.At(0, 0).RGBA()
			assert.Equal(t, uint32(0xffff), centerAlpha)
			assert.Zero(t, cornerAlpha)

			again := MustIcon(kind)
			assert.Same(t, resource, again)
		})
	}
}

func TestUnknownIcon(t *testing.T) {
	_, err := Icon("sparkle")
	assert.Error(t, err)
	assert.Panics(t, func() { MustIcon("sparkle") })
}
