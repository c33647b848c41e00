package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"fyne.io/fyne/v2"
)

// IconKind selects one of the generated app icons.
type IconKind string

const (
	IconApp    IconKind = "app"
	IconActive IconKind = "active"
	IconPaused IconKind = "paused"
)

const iconSize = 64

var iconColors = map[IconKind]color.NRGBA{
	IconApp:    {R: 120, G: 200, B: 190, A: 255},
	IconActive: {R: 90, G: 210, B: 160, A: 255},
	IconPaused: {R: 170, G: 170, B: 180, A: 255},
}

var iconCache sync.Map

// Icon returns a PNG resource with a soft-edged circle for kind.
func Icon(kind IconKind) (fyne.Resource, error) {
	if cached, ok := iconCache.Load(kind); ok {
		return cached.(fyne.Resource), nil
	}

	fill, ok := iconColors[kind]
	if !ok {
		return nil, fmt.Errorf("load icon %s: unknown kind", kind)
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, drawCircle(iconSize, fill)); err != nil {
		return nil, fmt.Errorf("encode icon %s: %w", kind, err)
	}

	resource := fyne.NewStaticResource(fmt.Sprintf("campuszen-%s.png", kind), buffer.Bytes())
	iconCache.Store(kind, resource)
	return resource, nil
}

// MustIcon returns an icon resource or panics on error.
func MustIcon(kind IconKind) fyne.Resource {
	resource, err := Icon(kind)
	if err != nil {
		panic(err)
	}
	return resource
}

// drawCircle paints a filled circle with a one pixel antialiased rim.
func drawCircle(size int, fill color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	center := float64(size-1) / 2
	radius := float64(size)/2 - 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			distance := math.Hypot(float64(x)-center, float64(y)-center)
			coverage := math.Max(0, math.Min(1, radius-distance+0.5))
			if coverage == 0 {
				continue
			}
			pixel := fill
			pixel.A = uint8(math.Round(float64(fill.A) * coverage))
			img.SetNRGBA(x, y, pixel)
		}
	}
	return img
}
