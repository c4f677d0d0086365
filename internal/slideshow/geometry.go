package slideshow

import (
	"errors"
	"math"

	"showreel/internal/domain"
)

// ErrNotMeasured is returned when the image ratio is not known yet
var ErrNotMeasured = errors.New("image not measured")

// Fit computes crop-to-fill geometry for an image of the given aspect ratio
// (width/height) inside container. The image always covers the container;
// overflow on the longer axis is split evenly when centering is enabled for
// that axis, otherwise the image is pinned to the top/left edge.
func Fit(container domain.Size, ratio float64, centeredX, centeredY bool) (domain.Placement, error) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return domain.Placement{}, ErrNotMeasured
	}
	if container.W <= 0 || container.H <= 0 {
		return domain.Placement{}, ErrNotMeasured
	}

	p := domain.Placement{Width: container.W, Height: container.W / ratio}
	if p.Height >= container.H {
		p.Offset = (p.Height - container.H) / 2
		if centeredY {
			p.Top = -p.Offset
		}
		return p, nil
	}

	p.Height = container.H
	p.Width = container.H * ratio
	p.Offset = (p.Width - container.W) / 2
	if centeredX {
		p.Left = -p.Offset
	}
	return p, nil
}
