package media

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"golang.org/x/image/draw"

	"showreel/internal/domain"
)

// Compose scales img to the placement size and draws it at the placement
// position inside a container of the given pixel size. Whatever falls
// outside the container is cropped.
func Compose(img image.Image, p domain.Placement, container image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, container.X, container.Y))
	if img == nil || container.X <= 0 || container.Y <= 0 {
		return dst
	}
	left := int(math.Round(p.Left))
	top := int(math.Round(p.Top))
	dr := image.Rect(left, top, left+int(math.Round(p.Width)), top+int(math.Round(p.Height)))
	if dr.Empty() {
		return dst
	}
	draw.ApproxBiLinear.Scale(dst, dr, img, img.Bounds(), draw.Src, nil)
	return dst
}

// Blend mixes two frames of equal size; t=0 yields from, t=1 yields to.
// A nil from blends from black.
func Blend(from, to *image.RGBA, t float64) *image.RGBA {
	if to == nil {
		return from
	}
	if t >= 1 {
		return to
	}
	if t < 0 {
		t = 0
	}
	b := to.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var src color.Color = color.Black
			if from != nil && image.Pt(x, y).In(from.Bounds()) {
				src = from.At(x, y)
			}
			c1, _ := colorful.MakeColor(opaque(src))
			c2, _ := colorful.MakeColor(opaque(to.At(x, y)))
			out.Set(x, y, c1.BlendRgb(c2, t).Clamped())
		}
	}
	return out
}

// HalfBlocks renders a frame as terminal text, two pixel rows per line using
// the upper half block with foreground/background colors
func HalfBlocks(frame *image.RGBA, profile termenv.Profile) string {
	if frame == nil {
		return ""
	}
	b := frame.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := frame.At(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = frame.At(x, y+1)
			}
			sb.WriteString(cell(top, bottom, profile))
		}
	}
	return sb.String()
}

const shades = " .:-=+*#%@"

func cell(top, bottom color.Color, profile termenv.Profile) string {
	t, _ := colorful.MakeColor(opaque(top))
	bt, _ := colorful.MakeColor(opaque(bottom))
	if profile == termenv.Ascii {
		l1, _, _ := t.Lab()
		l2, _, _ := bt.Lab()
		i := int(math.Round((l1 + l2) / 2 * float64(len(shades)-1)))
		i = max(0, min(i, len(shades)-1))
		return string(shades[i])
	}
	return termenv.String("▀").
		Foreground(profile.Color(t.Clamped().Hex())).
		Background(profile.Color(bt.Clamped().Hex())).
		String()
}

// opaque drops alpha so transparent pixels read as black instead of failing
// colorful's conversion
func opaque(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return color.Black
	}
	if a == 0xffff {
		return c
	}
	// premultiplied channels are the color composited over black
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xffff}
}
