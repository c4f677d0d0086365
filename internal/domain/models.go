package domain

// Item is an opaque carousel entry. The carousel never inspects it beyond
// handing it to the item renderer and to observers.
type Item struct {
	ID      string
	Title   string
	Body    string
	Src     string // image source, loaded lazily
	Variant string // "desktop", "mobile" or "" for both
	Loaded  bool   // Src has been loaded at least once
}

// Variant names recognized by the bootstrap
const (
	VariantDesktop = "desktop"
	VariantMobile  = "mobile"
)

// Size is a container or image size in pixels. In the terminal renderer a
// pixel is half a character cell (one half-block).
type Size struct {
	W float64
	H float64
}

// Placement is the display geometry of a background image inside its
// container: the scaled size plus the (non-positive) left/top position.
type Placement struct {
	Width  float64
	Height float64
	Left   float64
	Top    float64
	Offset float64 // overflow on the cropped axis divided by two
}

// Axis is the direction a carousel moves along
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MediaFile represents an image found on disk
type MediaFile struct {
	Path string
	Name string
	Dir  string
}
