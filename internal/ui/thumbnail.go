package ui

import (
	"context"
	"image"
	"log"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"showreel/internal/carousel"
	"showreel/internal/domain"
	"showreel/internal/media"
	"showreel/internal/slideshow"
)

// minThumbRows is the smallest image area worth drawing; smaller cards stay
// text only
const minThumbRows = 2

// ThumbnailRenderer draws loaded items as a card with the image under the
// title. Items that are not loaded yet fall back to the text card.
type ThumbnailRenderer struct {
	card    *carousel.CardRenderer
	loader  media.Loader
	profile termenv.Profile
}

// NewThumbnailRenderer creates a renderer reading images through loader
func NewThumbnailRenderer(loader media.Loader, profile termenv.Profile) *ThumbnailRenderer {
	return &ThumbnailRenderer{
		card:    carousel.NewCardRenderer(),
		loader:  loader,
		profile: profile,
	}
}

func (r *ThumbnailRenderer) RenderItem(item domain.Item, width, height int) string {
	innerW := width - 2
	rows := height - 3 // border and title
	if !item.Loaded || item.Src == "" || r.loader == nil || innerW < 1 || rows < minThumbRows {
		return r.card.RenderItem(item, width, height)
	}

	// already decoded by the bootstrap, so this is a cache hit
	img, err := r.loader.Load(context.Background(), item.Src)
	if err != nil {
		log.Printf("thumbnail %s: %v", item.ID, err)
		return r.card.RenderItem(item, width, height)
	}

	container := domain.Size{W: float64(innerW), H: float64(rows * 2)}
	p, err := slideshow.Fit(container, media.Ratio(img), true, true)
	if err != nil {
		return r.card.RenderItem(item, width, height)
	}
	frame := media.Compose(img, p, image.Pt(innerW, rows*2))

	title := r.card.Title.Render(runewidth.Truncate(item.Title, innerW, "…"))
	return r.card.Border.
		Width(innerW).
		Height(rows + 1).
		MaxHeight(height).
		Render(title + "\n" + media.HalfBlocks(frame, r.profile))
}
