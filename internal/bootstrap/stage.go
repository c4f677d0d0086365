// Package bootstrap wires carousels and background slideshows onto a
// screen from host-supplied items and terminal size.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"

	"showreel/internal/carousel"
	"showreel/internal/domain"
	"showreel/internal/eventbus"
	"showreel/internal/media"
	"showreel/internal/slideshow"
)

// ErrAlreadyInitiated is returned when a carousel name is rendered twice
var ErrAlreadyInitiated = errors.New("carousel already initiated")

// DefaultCompactWidth is the terminal width below which carousels switch to
// their compact variant
const DefaultCompactWidth = 60

// Host describes the surface a carousel is rendered onto
type Host struct {
	Width        int
	CompactWidth int // 0 means DefaultCompactWidth
	Items        []domain.Item
	Options      carousel.Options
	Randomize    bool
	Rand         *rand.Rand // nil uses the global source
}

// Compact reports whether the host is narrow enough for the compact variant
func (h Host) Compact() bool {
	limit := h.CompactWidth
	if limit <= 0 {
		limit = DefaultCompactWidth
	}
	return h.Width < limit
}

// Stage owns every widget attached to the screen
type Stage struct {
	loader media.Loader
	bus    eventbus.EventBus

	carousels   map[string]*carousel.Model
	backgrounds map[string]*slideshow.Model
	order       []string // carousel names in render order

	// pending item loads keyed by carousel name and logical index
	pending map[string]map[int]bool
}

// NewStage creates an empty stage. bus may be nil.
func NewStage(loader media.Loader, bus eventbus.EventBus) *Stage {
	return &Stage{
		loader:      loader,
		bus:         bus,
		carousels:   make(map[string]*carousel.Model),
		backgrounds: make(map[string]*slideshow.Model),
		pending:     make(map[string]map[int]bool),
	}
}

// RenderCarousel builds the carousel called name. Items are filtered by the
// host's variant, the start may be randomized, the start item's image is
// loaded eagerly and visible items are loaded lazily after each transition.
// A second call for the same name fails with ErrAlreadyInitiated.
func (s *Stage) RenderCarousel(name string, host Host) (*carousel.Model, tea.Cmd, error) {
	if _, ok := s.carousels[name]; ok {
		return nil, nil, fmt.Errorf("%s: %w", name, ErrAlreadyInitiated)
	}

	compact := host.Compact()
	items := FilterVariant(host.Items, compact)
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", name, carousel.ErrNoContent)
	}

	opts := host.Options
	opts.Name = name
	if opts.Bus == nil {
		opts.Bus = s.bus
	}
	if compact {
		opts.Visible = 1
	}
	opts.Visible = min(max(opts.Visible, 1), len(items))
	opts.Scroll = min(max(opts.Scroll, 1), len(items))
	if host.Randomize {
		opts.Start = RandomStart(len(items), host.Rand)
	}

	c, err := carousel.New(items, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build carousel %s: %w", name, err)
	}
	s.carousels[name] = c
	s.order = append(s.order, name)
	s.pending[name] = make(map[int]bool)

	c.OnAfterEnd(func(v carousel.Visible) tea.Cmd {
		var cmds []tea.Cmd
		for i := range v.Items {
			cmds = append(cmds, s.loadItem(name, (v.Cursor+i)%c.Len()))
		}
		return tea.Batch(cmds...)
	})

	log.Printf("bootstrap: carousel %s with %d items, visible %d, start %d, compact %v",
		name, len(items), opts.Visible, c.Cursor(), compact)

	return c, tea.Batch(c.Init(), s.loadItem(name, c.Cursor())), nil
}

// AttachBackground attaches a slideshow called name. When one is already
// attached its options are merged under opts and it is destroyed, leaving
// its last image on screen until the first new slide fades in over it. A nil
// opts keeps the previous options unchanged.
func (s *Stage) AttachBackground(name string, images []string, opts *slideshow.Options) (*slideshow.Model, tea.Cmd, error) {
	merged := slideshow.DefaultOptions()
	old, replacing := s.backgrounds[name]
	if replacing {
		merged = old.Options()
		old.DestroyPreserving()
		delete(s.backgrounds, name)
	}
	if opts != nil {
		merged = MergeOptions(merged, *opts)
	}
	merged.Name = name
	if merged.Bus == nil {
		merged.Bus = s.bus
	}

	m, err := slideshow.New(images, merged, s.loader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to attach background %s: %w", name, err)
	}
	if replacing {
		m.FadeFrom(old)
	}
	s.backgrounds[name] = m
	log.Printf("bootstrap: background %s with %d images", name, len(images))
	return m, m.Init(), nil
}

// MergeOptions overlays the set fields of next onto base. Booleans always
// come from next.
func MergeOptions(base, next slideshow.Options) slideshow.Options {
	out := base
	out.CenteredX = next.CenteredX
	out.CenteredY = next.CenteredY
	if next.Name != "" {
		out.Name = next.Name
	}
	if next.Duration > 0 {
		out.Duration = next.Duration
	}
	if next.Fade > 0 {
		out.Fade = next.Fade
	}
	if next.Bus != nil {
		out.Bus = next.Bus
	}
	if next.Tracer != nil {
		out.Tracer = next.Tracer
	}
	if next.Profile != base.Profile {
		out.Profile = next.Profile
	}
	return out
}

// Carousel returns the carousel called name
func (s *Stage) Carousel(name string) (*carousel.Model, bool) {
	c, ok := s.carousels[name]
	return c, ok
}

// Background returns the slideshow called name
func (s *Stage) Background(name string) (*slideshow.Model, bool) {
	m, ok := s.backgrounds[name]
	return m, ok
}

// Carousels returns the carousels in the order they were rendered
func (s *Stage) Carousels() []*carousel.Model {
	out := make([]*carousel.Model, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.carousels[name])
	}
	return out
}

// Detach destroys and forgets the carousel or background called name
func (s *Stage) Detach(name string) {
	if c, ok := s.carousels[name]; ok {
		c.Destroy()
		delete(s.carousels, name)
		delete(s.pending, name)
		for i, n := range s.order {
			if n == name {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	if m, ok := s.backgrounds[name]; ok {
		m.Destroy()
		delete(s.backgrounds, name)
	}
}

// Close destroys everything on the stage
func (s *Stage) Close() {
	for name := range s.backgrounds {
		s.Detach(name)
	}
	for _, name := range append([]string(nil), s.order...) {
		s.Detach(name)
	}
}

// Update forwards msg to every widget and applies finished item loads
func (s *Stage) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(itemLoadedMsg); ok {
		return s.handleItemLoaded(msg)
	}
	var cmds []tea.Cmd
	for _, m := range s.backgrounds {
		cmds = append(cmds, m.Update(msg))
	}
	for _, name := range s.order {
		cmds = append(cmds, s.carousels[name].Update(msg))
	}
	return tea.Batch(cmds...)
}

// FilterVariant drops items meant for the other layout: desktop items in
// compact mode, mobile items otherwise
func FilterVariant(items []domain.Item, compact bool) []domain.Item {
	drop := domain.VariantMobile
	if compact {
		drop = domain.VariantDesktop
	}
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if it.Variant != drop {
			out = append(out, it)
		}
	}
	return out
}

// RandomStart picks a start index in [0, n-1), or 0 for a single item
func RandomStart(n int, r *rand.Rand) int {
	if n <= 1 {
		return 0
	}
	f := rand.Float64
	if r != nil {
		f = r.Float64
	}
	return int(math.Floor(f() * float64(n-1)))
}

type itemLoadedMsg struct {
	name  string
	index int
	err   error
}

// loadItem loads the image of item index once; items without a source or
// already loaded are skipped
func (s *Stage) loadItem(name string, index int) tea.Cmd {
	c, ok := s.carousels[name]
	if !ok || s.loader == nil {
		return nil
	}
	item := c.Item(index)
	if item.Loaded || item.Src == "" || s.pending[name][index] {
		return nil
	}
	s.pending[name][index] = true

	loader := s.loader
	src := item.Src
	return func() tea.Msg {
		_, err := loader.Load(context.Background(), src)
		return itemLoadedMsg{name: name, index: index, err: err}
	}
}

func (s *Stage) handleItemLoaded(msg itemLoadedMsg) tea.Cmd {
	c, ok := s.carousels[msg.name]
	if !ok {
		return nil
	}
	delete(s.pending[msg.name], msg.index)

	item := c.Item(msg.index)
	if msg.err != nil {
		log.Printf("bootstrap: failed to load item %s of %s: %v", item.ID, msg.name, msg.err)
	} else {
		item.Loaded = true
		c.SetItem(msg.index, item)
	}
	if s.bus != nil {
		s.bus.Publish(eventbus.ItemLoadedEvent{Source: msg.name, ItemID: item.ID, Err: msg.err})
	}
	return nil
}
