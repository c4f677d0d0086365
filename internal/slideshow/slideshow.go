// Package slideshow implements a full-bleed background image rotator.
//
// A Model owns the cursor into a fixed list of image sources. Showing an
// image is asynchronous: the loader measures it, the crop-to-fill geometry is
// computed, the image fades in over the previous one, and only then does the
// auto-advance timer resume. All state changes happen inside Update, so the
// model needs no locking.
package slideshow

import (
	"context"
	"errors"
	"image"
	"log"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"showreel/internal/config"
	"showreel/internal/domain"
	"showreel/internal/eventbus"
	"showreel/internal/media"
	"showreel/internal/telemetry"
)

// ErrNoContent is returned when a slideshow is created without images
var ErrNoContent = errors.New("no content supplied")

// ErrNoLoader is returned when a slideshow is created without a loader
var ErrNoLoader = errors.New("no image loader")

const fadeFPS = 30

// Options configures a slideshow
type Options struct {
	Name      string
	CenteredX bool
	CenteredY bool
	Duration  time.Duration // time between slides
	Fade      time.Duration // fade-in speed, 0 for a hard cut

	Bus     eventbus.EventBus
	Tracer  oteltrace.Tracer
	Profile termenv.Profile
}

// DefaultOptions returns centered slides every five seconds with no fade
func DefaultOptions() Options {
	return Options{
		Name:      "background",
		CenteredX: true,
		CenteredY: true,
		Duration:  5 * time.Second,
		Profile:   termenv.TrueColor,
	}
}

// OptionsFrom converts file settings into Options
func OptionsFrom(s config.SlideshowSettings) Options {
	o := DefaultOptions()
	o.CenteredX = s.CenteredX
	o.CenteredY = s.CenteredY
	o.Duration = s.Duration.Duration
	o.Fade = s.Fade.Duration
	return o
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

type slide struct {
	index     int
	src       string
	img       image.Image
	ratio     float64
	placement domain.Placement
	frame     *image.RGBA
}

// Model is the image sequence controller
type Model struct {
	id     int
	images []string
	opts   Options
	loader media.Loader

	index     int
	paused    bool
	destroyed bool

	// cycleTag invalidates pending auto-advance ticks; loadSeq invalidates
	// pending loads and fades
	cycleTag int
	loadSeq  int

	width  int
	height int

	current   *slide
	incoming  *slide
	fadeStart time.Time
	progress  float64

	rendered string
	dirty    bool

	span oteltrace.Span
	now  func() time.Time
}

// New creates a slideshow over images. It fails with ErrNoContent when the
// list is empty and ErrNoLoader without a loader.
func New(images []string, opts Options, loader media.Loader) (*Model, error) {
	if len(images) == 0 {
		return nil, ErrNoContent
	}
	if loader == nil {
		return nil, ErrNoLoader
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultOptions().Duration
	}
	if opts.Tracer == nil {
		opts.Tracer = telemetry.Noop()
	}
	return &Model{
		id:     nextID(),
		images: append([]string(nil), images...),
		opts:   opts,
		loader: loader,
		now:    time.Now,
	}, nil
}

// Init shows the first image and preloads the rest
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.Show(m.index), m.preload())
}

// ID identifies this instance in messages
func (m *Model) ID() int { return m.id }

// Index returns the current image index
func (m *Model) Index() int { return m.index }

// Len returns the number of images
func (m *Model) Len() int { return len(m.images) }

// Paused reports whether auto-advance is paused
func (m *Model) Paused() bool { return m.paused }

// Destroyed reports whether Destroy was called
func (m *Model) Destroyed() bool { return m.destroyed }

// Options returns the options the slideshow was built with
func (m *Model) Options() Options { return m.opts }

// Current returns the source of the image on screen, if any
func (m *Model) Current() (string, bool) {
	if m.current == nil {
		return "", false
	}
	return m.current.src, true
}

// Placement returns the geometry of the image on screen
func (m *Model) Placement() (domain.Placement, bool) {
	if m.current == nil {
		return domain.Placement{}, false
	}
	return m.current.placement, true
}

// Loading reports whether a requested image has not finished its transition
func (m *Model) Loading() bool {
	return m.incoming != nil || m.current == nil || m.current.index != m.index
}

// Show moves to index. Indexes with |index| > len-1 are ignored; negative
// indexes in range count from the end.
func (m *Model) Show(index int) tea.Cmd {
	if m.destroyed {
		return nil
	}
	n := len(m.images)
	if index > n-1 || -index > n-1 {
		return nil
	}
	if index < 0 {
		index += n
	}
	m.index = index

	// stop the running timer; it restarts once the image is on screen
	m.cycleTag++
	m.loadSeq++

	m.endSpan(nil)
	_, m.span = m.opts.Tracer.Start(context.Background(), "slideshow.show",
		oteltrace.WithAttributes(
			attribute.String("slideshow.name", m.opts.Name),
			attribute.Int("slideshow.index", index),
			attribute.String("slideshow.src", m.images[index]),
		))

	return m.load(m.loadSeq, index, m.images[index])
}

// Next shows the following image, wrapping to the first
func (m *Model) Next() tea.Cmd {
	if m.index < len(m.images)-1 {
		return m.Show(m.index + 1)
	}
	return m.Show(0)
}

// Previous shows the preceding image, wrapping to the last
func (m *Model) Previous() tea.Cmd {
	if m.index == 0 {
		return m.Show(len(m.images) - 1)
	}
	return m.Show(m.index - 1)
}

// Pause stops auto-advance without cancelling the timer
func (m *Model) Pause() {
	m.paused = true
}

// Resume clears the pause and advances immediately
func (m *Model) Resume() tea.Cmd {
	m.paused = false
	return m.Next()
}

// Cycle (re)starts the auto-advance timer. It does nothing for a single
// image.
func (m *Model) Cycle() tea.Cmd {
	if m.destroyed || len(m.images) <= 1 {
		return nil
	}
	m.cycleTag++
	return m.cycleTick()
}

// Destroy cancels the timer and releases frames. Messages still in flight
// for this instance are ignored afterwards.
func (m *Model) Destroy() {
	m.destroy(false)
}

// DestroyPreserving is Destroy that leaves the image on screen in place, so
// View keeps returning the last frame. A slide caught mid-fade is kept as
// its target.
func (m *Model) DestroyPreserving() {
	m.destroy(true)
}

func (m *Model) destroy(preserve bool) {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.cycleTag++
	m.loadSeq++
	if preserve {
		if m.incoming != nil && m.incoming.frame != nil {
			m.current = m.incoming
			m.dirty = true
		}
	} else {
		m.current = nil
		m.rendered = ""
	}
	m.incoming = nil
	m.endSpan(nil)
	log.Printf("slideshow %s: destroyed (preserve=%v)", m.opts.Name, preserve)
}

// FadeFrom takes over the image prev has on screen as the base the first
// slide fades in over. It is meant for a replacement slideshow, before Init.
func (m *Model) FadeFrom(prev *Model) {
	if prev == nil || prev.current == nil || m.current != nil {
		return
	}
	base := *prev.current
	base.index = -1 // not one of ours, keeps Loading true
	m.current = &base
	if m.width == 0 && m.height == 0 {
		m.width, m.height = prev.width, prev.height
	}
	m.layout(m.current)
	m.dirty = true
}

// SetSize sets the container size in terminal cells and recomputes the
// geometry of the images on screen
func (m *Model) SetSize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.resize()
}

// Update handles loads, fades, timer ticks and terminal resizes
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.destroyed {
		return nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case loadedMsg:
		if msg.id != m.id || msg.seq != m.loadSeq {
			return nil
		}
		return m.handleLoaded(msg)

	case fadeMsg:
		if msg.id != m.id || msg.seq != m.loadSeq || m.incoming == nil {
			return nil
		}
		m.progress = float64(msg.at.Sub(m.fadeStart)) / float64(m.opts.Fade)
		m.dirty = true
		if m.progress >= 1 {
			return m.finishFade()
		}
		return m.fadeTick(msg.seq)

	case cycleMsg:
		if msg.id != m.id || msg.tag != m.cycleTag {
			return nil
		}
		if m.paused {
			return m.cycleTick()
		}
		return m.Next()

	case preloadedMsg:
		if msg.id == m.id && msg.failed > 0 {
			log.Printf("slideshow %s: %d of %d images failed to preload", m.opts.Name, msg.failed, len(m.images))
		}
	}
	return nil
}

// View renders the background at the current size
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if !m.dirty && m.rendered != "" {
		return m.rendered
	}

	var frame *image.RGBA
	if m.current != nil {
		frame = m.current.frame
	}
	if m.incoming != nil && m.incoming.frame != nil {
		frame = media.Blend(frame, m.incoming.frame, m.progress)
	}
	if frame == nil {
		m.rendered = blank(m.width, m.height)
	} else {
		m.rendered = media.HalfBlocks(frame, m.opts.Profile)
	}
	m.dirty = false
	return m.rendered
}

func (m *Model) handleLoaded(msg loadedMsg) tea.Cmd {
	if msg.err != nil {
		log.Printf("slideshow %s: failed to load %s: %v", m.opts.Name, m.images[msg.index], msg.err)
		m.publish(eventbus.SlideLoadFailedEvent{
			Source: m.opts.Name,
			Index:  msg.index,
			Image:  m.images[msg.index],
			Err:    msg.err,
		})
		m.endSpan(msg.err)
		if !m.paused {
			return m.Cycle()
		}
		return nil
	}

	// a slide still fading in becomes the base for the new one
	if m.incoming != nil {
		m.current = m.incoming
	}
	m.incoming = &slide{
		index: msg.index,
		src:   m.images[msg.index],
		img:   msg.img,
		ratio: media.Ratio(msg.img),
	}
	m.layout(m.incoming)
	m.progress = 0
	m.dirty = true

	if m.opts.Fade <= 0 {
		return m.finishFade()
	}
	m.fadeStart = m.now()
	return m.fadeTick(m.loadSeq)
}

func (m *Model) finishFade() tea.Cmd {
	m.current = m.incoming
	m.incoming = nil
	m.progress = 1
	m.dirty = true

	m.publish(eventbus.SlideShownEvent{
		Source: m.opts.Name,
		Index:  m.current.index,
		Image:  m.current.src,
	})
	m.endSpan(nil)

	if !m.paused {
		return m.Cycle()
	}
	return nil
}

func (m *Model) resize() {
	for _, s := range []*slide{m.current, m.incoming} {
		if s != nil {
			m.layout(s)
		}
	}
	m.dirty = true
}

// layout computes geometry for s. It is a no-op until both the container and
// the image have been measured.
func (m *Model) layout(s *slide) {
	container := domain.Size{W: float64(m.width), H: float64(m.height * 2)}
	p, err := Fit(container, s.ratio, m.opts.CenteredX, m.opts.CenteredY)
	if err != nil {
		return
	}
	s.placement = p
	s.frame = media.Compose(s.img, p, image.Pt(m.width, m.height*2))
}

func (m *Model) load(seq, index int, src string) tea.Cmd {
	id := m.id
	loader := m.loader
	return func() tea.Msg {
		img, err := loader.Load(context.Background(), src)
		return loadedMsg{id: id, seq: seq, index: index, img: img, err: err}
	}
}

func (m *Model) preload() tea.Cmd {
	if len(m.images) <= 1 {
		return nil
	}
	id := m.id
	loader := m.loader
	srcs := append([]string(nil), m.images...)
	return func() tea.Msg {
		return preloadedMsg{id: id, failed: media.Preload(context.Background(), loader, srcs)}
	}
}

func (m *Model) fadeTick(seq int) tea.Cmd {
	id := m.id
	return tea.Tick(time.Second/fadeFPS, func(t time.Time) tea.Msg {
		return fadeMsg{id: id, seq: seq, at: t}
	})
}

func (m *Model) cycleTick() tea.Cmd {
	id, tag := m.id, m.cycleTag
	return tea.Tick(m.opts.Duration, func(time.Time) tea.Msg {
		return cycleMsg{id: id, tag: tag}
	})
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.opts.Bus != nil {
		m.opts.Bus.Publish(e)
	}
}

func (m *Model) endSpan(err error) {
	if m.span == nil {
		return
	}
	if err != nil {
		m.span.RecordError(err)
		m.span.SetStatus(codes.Error, err.Error())
	}
	m.span.End()
	m.span = nil
}

func blank(width, height int) string {
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
