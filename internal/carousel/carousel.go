// Package carousel implements a windowed item carousel with optional
// circular wrap-around, timed auto-advance and hover pause.
//
// Navigation is split in two: Window decides where the cursor goes, the
// track animates the strip there. While a transition runs every further
// navigation request is dropped.
package carousel

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"showreel/internal/config"
	"showreel/internal/domain"
	"showreel/internal/eventbus"
	"showreel/internal/telemetry"
)

const frameFPS = 30

// Options configures a carousel
type Options struct {
	Name         string
	Visible      int
	Scroll       int
	Circular     bool
	Auto         time.Duration // 0 disables auto-advance
	Speed        time.Duration // transition duration, 0 for an instant move
	Easing       Easing
	Axis         domain.Axis
	PauseOnHover bool
	StopOnClick  bool
	Start        int // logical index of the first visible item
	MouseWheel   bool

	ItemWidth  int
	ItemHeight int
	ItemMargin int

	Renderer ItemRenderer
	Bus      eventbus.EventBus
	Tracer   oteltrace.Tracer
}

// DefaultOptions returns a three-item horizontal circular carousel that
// advances every 15s, pauses under the pointer and stops on user navigation
func DefaultOptions() Options {
	return Options{
		Name:         "carousel",
		Visible:      3,
		Scroll:       1,
		Circular:     true,
		Auto:         15 * time.Second,
		Speed:        time.Second,
		Easing:       Swing,
		Axis:         domain.Horizontal,
		PauseOnHover: true,
		StopOnClick:  true,
		ItemWidth:    24,
		ItemHeight:   9,
		ItemMargin:   1,
	}
}

// OptionsFrom converts file settings into Options. Randomize is applied by
// the caller since it needs the item count.
func OptionsFrom(s config.CarouselSettings) Options {
	o := DefaultOptions()
	o.Visible = s.Visible
	o.Scroll = s.Scroll
	o.Circular = s.Circular
	o.Auto = s.Auto.Duration
	o.Speed = s.Speed.Duration
	o.Easing = EasingByName(s.Easing)
	if s.Vertical {
		o.Axis = domain.Vertical
	}
	o.PauseOnHover = s.PauseOnHover
	o.StopOnClick = s.StopOnClick
	o.Start = s.Start
	o.MouseWheel = s.MouseWheel
	if s.ItemWidth > 0 {
		o.ItemWidth = s.ItemWidth
	}
	if s.ItemHeight > 0 {
		o.ItemHeight = s.ItemHeight
	}
	if s.ItemMargin >= 0 {
		o.ItemMargin = s.ItemMargin
	}
	return o
}

// Visible is the payload handed to transition hooks: the items in view
// leftmost (or topmost) first
type Visible struct {
	Source string
	Cursor int
	Items  []domain.Item
}

// Hook runs at a transition boundary. The returned command, if any, is
// batched with the carousel's own.
type Hook func(Visible) tea.Cmd

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Model is the carousel controller
type Model struct {
	id     int
	items  []domain.Item
	opts   Options
	window *Window
	track  track

	running     bool
	hovered     bool
	autoStopped bool
	destroyed   bool

	// autoTag invalidates pending auto-advance ticks; frameSeq invalidates
	// pending animation frames
	autoTag  int
	frameSeq int

	prevDisabled bool
	nextDisabled bool

	before []Hook
	after  []Hook

	cellW, cellH int // item cell including margin
	cards        map[int]string

	originX, originY int

	span oteltrace.Span
	now  func() time.Time
}

// New creates a carousel over items. It fails with ErrNoContent when the
// list is empty and ErrInvalidWindow when Visible or Scroll cannot be
// satisfied.
func New(items []domain.Item, opts Options) (*Model, error) {
	if opts.Visible == 0 {
		opts.Visible = 1
	}
	if opts.Scroll == 0 {
		opts.Scroll = 1
	}
	w, err := NewWindow(len(items), opts.Visible, opts.Scroll, opts.Circular, opts.Start)
	if err != nil {
		return nil, err
	}
	if opts.Easing == nil {
		opts.Easing = Swing
	}
	if opts.Renderer == nil {
		opts.Renderer = NewCardRenderer()
	}
	if opts.Tracer == nil {
		opts.Tracer = telemetry.Noop()
	}
	if opts.ItemWidth <= 0 {
		opts.ItemWidth = DefaultOptions().ItemWidth
	}
	if opts.ItemHeight <= 0 {
		opts.ItemHeight = DefaultOptions().ItemHeight
	}

	m := &Model{
		id:     nextID(),
		items:  append([]domain.Item(nil), items...),
		opts:   opts,
		window: w,
		track:  track{easing: opts.Easing},
		cards:  make(map[int]string),
		now:    time.Now,
	}
	m.measure()
	m.track.jump(float64(w.Position() * m.cellSize()))
	m.updateAffordances()
	return m, nil
}

// Init starts the auto-advance timer when enabled
func (m *Model) Init() tea.Cmd {
	if m.opts.Auto <= 0 {
		return nil
	}
	return m.autoTick()
}

// ID identifies this instance in messages
func (m *Model) ID() int { return m.id }

// Options returns the options the carousel was built with
func (m *Model) Options() Options { return m.opts }

// Len returns the number of items
func (m *Model) Len() int { return len(m.items) }

// Items returns a copy of the items
func (m *Model) Items() []domain.Item { return append([]domain.Item(nil), m.items...) }

// Item returns the item at logical index i
func (m *Model) Item(i int) domain.Item { return m.items[i] }

// SetItem replaces the item at logical index i, e.g. once its content has
// been loaded
func (m *Model) SetItem(i int, item domain.Item) {
	if i < 0 || i >= len(m.items) {
		return
	}
	m.items[i] = item
	delete(m.cards, i)
}

// Cursor returns the logical index of the first visible item
func (m *Model) Cursor() int { return m.window.Cursor() }

// Position returns the cursor as a track position
func (m *Model) Position() int { return m.window.Position() }

// Window exposes the cursor arithmetic
func (m *Model) Window() *Window { return m.window }

// Running reports whether a transition is in progress
func (m *Model) Running() bool { return m.running }

// Hovered reports whether the pointer is over the viewport
func (m *Model) Hovered() bool { return m.hovered }

// Paused reports whether hover pause currently blocks navigation
func (m *Model) Paused() bool { return m.opts.PauseOnHover && m.hovered }

// AutoStopped reports whether a user action cancelled auto-advance
func (m *Model) AutoStopped() bool { return m.autoStopped }

// Destroyed reports whether Destroy was called
func (m *Model) Destroyed() bool { return m.destroyed }

// PrevDisabled reports whether the previous control is disabled. Only
// non-circular carousels disable their controls.
func (m *Model) PrevDisabled() bool { return m.prevDisabled }

// NextDisabled reports whether the next control is disabled
func (m *Model) NextDisabled() bool { return m.nextDisabled }

// VisibleItems returns the items currently in view
func (m *Model) VisibleItems() []domain.Item {
	idx := m.window.VisibleItems()
	out := make([]domain.Item, len(idx))
	for i, j := range idx {
		out[i] = m.items[j]
	}
	return out
}

// OnBeforeStart registers a hook that runs when a transition begins, with
// the items visible before the move
func (m *Model) OnBeforeStart(h Hook) {
	m.before = append(m.before, h)
}

// OnAfterEnd registers a hook that runs when a transition completes, with
// the items now in view
func (m *Model) OnAfterEnd(h Hook) {
	m.after = append(m.after, h)
}

// GoTo moves to track position target. The request is dropped while a
// transition runs, while hover pause is active, and after Destroy.
func (m *Model) GoTo(target int) tea.Cmd {
	if m.destroyed || m.running || m.Paused() {
		return nil
	}
	mv, ok := m.window.Plan(target)
	if !ok {
		return nil
	}

	cmds := []tea.Cmd{m.fire(m.before, true)}

	if mv.Jumped {
		m.track.jump(float64(mv.Jump * m.cellSize()))
	}
	m.window.Apply(mv)
	m.running = true
	m.frameSeq++

	_, m.span = m.opts.Tracer.Start(context.Background(), "carousel.transition",
		oteltrace.WithAttributes(
			attribute.String("carousel.name", m.opts.Name),
			attribute.Int("carousel.from", mv.From),
			attribute.Int("carousel.to", mv.To),
			attribute.Bool("carousel.wrapped", mv.Jumped),
		))

	to := float64(mv.To * m.cellSize())
	if m.opts.Speed <= 0 {
		m.track.jump(to)
		cmds = append(cmds, m.finish())
		return tea.Batch(cmds...)
	}
	m.track.animate(to, m.opts.Speed, m.now())
	cmds = append(cmds, m.frameTick())
	return tea.Batch(cmds...)
}

// Next is a user-driven step forward by Scroll items
func (m *Model) Next() tea.Cmd {
	m.userAction()
	return m.GoTo(m.window.Position() + m.opts.Scroll)
}

// Previous is a user-driven step back by Scroll items
func (m *Model) Previous() tea.Cmd {
	m.userAction()
	return m.GoTo(m.window.Position() - m.opts.Scroll)
}

// GoToItem is a user-driven move that brings logical item i to the first
// visible slot
func (m *Model) GoToItem(i int) tea.Cmd {
	if i < 0 || i >= len(m.items) {
		return nil
	}
	m.userAction()
	pos := m.window.PositionOf(i)
	// late items in a circular track also sit one lap back, inside the range
	if m.window.Circular() && pos > m.window.TrackLen()-m.window.Visible() {
		pos -= m.window.Len()
	}
	return m.GoTo(pos)
}

// SetHovered records pointer enter/leave on the viewport
func (m *Model) SetHovered(hovered bool) {
	m.hovered = hovered
}

// SetOrigin tells the carousel where its top-left corner is on screen so it
// can hit-test mouse events
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// Destroy cancels the auto timer and any transition. Messages still in
// flight for this instance are ignored afterwards.
func (m *Model) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.autoTag++
	m.frameSeq++
	m.running = false
	m.endSpan()
	m.cards = nil
	log.Printf("carousel %s: destroyed", m.opts.Name)
}

// Update handles animation frames, auto-advance ticks and mouse input
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.destroyed {
		return nil
	}
	switch msg := msg.(type) {
	case frameMsg:
		if msg.id != m.id || msg.seq != m.frameSeq || !m.running {
			return nil
		}
		if m.track.advance(msg.at) {
			return m.finish()
		}
		return m.frameTick()

	case autoMsg:
		if msg.id != m.id || msg.tag != m.autoTag || m.autoStopped {
			return nil
		}
		return tea.Batch(m.GoTo(m.window.Position()+m.opts.Scroll), m.autoTick())

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return nil
}

// Size returns the rendered width and height in cells, controls included
func (m *Model) Size() (int, int) {
	if m.opts.Axis == domain.Vertical {
		return m.cellW, m.viewport() + 2
	}
	return m.viewport() + 4, m.cellH
}

// View renders the visible part of the track with prev/next controls
func (m *Model) View() string {
	if m.destroyed {
		return ""
	}
	styles := controlStyles()
	prev, next := styles.enabled, styles.enabled
	if m.prevDisabled {
		prev = styles.disabled
	}
	if m.nextDisabled {
		next = styles.disabled
	}

	strip := m.viewportView()
	if m.opts.Axis == domain.Vertical {
		up := lipgloss.PlaceHorizontal(m.cellW, lipgloss.Center, prev.Render("▲"))
		down := lipgloss.PlaceHorizontal(m.cellW, lipgloss.Center, next.Render("▼"))
		return lipgloss.JoinVertical(lipgloss.Left, up, strip, down)
	}
	left := lipgloss.PlaceVertical(m.cellH, lipgloss.Center, prev.Render("‹ "))
	right := lipgloss.PlaceVertical(m.cellH, lipgloss.Center, next.Render(" ›"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strip, right)
}

func (m *Model) viewportView() string {
	size := m.cellSize()
	view := m.viewport()
	pos := m.track.cell()
	first := max(0, pos/size)
	last := min(m.window.TrackLen()-1, (pos+view-1)/size)

	cells := make([]string, 0, last-first+1)
	for p := first; p <= last; p++ {
		cells = append(cells, m.card(m.window.ItemAt(p)))
	}
	off := pos - first*size

	if m.opts.Axis == domain.Vertical {
		lines := strings.Split(lipgloss.JoinVertical(lipgloss.Left, cells...), "\n")
		out := make([]string, view)
		for i := range out {
			if j := off + i; j >= 0 && j < len(lines) {
				out[i] = lines[j]
			} else {
				out[i] = strings.Repeat(" ", m.cellW)
			}
		}
		return strings.Join(out, "\n")
	}

	lines := strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, cells...), "\n")
	for i, l := range lines {
		cut := ansi.Cut(l, off, off+view)
		if w := ansi.StringWidth(cut); w < view {
			cut += strings.Repeat(" ", view-w)
		}
		lines[i] = cut
	}
	return strings.Join(lines, "\n")
}

// card renders logical item i padded to a full cell
func (m *Model) card(i int) string {
	if c, ok := m.cards[i]; ok {
		return c
	}
	c := lipgloss.NewStyle().
		Width(m.cellW).
		Height(m.cellH).
		Render(m.opts.Renderer.RenderItem(m.items[i], m.opts.ItemWidth, m.opts.ItemHeight))
	m.cards[i] = c
	return c
}

// measure sizes the item cells from a rendered sample
func (m *Model) measure() {
	sample := m.opts.Renderer.RenderItem(m.items[0], m.opts.ItemWidth, m.opts.ItemHeight)
	m.cellW = max(lipgloss.Width(sample), 1)
	m.cellH = max(lipgloss.Height(sample), 1)
	if m.opts.Axis == domain.Vertical {
		m.cellH += m.opts.ItemMargin
	} else {
		m.cellW += m.opts.ItemMargin
	}
}

// cellSize is the distance between items along the axis
func (m *Model) cellSize() int {
	if m.opts.Axis == domain.Vertical {
		return m.cellH
	}
	return m.cellW
}

// viewport is the visible span along the axis
func (m *Model) viewport() int {
	return m.cellSize() * m.opts.Visible
}

func (m *Model) finish() tea.Cmd {
	m.running = false
	m.track.jump(m.track.to)
	m.updateAffordances()
	m.endSpan()
	return m.fire(m.after, false)
}

func (m *Model) updateAffordances() {
	m.prevDisabled = m.window.AtStart()
	m.nextDisabled = m.window.AtEnd()
}

// userAction cancels auto-advance on the first user navigation when
// StopOnClick is set
func (m *Model) userAction() {
	if !m.opts.StopOnClick || m.autoStopped || m.opts.Auto <= 0 {
		return
	}
	m.autoStopped = true
	m.autoTag++
	log.Printf("carousel %s: auto-advance stopped by user", m.opts.Name)
	m.publish(eventbus.AutoAdvanceStoppedEvent{Source: m.opts.Name})
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	w, h := m.Size()
	x, y := msg.X-m.originX, msg.Y-m.originY
	if x < 0 || y < 0 || x >= w || y >= h {
		m.hovered = false
		return nil
	}

	// viewport bounds inside the rendered block
	vx0, vy0, vx1, vy1 := 2, 0, 2+m.viewport(), m.cellH
	if m.opts.Axis == domain.Vertical {
		vx0, vy0, vx1, vy1 = 0, 1, m.cellW, 1+m.viewport()
	}
	inViewport := x >= vx0 && x < vx1 && y >= vy0 && y < vy1
	m.hovered = inViewport

	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		if m.opts.MouseWheel {
			return m.Previous()
		}
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		if m.opts.MouseWheel {
			return m.Next()
		}
	case tea.MouseButtonLeft:
		if inViewport {
			return nil
		}
		before := x < vx0
		if m.opts.Axis == domain.Vertical {
			before = y < vy0
		}
		if before {
			return m.Previous()
		}
		return m.Next()
	}
	return nil
}

func (m *Model) fire(hooks []Hook, starting bool) tea.Cmd {
	v := Visible{
		Source: m.opts.Name,
		Cursor: m.window.Cursor(),
		Items:  m.VisibleItems(),
	}
	if starting {
		m.publish(eventbus.TransitionStartedEvent{Source: v.Source, Cursor: v.Cursor, Items: v.Items})
	} else {
		m.publish(eventbus.TransitionEndedEvent{Source: v.Source, Cursor: v.Cursor, Items: v.Items})
	}

	var cmds []tea.Cmd
	for _, h := range hooks {
		cmds = append(cmds, h(v))
	}
	return tea.Batch(cmds...)
}

func (m *Model) frameTick() tea.Cmd {
	id, seq := m.id, m.frameSeq
	return tea.Tick(time.Second/frameFPS, func(t time.Time) tea.Msg {
		return frameMsg{id: id, seq: seq, at: t}
	})
}

// autoTick arms the next auto-advance, Auto+Speed from now
func (m *Model) autoTick() tea.Cmd {
	id, tag := m.id, m.autoTag
	return tea.Tick(m.opts.Auto+m.opts.Speed, func(time.Time) tea.Msg {
		return autoMsg{id: id, tag: tag}
	})
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.opts.Bus != nil {
		m.opts.Bus.Publish(e)
	}
}

func (m *Model) endSpan() {
	if m.span == nil {
		return
	}
	m.span.End()
	m.span = nil
}

type controls struct {
	enabled  lipgloss.Style
	disabled lipgloss.Style
}

func controlStyles() controls {
	return controls{
		enabled:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

type frameMsg struct {
	id  int
	seq int
	at  time.Time
}

type autoMsg struct {
	id  int
	tag int
}
