package ui

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	oteltrace "go.opentelemetry.io/otel/trace"

	"showreel/internal/bootstrap"
	"showreel/internal/carousel"
	"showreel/internal/config"
	"showreel/internal/domain"
	"showreel/internal/eventbus"
	"showreel/internal/logic"
	"showreel/internal/media"
	"showreel/internal/slideshow"
	"showreel/internal/ui/input"
	inputtypes "showreel/internal/ui/input/types"
	"showreel/internal/ui/views"
)

const (
	backgroundName = "background"
	carouselName   = "featured"

	statusTimeout = 4 * time.Second
)

// Model is the application model: a background slideshow with a carousel
// on top, driven by the keyboard and the mouse
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	configSvc config.ConfigService
	loader    media.Loader
	store     logic.MediaStore
	stage     *bootstrap.Stage
	tracer    oteltrace.Tracer
	profile   termenv.Profile

	width   int
	height  int
	help    help.Model
	spinner spinner.Model

	currentSort logic.SortMode
	compact     bool
	showStatus  bool
	showHelp    bool
	inPagerMode bool // tracks if we're currently in pager mode
	readyMarker bool

	statusMessage string
	statusError   bool
	statusSeq     int

	renderer     *views.Renderer
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. bus and configSvc may be nil.
func NewModel(bus eventbus.EventBus, cfg *config.Config, configSvc config.ConfigService, loader media.Loader, store logic.MediaStore) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if store == nil {
		store = logic.NewMemoryMediaStore()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		bus:          bus,
		config:       cfg,
		configSvc:    configSvc,
		loader:       loader,
		store:        store,
		stage:        bootstrap.NewStage(loader, bus),
		profile:      termenv.TrueColor,
		help:         help.New(),
		spinner:      sp,
		currentSort:  logic.SortByPath,
		showStatus:   cfg.UI.ShowStatus,
		readyMarker:  os.Getenv("SHOWREEL_E2E_TEST") == "1",
		renderer:     views.NewRenderer(),
		inputHandler: input.New(inputtypes.DefaultKeyMap()),
		helpRenderer: NewHelpRenderer(),
		helpOps:      NewHelpOps(nil),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// SetCompact forces the compact carousel layout regardless of width
func (m *Model) SetCompact(compact bool) {
	m.compact = compact
}

// SetTracer sets the tracer handed to the widgets
func (m *Model) SetTracer(t oteltrace.Tracer) {
	m.tracer = t
}

// SetColorProfile sets the color profile used for images
func (m *Model) SetColorProfile(p termenv.Profile) {
	m.profile = p
}

// Stage returns the widget registry
func (m *Model) Stage() *bootstrap.Stage {
	return m.stage
}

// Init attaches the configured background and starts the spinner
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if len(m.config.Slideshow.Images) > 0 {
		opts := m.slideshowOptions()
		cmds = append(cmds, m.attachBackground(m.config.Slideshow.Images, &opts))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cmds := []tea.Cmd{m.stage.Update(msg)}
		if _, ok := m.stage.Carousel(carouselName); ok {
			m.placeCarousel()
		} else {
			cmds = append(cmds, m.renderCarousel())
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.stage.Update(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
			m.statusError = false
		}
		return m, nil

	case configSavedMsg:
		if msg.err != nil {
			log.Printf("Failed to save config: %v", msg.err)
			return m, m.setStatus(fmt.Sprintf("Failed to save config: %v", msg.err), true)
		}
		return m, m.setStatus("Saved "+msg.path, false)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only and fall back to the inline help
			log.Printf("Help pager failed: %v", msg.err)
			m.showHelp = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tea.ClearScreen

	default:
		// Handle non-keyboard messages
		return m, tea.Batch(m.inputHandler.Update(msg), m.stage.Update(msg))
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		SortMode:      m.currentSort.String(),
		StatusMessage: m.statusMessage,
		StatusError:   m.statusError,
		ShowStatus:    m.showStatus,
		ShowHelp:      m.showHelp,
		HelpModel:     m.help,
		InputMode:     m.inputHandler.ModeName(),
		InputPrompt:   m.inputHandler.Prompt(),
		ReadyMarker:   m.readyMarker,
		Spinner:       m.spinner.View(),
	}
	if m.config.UI.ShowHelp || m.showHelp {
		state.Keys = m.inputHandler.Keys()
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		state.TextInput = ti.View()
	}
	if bg, ok := m.stage.Background(backgroundName); ok {
		state.Background = bg.View()
		state.Slide = bg.Index()
		state.Slides = bg.Len()
		state.SlideLoading = bg.Loading()
		state.SlidePaused = bg.Paused()
	}
	if c, ok := m.stage.Carousel(carouselName); ok {
		state.Carousel = c.View()
		state.CarouselX, state.CarouselY = m.carouselOrigin(c)
		state.Item = c.Cursor()
		state.Items = c.Len()
		state.AutoStopped = c.AutoStopped()
	}

	return m.renderer.Render(state)
}

// CurrentItem implements the input context
func (m *Model) CurrentItem() int {
	if c, ok := m.stage.Carousel(carouselName); ok {
		return c.Cursor()
	}
	return 0
}

func (m *Model) TotalItems() int {
	if c, ok := m.stage.Carousel(carouselName); ok {
		return c.Len()
	}
	return 0
}

func (m *Model) CurrentSlide() int {
	if bg, ok := m.stage.Background(backgroundName); ok {
		return bg.Index()
	}
	return 0
}

func (m *Model) TotalSlides() int {
	if bg, ok := m.stage.Background(backgroundName); ok {
		return bg.Len()
	}
	return 0
}

func (m *Model) SlideshowPaused() bool {
	if bg, ok := m.stage.Background(backgroundName); ok {
		return bg.Paused()
	}
	return false
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		c, ok := m.stage.Carousel(carouselName)
		if !ok {
			return nil
		}
		if a.Direction == "prev" {
			return c.Previous()
		}
		return c.Next()

	case inputtypes.SlideAction:
		bg, ok := m.stage.Background(backgroundName)
		if !ok {
			return nil
		}
		if a.Direction == "prev" {
			return bg.Previous()
		}
		return bg.Next()

	case inputtypes.TogglePauseAction:
		bg, ok := m.stage.Background(backgroundName)
		if !ok {
			return nil
		}
		if bg.Paused() {
			return tea.Batch(bg.Resume(), m.setStatus("Slideshow resumed", false))
		}
		bg.Pause()
		return m.setStatus("Slideshow paused", false)

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeGoTo {
			return m.goToItem(a.Text)
		}

	case inputtypes.RescanAction:
		return m.rescan()

	case inputtypes.CycleSortAction:
		m.currentSort = m.currentSort.Next()
		return tea.Batch(m.refreshFromStore(), m.setStatus("Order: "+m.currentSort.String(), false))

	case inputtypes.ToggleStatusAction:
		m.showStatus = !m.showStatus

	case inputtypes.ToggleHelpAction:
		if m.showHelp || m.program == nil {
			m.showHelp = !m.showHelp
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContentPlain(m.inputHandler.Keys()))

	case inputtypes.SaveConfigAction:
		return m.saveConfig()

	case inputtypes.QuitAction:
		m.stage.Close()
		return tea.Quit
	}
	return nil
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.MediaDiscoveredEvent:
		m.store.Add(e.File)

	case eventbus.ScanStartedEvent:
		return m.setStatus("Scanning "+strings.Join(e.Paths, ", "), false)

	case eventbus.ScanCompletedEvent:
		return tea.Batch(m.refreshFromStore(), m.setStatus(fmt.Sprintf("Found %d images", e.FilesFound), false))

	case eventbus.AutoAdvanceStoppedEvent:
		return m.setStatus("Auto-advance stopped", false)

	case eventbus.SlideLoadFailedEvent:
		return m.setStatus(fmt.Sprintf("Failed to load %s", e.Image), true)

	case eventbus.ItemLoadedEvent:
		if e.Err != nil {
			return m.setStatus(fmt.Sprintf("Failed to load item %s", e.ItemID), true)
		}

	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	}
	return nil
}

// refreshFromStore rebuilds whatever is fed from discovered media: the
// background when no images are configured and the carousel when no items
// are configured
func (m *Model) refreshFromStore() tea.Cmd {
	if m.store.Len() == 0 {
		return nil
	}
	var cmds []tea.Cmd
	if len(m.config.Slideshow.Images) == 0 {
		var opts *slideshow.Options
		if _, ok := m.stage.Background(backgroundName); !ok {
			o := m.slideshowOptions()
			opts = &o
		}
		cmds = append(cmds, m.attachBackground(logic.Paths(m.store.All(m.currentSort)), opts))
	}
	if len(m.config.Carousel.Items) == 0 && m.width > 0 {
		m.stage.Detach(carouselName)
		cmds = append(cmds, m.renderCarousel())
	}
	return tea.Batch(cmds...)
}

// attachBackground attaches images as the background. A nil opts keeps the
// options of the background being replaced.
func (m *Model) attachBackground(images []string, opts *slideshow.Options) tea.Cmd {
	bg, cmd, err := m.stage.AttachBackground(backgroundName, images, opts)
	if err != nil {
		log.Printf("Failed to attach background: %v", err)
		return m.setStatus(err.Error(), true)
	}
	if m.width > 0 && m.height > 0 {
		bg.SetSize(m.width, m.height)
	}
	return cmd
}

func (m *Model) slideshowOptions() slideshow.Options {
	opts := slideshow.OptionsFrom(m.config.Slideshow)
	opts.Name = backgroundName
	opts.Tracer = m.tracer
	opts.Profile = m.profile
	return opts
}

// renderCarousel renders the carousel once the terminal size is known
func (m *Model) renderCarousel() tea.Cmd {
	items := m.carouselItems()
	if len(items) == 0 || m.width == 0 {
		return nil
	}

	opts := carousel.OptionsFrom(m.config.Carousel)
	opts.Renderer = NewThumbnailRenderer(m.loader, m.profile)
	opts.Tracer = m.tracer

	host := bootstrap.Host{
		Width:        m.width,
		CompactWidth: m.config.UI.CompactWidth,
		Items:        items,
		Options:      opts,
		Randomize:    m.config.Carousel.Randomize,
	}
	if m.compact {
		host.CompactWidth = math.MaxInt
	}

	_, cmd, err := m.stage.RenderCarousel(carouselName, host)
	switch {
	case errors.Is(err, carousel.ErrNoContent):
		log.Printf("No carousel items for this layout")
		return nil
	case err != nil:
		log.Printf("Failed to render carousel: %v", err)
		return m.setStatus(err.Error(), true)
	}
	m.placeCarousel()
	return cmd
}

func (m *Model) carouselItems() []domain.Item {
	if len(m.config.Carousel.Items) > 0 {
		items := make([]domain.Item, 0, len(m.config.Carousel.Items))
		for _, it := range m.config.Carousel.Items {
			items = append(items, domain.Item{
				ID:      it.ID,
				Title:   it.Title,
				Body:    it.Body,
				Src:     it.Src,
				Variant: it.Variant,
			})
		}
		return items
	}

	files := m.store.All(m.currentSort)
	items := make([]domain.Item, 0, len(files))
	for _, f := range files {
		items = append(items, domain.Item{ID: f.Path, Title: f.Name, Body: f.Dir, Src: f.Path})
	}
	return items
}

// placeCarousel centers the carousel horizontally above the bottom bars
func (m *Model) placeCarousel() {
	if c, ok := m.stage.Carousel(carouselName); ok {
		c.SetOrigin(m.carouselOrigin(c))
	}
}

func (m *Model) carouselOrigin(c *carousel.Model) (int, int) {
	w, h := c.Size()
	bars := 0
	if m.showStatus {
		bars++
	}
	if m.config.UI.ShowHelp {
		bars++
	}
	return max((m.width-w)/2, 0), max(m.height-h-bars, 0)
}

func (m *Model) goToItem(text string) tea.Cmd {
	c, ok := m.stage.Carousel(carouselName)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n > c.Len() {
		return m.setStatus(fmt.Sprintf("No item %q, expected 1..%d", text, c.Len()), true)
	}
	return c.GoToItem(n - 1)
}

func (m *Model) rescan() tea.Cmd {
	if m.config.MediaDir == "" {
		return m.setStatus("No media directory configured", true)
	}
	if m.bus == nil {
		return nil
	}
	m.store.Reset()
	m.bus.Publish(eventbus.ScanRequestedEvent{Paths: []string{m.config.MediaDir}})
	return nil
}

// saveConfig writes the current display settings to the config file
func (m *Model) saveConfig() tea.Cmd {
	if m.configSvc == nil {
		return m.setStatus("No config file", true)
	}
	m.config.UI.ShowStatus = m.showStatus
	cfg := *m.config
	svc := m.configSvc
	return func() tea.Msg {
		return configSavedMsg{path: svc.Path(), err: svc.Save(&cfg)}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{
			err: err,
		}
	}
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.statusMessage = text
	m.statusError = isErr
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
