package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSlideShown         EventType = "SlideShown"
	EventSlideLoadFailed    EventType = "SlideLoadFailed"
	EventTransitionStarted  EventType = "TransitionStarted"
	EventTransitionEnded    EventType = "TransitionEnded"
	EventAutoAdvanceStopped EventType = "AutoAdvanceStopped"
	EventMediaDiscovered    EventType = "MediaDiscovered"
	EventScanStarted        EventType = "ScanStarted"
	EventScanCompleted      EventType = "ScanCompleted"
	EventScanRequested      EventType = "ScanRequested"
	EventItemLoaded         EventType = "ItemLoaded"
	EventError              EventType = "Error"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
	EventAppReady           EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SlideShownEvent is emitted after a slide finished its transition
type SlideShownEvent struct {
	Source string // name of the slideshow instance
	Index  int
	Image  string
}

func (e SlideShownEvent) Type() EventType { return EventSlideShown }

// SlideLoadFailedEvent is emitted when an image could not be loaded
type SlideLoadFailedEvent struct {
	Source string
	Index  int
	Image  string
	Err    error
}

func (e SlideLoadFailedEvent) Type() EventType { return EventSlideLoadFailed }

// TransitionStartedEvent is emitted before a carousel starts moving.
// Items is the subset visible before the move.
type TransitionStartedEvent struct {
	Source string
	Cursor int
	Items  []Item
}

func (e TransitionStartedEvent) Type() EventType { return EventTransitionStarted }

// TransitionEndedEvent is emitted when a carousel move completes.
// Items is the newly visible subset.
type TransitionEndedEvent struct {
	Source string
	Cursor int
	Items  []Item
}

func (e TransitionEndedEvent) Type() EventType { return EventTransitionEnded }

// AutoAdvanceStoppedEvent is emitted when a manual navigation permanently
// cancels a carousel's auto-advance timer
type AutoAdvanceStoppedEvent struct {
	Source string
}

func (e AutoAdvanceStoppedEvent) Type() EventType { return EventAutoAdvanceStopped }

// MediaDiscoveredEvent is emitted when an image file is found
type MediaDiscoveredEvent struct {
	File MediaFile
}

func (e MediaDiscoveredEvent) Type() EventType { return EventMediaDiscovered }

// ScanStartedEvent is emitted when media scanning begins
type ScanStartedEvent struct {
	Paths []string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when media scanning finishes
type ScanCompletedEvent struct {
	FilesFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ScanRequestedEvent is emitted to request a scan of the given paths
type ScanRequestedEvent struct {
	Paths []string
}

func (e ScanRequestedEvent) Type() EventType { return EventScanRequested }

// ItemLoadedEvent is emitted when a lazily loaded carousel item image is ready
type ItemLoadedEvent struct {
	Source string
	ItemID string
	Err    error
}

func (e ItemLoadedEvent) Type() EventType { return EventItemLoaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// AppReadyEvent is emitted when the app is fully initialized and ready
type AppReadyEvent struct{}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
