package slideshow

import (
	"image"
	"time"
)

// loadedMsg carries a decoded (or failed) image back into Update
type loadedMsg struct {
	id    int
	seq   int
	index int
	img   image.Image
	err   error
}

// fadeMsg advances the fade-in animation
type fadeMsg struct {
	id  int
	seq int
	at  time.Time
}

// cycleMsg is the auto-advance timer firing
type cycleMsg struct {
	id  int
	tag int
}

// preloadedMsg reports the outcome of warming the loader
type preloadedMsg struct {
	id     int
	failed int
}
