package carousel

import (
	"errors"
	"fmt"
)

// ErrNoContent is returned when a carousel is created without items
var ErrNoContent = errors.New("no content supplied")

// ErrInvalidWindow is returned for visible/scroll values the item count
// cannot satisfy
var ErrInvalidWindow = errors.New("invalid window")

// Window is the cursor arithmetic of a carousel, independent of rendering.
//
// Positions are indexes into the padded track. In circular mode the track is
// the item list with visible-1 clones of the tail in front and scroll clones
// of the head at the back, so a window starting anywhere on the track is
// always fully populated.
type Window struct {
	length   int // original item count
	visible  int
	scroll   int
	circular bool
	lead     int // clones in front of the first original item
	total    int // padded track length
	cursor   int
}

// Move is the outcome of planning a navigation
type Move struct {
	From   int  // track position before the move
	Jump   int  // position to snap to without animation, when Jumped
	Jumped bool // the target wrapped around an end
	To     int  // track position to animate to
}

// NewWindow validates the window parameters and positions the cursor at
// start (a logical item index)
func NewWindow(length, visible, scroll int, circular bool, start int) (*Window, error) {
	if length == 0 {
		return nil, ErrNoContent
	}
	if visible < 1 || visible > length {
		return nil, fmt.Errorf("%w: visible %d with %d items", ErrInvalidWindow, visible, length)
	}
	if scroll < 1 || scroll > length {
		return nil, fmt.Errorf("%w: scroll %d with %d items", ErrInvalidWindow, scroll, length)
	}

	w := &Window{
		length:   length,
		visible:  visible,
		scroll:   scroll,
		circular: circular,
		total:    length,
	}
	if circular {
		w.lead = visible - 1
		w.total = length + visible - 1 + scroll
	}

	last := w.total - visible
	if circular {
		start %= length
		if start < 0 {
			start += length
		}
		w.cursor = start + w.lead
		// late starts sit one lap back so the window fits on the track
		if w.cursor > last {
			w.cursor -= length
		}
	} else {
		w.cursor = max(0, min(start, last))
	}
	return w, nil
}

// Len returns the number of original items
func (w *Window) Len() int { return w.length }

// Visible returns the window size
func (w *Window) Visible() int { return w.visible }

// Scroll returns the navigation step
func (w *Window) Scroll() int { return w.scroll }

// Circular reports whether navigation wraps around
func (w *Window) Circular() bool { return w.circular }

// TrackLen returns the padded track length
func (w *Window) TrackLen() int { return w.total }

// Position returns the cursor as a track position
func (w *Window) Position() int { return w.cursor }

// Cursor returns the logical index of the leftmost visible item
func (w *Window) Cursor() int { return w.ItemAt(w.cursor) }

// LastStart returns the highest logical start index
func (w *Window) LastStart() int {
	if w.circular {
		return w.length - 1
	}
	return w.length - w.visible
}

// ItemAt maps a track position to the logical item it shows
func (w *Window) ItemAt(pos int) int {
	i := (pos - w.lead) % w.length
	if i < 0 {
		i += w.length
	}
	return i
}

// Track returns the logical item index for every track position
func (w *Window) Track() []int {
	out := make([]int, w.total)
	for p := range out {
		out[p] = w.ItemAt(p)
	}
	return out
}

// VisibleItems returns the logical indexes currently in view, leftmost first
func (w *Window) VisibleItems() []int {
	out := make([]int, w.visible)
	for i := range out {
		out[i] = w.ItemAt(w.cursor + i)
	}
	return out
}

// PositionOf converts a logical item index to a track position
func (w *Window) PositionOf(item int) int {
	return item + w.lead
}

// Plan resolves a navigation to track position target. Circular targets
// before the start wrap forward by one lap and targets past the last full
// window wrap back by one lap; the cursor first jumps by the same lap so
// the visible content does not change at the jump. Non-circular targets
// outside [0, length-visible] are rejected, as are circular targets that
// are still out of range after one lap.
func (w *Window) Plan(target int) (Move, bool) {
	last := w.total - w.visible
	mv := Move{From: w.cursor, To: target}

	if !w.circular {
		if target < 0 || target > last {
			return Move{}, false
		}
		return mv, true
	}

	switch {
	case target < 0:
		mv.Jump = w.cursor + w.length
		mv.Jumped = true
		mv.To = target + w.length
	case target > last:
		mv.Jump = w.cursor - w.length
		mv.Jumped = true
		mv.To = target - w.length
	}
	if mv.To < 0 || mv.To > last {
		return Move{}, false
	}
	if mv.Jumped && (mv.Jump < 0 || mv.Jump > last) {
		return Move{}, false
	}
	return mv, true
}

// Apply commits a planned move
func (w *Window) Apply(mv Move) {
	w.cursor = mv.To
}

// AtStart reports whether a previous step would leave the range
// (non-circular affordance state)
func (w *Window) AtStart() bool {
	return !w.circular && w.cursor-w.scroll < 0
}

// AtEnd reports whether a next step would leave the range
func (w *Window) AtEnd() bool {
	return !w.circular && w.cursor+w.scroll > w.total-w.visible
}
