package carousel

import (
	"math"
	"time"
)

// track is the rendering surface of a carousel: a strip of item cells and a
// position along it in terminal cells. Moving it is an explicit two-step
// contract: jump sets a position with no transition, animate starts a
// transition from wherever the track is at that moment.
type track struct {
	pos    float64
	from   float64
	to     float64
	start  time.Time
	dur    time.Duration
	easing Easing
}

func (t *track) jump(pos float64) {
	t.pos = pos
	t.from = pos
	t.to = pos
}

func (t *track) animate(to float64, d time.Duration, now time.Time) {
	t.from = t.pos
	t.to = to
	t.start = now
	t.dur = d
}

// advance moves the track to where the transition should be at now and
// reports whether it has arrived
func (t *track) advance(now time.Time) bool {
	if t.dur <= 0 {
		t.pos = t.to
		return true
	}
	p := float64(now.Sub(t.start)) / float64(t.dur)
	if p >= 1 {
		t.pos = t.to
		return true
	}
	if p < 0 {
		p = 0
	}
	ease := t.easing
	if ease == nil {
		ease = Swing
	}
	t.pos = t.from + (t.to-t.from)*ease(p)
	return false
}

// cell returns the current position rounded to whole terminal cells
func (t *track) cell() int {
	return int(math.Round(t.pos))
}
