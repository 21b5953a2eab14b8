package tui

import (
	"fmt"
	"time"

	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/sim"
)

const bannerTime = 2 * time.Second

// eventFeed turns simulation events into the status-line banner.
// A banner posted with a zero duration stays until replaced or reset.
type eventFeed struct {
	text   string
	tone   core.Color
	left   time.Duration
	sticky bool
}

// Emit implements sim.Sink.
func (f *eventFeed) Emit(e sim.Event) {
	switch ev := e.(type) {
	case sim.LoopResetEvent:
		switch ev.Reason {
		case sim.EndExpired:
			f.post(fmt.Sprintf("Time's up. Clone %d joins the crew", ev.Clones), core.ColorHUD, bannerTime)
		case sim.EndManualCut:
			f.post(fmt.Sprintf("Loop cut. Clone %d joins the crew", ev.Clones), core.ColorHUD, bannerTime)
		case sim.EndDetected:
			f.post("Back to the start", core.ColorHUD, bannerTime)
		case sim.EndReload:
			f.post("Level restarted, clones cleared", core.ColorHUD, bannerTime)
		}
	case sim.LoopFailedEvent:
		f.post("DETECTED", core.ColorWarning, 0)
	case sim.DetectionEvent:
		if ev.Seen {
			f.post("You've been spotted!", core.ColorWarning, bannerTime)
		}
	case sim.DoorOpenedEvent:
		f.post(fmt.Sprintf("Door %d opened", ev.Door+1), core.ColorSuccess, bannerTime)
	case sim.LevelWonEvent:
		s := ev.Summary
		if s.Final {
			f.post(fmt.Sprintf("Heist complete in %s, %d loops", formatElapsed(s.Totals.Elapsed), s.Totals.Loops), core.ColorSuccess, 0)
		} else {
			f.post(fmt.Sprintf("%s cleared in %d loops. Press n for the next level", s.LevelName, s.Loops), core.ColorSuccess, 0)
		}
	}
}

func (f *eventFeed) post(text string, tone core.Color, d time.Duration) {
	f.text = text
	f.tone = tone
	f.left = d
	f.sticky = d <= 0
}

// age counts down the current banner.
func (f *eventFeed) age(elapsed time.Duration) {
	if f.sticky || f.text == "" {
		return
	}
	f.left -= elapsed
	if f.left <= 0 {
		f.text = ""
	}
}

func (f *eventFeed) current() (string, core.Color) {
	return f.text, f.tone
}

func (f *eventFeed) reset() {
	*f = eventFeed{}
}
