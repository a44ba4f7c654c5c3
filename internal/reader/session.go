package reader

import (
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/mkarlsen/blink/internal/text"
)

// Reading speed and navigation bounds.
const (
	DefaultWPM = 300
	MinWPM     = 100
	MaxWPM     = 1000
	WPMStep    = 50

	// SkipAmount is how many words a skip command jumps.
	SkipAmount = 5
)

// State is the playback state of a session.
type State int

const (
	Idle State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Frame is what a front-end draws for the current word: the three ORP
// segments and their display widths in terminal cells.
type Frame struct {
	Before string
	Focus  string
	After  string

	BeforeWidth int
	FocusWidth  int
}

// Session owns playback for one tab: cursor, speed, state machine and
// display timer.
//
// Every word-position change funnels through a single notification point
// with two fixed reactions, run synchronously in order: reset the timer
// to the new word's duration, then rebuild the display frame. The
// dispatch never re-enters itself.
type Session struct {
	cursor    *Cursor
	wpm       int
	state     State
	remaining time.Duration
	frame     Frame

	onWordChange []func()
	dispatching  bool
}

// NewSession builds an Idle session over words, with wpm clamped into
// [MinWPM, MaxWPM].
func NewSession(words []text.Word, wpm int) *Session {
	s := &Session{cursor: NewCursor(words), wpm: ClampWPM(wpm)}
	s.onWordChange = []func(){s.resetTimer, s.rebuildFrame}
	s.wordChanged()
	return s
}

func (s *Session) State() State               { return s.state }
func (s *Session) WPM() int                   { return s.wpm }
func (s *Session) Frame() Frame               { return s.frame }
func (s *Session) Remaining() time.Duration   { return s.remaining }
func (s *Session) Words() []text.Word         { return s.cursor.Words() }
func (s *Session) Current() text.Word         { return s.cursor.Current() }
func (s *Session) Position() int              { return s.cursor.Index() }
func (s *Session) Len() int                   { return s.cursor.Len() }
func (s *Session) AtEnd() bool                { return s.cursor.AtEnd() }

// Progress returns the 1-based position and the total word count.
func (s *Session) Progress() (current, total int) { return s.cursor.Progress() }

// Fraction returns reading progress in [0, 1].
func (s *Session) Fraction() float64 { return s.cursor.Fraction() }

// Play starts playback. From Paused it resumes the retained remaining
// time; from Idle the timer starts at the current word's full duration.
// A session with no words stays Idle.
func (s *Session) Play() {
	if s.cursor.Len() == 0 || s.state == Playing {
		return
	}
	if s.state == Idle {
		s.resetTimer()
	}
	s.state = Playing
}

// Pause suspends playback, keeping the remaining display time.
func (s *Session) Pause() {
	if s.state == Playing {
		s.state = Paused
	}
}

// TogglePlay pauses when playing, otherwise plays.
func (s *Session) TogglePlay() {
	if s.state == Playing {
		s.Pause()
	} else {
		s.Play()
	}
}

// Stop halts playback and clears the timer. The position is kept.
func (s *Session) Stop() {
	s.state = Idle
	s.remaining = 0
}

// Restart moves to the first word. The playback state never changes:
// restarting mid-play keeps playing from the top.
func (s *Session) Restart() {
	s.cursor.Restart()
	s.wordChanged()
}

// SkipForward jumps SkipAmount words ahead, saturating at the last word.
func (s *Session) SkipForward() {
	s.cursor.SkipForward(SkipAmount)
	s.wordChanged()
}

// SkipBackward jumps SkipAmount words back, saturating at the first word.
func (s *Session) SkipBackward() {
	s.cursor.SkipBackward(SkipAmount)
	s.wordChanged()
}

// Seek moves to word index i, clamped into range.
func (s *Session) Seek(i int) {
	s.cursor.Seek(i)
	s.wordChanged()
}

// PrevSentence jumps to the start of the previous sentence.
func (s *Session) PrevSentence() {
	s.cursor.PrevSentence()
	s.wordChanged()
}

// NextSentence jumps to the start of the next sentence.
func (s *Session) NextSentence() {
	s.cursor.NextSentence()
	s.wordChanged()
}

// Refresh re-fires the word-change cascade without moving the cursor,
// for a display that just switched to this session.
func (s *Session) Refresh() {
	s.wordChanged()
}

// SpeedUp raises the speed one step, up to MaxWPM. The word on display
// finishes at its old duration; the new speed applies from the next word.
func (s *Session) SpeedUp() { s.wpm = ClampWPM(s.wpm + WPMStep) }

// SpeedDown lowers the speed one step, down to MinWPM.
func (s *Session) SpeedDown() { s.wpm = ClampWPM(s.wpm - WPMStep) }

// SetWPM sets the speed directly, clamped into [MinWPM, MaxWPM]. Like
// the stepped changes it leaves any in-flight timer alone.
func (s *Session) SetWPM(wpm int) { s.wpm = ClampWPM(wpm) }

// Tick advances the timer by delta while playing. When the current
// word's time is up the cursor advances at most one word regardless of
// overshoot; finishing the sequence drops back to Idle. Tick reports
// whether the display changed.
func (s *Session) Tick(delta time.Duration) bool {
	if s.state != Playing {
		return false
	}
	s.remaining -= delta
	if s.remaining > 0 {
		return false
	}
	if !s.cursor.Advance() {
		s.state = Idle
		return true
	}
	s.wordChanged()
	return true
}

func (s *Session) wordChanged() {
	if s.dispatching {
		return
	}
	s.dispatching = true
	for _, h := range s.onWordChange {
		h()
	}
	s.dispatching = false
}

func (s *Session) resetTimer() {
	if s.cursor.Len() == 0 {
		s.remaining = 0
		return
	}
	s.remaining = text.DisplayDuration(s.cursor.Current(), s.wpm)
}

func (s *Session) rebuildFrame() {
	if s.cursor.Len() == 0 {
		s.frame = Frame{}
		return
	}
	before, focus, after := text.Split(s.cursor.Current().Text)
	s.frame = Frame{
		Before:      before,
		Focus:       focus,
		After:       after,
		BeforeWidth: runewidth.StringWidth(before),
		FocusWidth:  runewidth.StringWidth(focus),
	}
}

// ClampWPM keeps a reading speed inside the supported range.
func ClampWPM(wpm int) int {
	if wpm < MinWPM {
		return MinWPM
	}
	if wpm > MaxWPM {
		return MaxWPM
	}
	return wpm
}
