// Package notify delivers short, self-dismissing user messages.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// DismissAfter is how long a message stays visible.
const DismissAfter = 3 * time.Second

// Sink accepts user-visible messages.
type Sink interface {
	Notify(message string)
}

// WriterSink prints each message as a line. Terminal output does not
// disappear, so there is nothing to dismiss.
type WriterSink struct {
	W io.Writer
}

// Notify writes message followed by a newline.
func (s WriterSink) Notify(message string) {
	fmt.Fprintln(s.W, message)
}

// Flash holds at most one message and clears it after a fixed delay.
// A newer message cancels the pending dismissal of the older one.
type Flash struct {
	mu       sync.Mutex
	delay    time.Duration
	current  string
	seq      uint64
	timer    *time.Timer
	onChange func(message string)
}

// NewFlash returns a Flash that clears messages after delay. onChange, if
// non-nil, is called with the new message (or "" on dismissal). It may run
// on the timer's goroutine.
func NewFlash(delay time.Duration, onChange func(message string)) *Flash {
	return &Flash{delay: delay, onChange: onChange}
}

// Notify shows message, replacing any message still on screen.
func (f *Flash) Notify(message string) {
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.seq++
	seq := f.seq
	f.current = message
	f.timer = time.AfterFunc(f.delay, func() { f.dismiss(seq) })
	f.mu.Unlock()

	f.changed(message)
}

// dismiss clears the message shown as seq, unless it was superseded.
func (f *Flash) dismiss(seq uint64) {
	f.mu.Lock()
	if seq != f.seq {
		f.mu.Unlock()
		return
	}
	f.current = ""
	f.timer = nil
	f.mu.Unlock()

	f.changed("")
}

func (f *Flash) changed(message string) {
	if f.onChange != nil {
		f.onChange(message)
	}
}

// Current returns the message on screen, or "".
func (f *Flash) Current() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Stop cancels any pending dismissal without clearing the message.
func (f *Flash) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
