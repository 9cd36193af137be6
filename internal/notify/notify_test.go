package notify_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/Tiliavir/work-time-tracker/internal/notify"
)

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := notify.WriterSink{W: &buf}
	sink.Notify("Clocked in")
	sink.Notify("Clocked out")
	if got := buf.String(); got != "Clocked in\nClocked out\n" {
		t.Errorf("output = %q", got)
	}
}

func TestFlashDismisses(t *testing.T) {
	changes := make(chan string, 4)
	f := notify.NewFlash(20*time.Millisecond, func(m string) { changes <- m })

	f.Notify("hello")
	if got := <-changes; got != "hello" {
		t.Fatalf("first change = %q, want %q", got, "hello")
	}
	if f.Current() != "hello" {
		t.Fatalf("Current = %q, want %q", f.Current(), "hello")
	}

	select {
	case got := <-changes:
		if got != "" {
			t.Errorf("dismiss change = %q, want empty", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message was never dismissed")
	}
	if f.Current() != "" {
		t.Errorf("Current after dismiss = %q", f.Current())
	}
}

func TestFlashSupersedes(t *testing.T) {
	f := notify.NewFlash(100*time.Millisecond, nil)

	f.Notify("first")
	time.Sleep(60 * time.Millisecond)
	f.Notify("second")
	// The first message's timer would have fired by now had it not been
	// cancelled; the second one is still within its window.
	time.Sleep(60 * time.Millisecond)
	if got := f.Current(); got != "second" {
		t.Errorf("Current = %q, want %q", got, "second")
	}
	f.Stop()
}

func TestFlashStopKeepsMessage(t *testing.T) {
	f := notify.NewFlash(10*time.Millisecond, nil)
	f.Notify("sticky")
	f.Stop()
	time.Sleep(30 * time.Millisecond)
	if got := f.Current(); got != "sticky" {
		t.Errorf("Current = %q, want %q", got, "sticky")
	}
}

func TestDismissAfter(t *testing.T) {
	if notify.DismissAfter != 3*time.Second {
		t.Errorf("DismissAfter = %v, want 3s", notify.DismissAfter)
	}
}
