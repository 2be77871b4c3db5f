package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerRate = 80 * time.Millisecond

// spinner redraws one status line on w until stopped. Once a wait passes a
// second the line also shows how long it has lasted.
type spinner struct {
	w      io.Writer
	label  string
	quit   chan struct{}
	exited chan struct{}
	once   sync.Once
}

// StartSpinner draws label with an animated frame on w and returns a func
// that clears the line. The returned func may be called more than once.
func StartSpinner(w io.Writer, label string) func() {
	s := &spinner{
		w:      w,
		label:  label,
		quit:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go s.loop(time.Now())
	return s.stop
}

func (s *spinner) loop(began time.Time) {
	defer close(s.exited)
	ticker := time.NewTicker(spinnerRate)
	defer ticker.Stop()
	for n := 0; ; n++ {
		select {
		case <-s.quit:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
			fmt.Fprint(s.w, "\r"+spinnerLine(n, s.label, time.Since(began)))
		}
	}
}

func (s *spinner) stop() {
	s.once.Do(func() { close(s.quit) })
	<-s.exited
}

func spinnerLine(n int, label string, waited time.Duration) string {
	line := "  " + StylePurple.Render(spinnerFrames[n%len(spinnerFrames)]) + " " + Dim(label)
	if waited >= time.Second {
		line += Dim(fmt.Sprintf(" (%ds)", int(waited/time.Second)))
	}
	return line
}
