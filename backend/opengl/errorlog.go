package opengl

import (
	"errors"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// platformError is GLFW_PLATFORM_ERROR. go-gl/glfw does not export it.
const platformError glfw.ErrorCode = 0x00010008

var errNoWindow = errors.New("no window returned")

// errorLog captures the standard logger's output while GLFW runs. Lines
// carrying a platform error are queued; every other line goes to the writer
// that was installed before.
type errorLog struct {
	mu        sync.Mutex
	next      io.Writer
	installed bool
	pending   []*glfw.Error
}

func (l *errorLog) install() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.installed {
		return
	}
	l.next = log.Writer()
	l.installed = true
	log.SetOutput(l)
}

func (l *errorLog) uninstall() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.installed {
		return
	}
	l.installed = false
	log.SetOutput(l.next)
}

// Write implements io.Writer. It never calls back into the session, since
// the standard logger holds its own lock while writing.
func (l *errorLog) Write(p []byte) (int, error) {
	prefix := platformError.String() + ": "
	var rest []string
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		i := strings.Index(line, prefix)
		if i < 0 {
			rest = append(rest, line)
			continue
		}
		l.mu.Lock()
		l.pending = append(l.pending, &glfw.Error{Code: platformError, Desc: line[i+len(prefix):]})
		l.mu.Unlock()
	}
	if len(rest) > 0 {
		l.mu.Lock()
		next := l.next
		l.mu.Unlock()
		if next != nil {
			if _, err := io.WriteString(next, strings.Join(rest, "\n")+"\n"); err != nil {
				return 0, err
			}
		}
	}
	return len(p), nil
}

// take returns the queued errors and clears the queue.
func (l *errorLog) take() []*glfw.Error {
	l.mu.Lock()
	defer l.mu.Unlock()
	queued := l.pending
	l.pending = nil
	return queued
}
