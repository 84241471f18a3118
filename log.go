package glboot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// DefaultLogFile is the diagnostic log written next to the working directory.
const DefaultLogFile = "gl.log"

// DiagnosticLog is an append-only text log implementing slog.Handler.
//
// The file is opened, appended to and closed for every record, so nothing is
// held open across the session. Error records are also written to the error
// stream. Restart truncates the file and writes a session header.
type DiagnosticLog struct {
	path   string
	errOut io.Writer
	term   *termenv.Output
	now    func() time.Time
	level  slog.Leveler

	attrs  string // preformatted " k=v" pairs from WithAttrs
	prefix string // group prefix, "a.b."

	mu *sync.Mutex
}

// LogOption configures a DiagnosticLog.
type LogOption func(*DiagnosticLog)

// WithClock replaces the wall clock used for the session header.
func WithClock(now func() time.Time) LogOption {
	return func(l *DiagnosticLog) { l.now = now }
}

// WithLevel sets the minimum level written to the file.
func WithLevel(level slog.Leveler) LogOption {
	return func(l *DiagnosticLog) { l.level = level }
}

// NewDiagnosticLog returns a log writing to path. Error records and write
// failures are reported on errOut.
func NewDiagnosticLog(path string, errOut io.Writer, opts ...LogOption) *DiagnosticLog {
	if path == "" {
		path = DefaultLogFile
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	l := &DiagnosticLog{
		path:   path,
		errOut: errOut,
		term:   termenv.NewOutput(errOut),
		now:    time.Now,
		level:  slog.LevelInfo,
		mu:     &sync.Mutex{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the log file path.
func (l *DiagnosticLog) Path() string {
	return l.path
}

// Restart truncates the log and writes a header stamped with the local time.
func (l *DiagnosticLog) Restart() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Create(l.path)
	if err != nil {
		l.reportFailure("writing")
		return fmt.Errorf("%w: %w", ErrLogWrite, err)
	}
	defer f.Close()

	header := fmt.Sprintf("[%s log. local time %s]\n", filepath.Base(l.path), l.now().Format(time.ANSIC))
	if _, err := io.WriteString(f, header); err != nil {
		return fmt.Errorf("%w: %w", ErrLogWrite, err)
	}
	return nil
}

// Enabled implements slog.Handler.
func (l *DiagnosticLog) Enabled(_ context.Context, level slog.Level) bool {
	return level >= l.level.Level()
}

// Handle implements slog.Handler.
func (l *DiagnosticLog) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	switch {
	case r.Level >= slog.LevelError:
		b.WriteString("ERROR: ")
	case r.Level >= slog.LevelWarn:
		b.WriteString("WARNING: ")
	}
	b.WriteString(r.Message)
	b.WriteString(l.attrs)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, l.prefix, a)
		return true
	})
	line := b.String()

	l.mu.Lock()
	defer l.mu.Unlock()

	if r.Level >= slog.LevelError {
		styled := l.term.String(line).Foreground(l.term.Color("1"))
		fmt.Fprintln(l.errOut, styled.String())
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.reportFailure("appending")
		return fmt.Errorf("%w: %w", ErrLogWrite, err)
	}
	defer f.Close()
	if _, err := io.WriteString(f, line+"\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrLogWrite, err)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (l *DiagnosticLog) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return l
	}
	c := *l
	var b strings.Builder
	b.WriteString(l.attrs)
	for _, a := range attrs {
		writeAttr(&b, l.prefix, a)
	}
	c.attrs = b.String()
	return &c
}

// WithGroup implements slog.Handler.
func (l *DiagnosticLog) WithGroup(name string) slog.Handler {
	if name == "" {
		return l
	}
	c := *l
	c.prefix = l.prefix + name + "."
	return &c
}

func (l *DiagnosticLog) reportFailure(mode string) {
	msg := fmt.Sprintf("ERROR: could not open log file %s for %s", l.path, mode)
	fmt.Fprintln(l.errOut, l.term.String(msg).Foreground(l.term.Color("1")).String())
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(b, p, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	v := a.Value.String()
	if strings.ContainsAny(v, " \t\n\"=") {
		v = strconv.Quote(v)
	}
	b.WriteString(v)
}
