package glboot

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Session is one window with its graphics context. It owns the window system
// from Open until Close and must only be used from the thread that opened it.
type Session struct {
	sys     WindowSystem
	win     Window
	logger  *slog.Logger
	console io.Writer

	title  string
	hints  Hints
	width  int
	height int
	closed bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithConsole sets where resize notices are printed. The default is stdout.
func WithConsole(w io.Writer) SessionOption {
	return func(s *Session) { s.console = w }
}

// Open starts the window system, creates a window of the configured size with
// a context matching cfg's API version and profile, and makes it current.
//
// The backend error callback is registered before the window system starts so
// that init failures are logged too.
func Open(sys WindowSystem, cfg Config, logger *slog.Logger, opts ...SessionOption) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sys.SetErrorCallback(func(code int, description string) {
		logger.Error((&BackendError{Code: code, Description: description}).Error())
	})
	if err := sys.Init(); err != nil {
		logger.Error("could not start GLFW3", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrBackendInit, err)
	}
	logger.Info("Starting GLFW", "version", sys.Version())

	width, height := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		if w, h, ok := sys.PrimaryVideoMode(); ok {
			width, height = w, h
		} else {
			logger.Warn("primary monitor video mode unavailable, using configured size")
		}
	}

	s := &Session{
		sys:     sys,
		logger:  logger,
		console: os.Stdout,
		title:   cfg.Title,
		hints:   cfg.Hints(),
		width:   width,
		height:  height,
	}
	for _, opt := range opts {
		opt(s)
	}

	win, err := sys.CreateWindow(width, height, cfg.Title, s.hints)
	if err != nil || win == nil {
		logger.Error("could not open window with GLFW3", "err", err)
		sys.Terminate()
		if err == nil {
			err = errors.New("no window returned")
		}
		return nil, fmt.Errorf("%w: %w", ErrContextCreation, err)
	}
	s.win = win

	win.MakeContextCurrent()
	win.SetSizeCallback(s.resize)
	if cfg.VSync {
		sys.SwapInterval(1)
	} else {
		sys.SwapInterval(0)
	}

	logger.Info("window created",
		"width", width, "height", height,
		"api", fmt.Sprintf("%d.%d", s.hints.Major, s.hints.Minor),
		"profile", s.hints.Profile.String())
	return s, nil
}

func (s *Session) resize(width, height int) {
	s.width = width
	s.height = height
	msg := fmt.Sprintf("Width: %d Height: %d", width, height)
	if s.console != nil {
		fmt.Fprintln(s.console, msg)
	}
	s.logger.Debug(msg)
}

// Size returns the surface size last reported by the resize callback, or the
// creation size if no resize has happened.
func (s *Session) Size() (width, height int) {
	return s.width, s.height
}

// Title returns the base window title.
func (s *Session) Title() string {
	return s.title
}

// Hints returns the context hints the window was created with.
func (s *Session) Hints() Hints {
	return s.hints
}

// Window returns the session's window.
func (s *Session) Window() Window {
	return s.win
}

// System returns the window system the session runs on.
func (s *Session) System() WindowSystem {
	return s.sys
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed
}

// Close destroys the window and terminates the window system. Calls after
// the first return ErrClosed.
func (s *Session) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	if s.win != nil {
		s.win.Destroy()
		s.win = nil
	}
	s.sys.Terminate()
	s.logger.Info("session closed")
	return nil
}
