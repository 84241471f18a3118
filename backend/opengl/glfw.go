package opengl

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/glboot"
)

// GLFW implements glboot.WindowSystem with GLFW 3.3.
//
// go-gl/glfw returns some errors and panics on others, but platform errors
// are only printed through the standard log package. From Init until
// Terminate, GLFW captures the standard logger's output and queues those
// errors. Each adapter call hands queued errors to the registered callback
// on the calling thread.
type GLFW struct {
	onError func(code int, description string)
	errs    *errorLog
}

// NewGLFW returns a GLFW window system.
func NewGLFW() *GLFW {
	return &GLFW{errs: &errorLog{}}
}

// SetErrorCallback registers fn for every GLFW error the adapter sees.
func (g *GLFW) SetErrorCallback(fn func(code int, description string)) {
	g.onError = fn
}

// Init initialises GLFW. A platform error raised while initialising is a
// failure even though go-gl/glfw does not return it.
func (g *GLFW) Init() error {
	g.errs.install()
	err := glfw.Init()
	if err != nil {
		g.report(err)
	}
	if perr := g.drain(); perr != nil && err == nil {
		err = perr
	}
	if err != nil {
		g.errs.uninstall()
		return err
	}
	return nil
}

// Terminate shuts GLFW down and restores the standard logger's output.
func (g *GLFW) Terminate() {
	glfw.Terminate()
	g.drain()
	g.errs.uninstall()
}

// Version returns the compile-time GLFW version string.
func (g *GLFW) Version() string {
	return glfw.GetVersionString()
}

// PrimaryVideoMode returns the current video mode size of the primary
// monitor. ok is false when there is no monitor.
func (g *GLFW) PrimaryVideoMode() (width, height int, ok bool) {
	defer g.drain()
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return 0, 0, false
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return 0, 0, false
	}
	return mode.Width, mode.Height, true
}

// CreateWindow sets the context hints and creates a windowed-mode window.
func (g *GLFW) CreateWindow(width, height int, title string, hints glboot.Hints) (glboot.Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, hints.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, hints.Minor)
	if hints.ForwardCompatible {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	switch hints.Profile {
	case glboot.ProfileCore:
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	case glboot.ProfileCompat:
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	default:
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLAnyProfile)
	}
	if hints.Samples > 0 {
		glfw.WindowHint(glfw.Samples, hints.Samples)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		g.report(err)
	}
	perr := g.drain()
	return g.window(win, errors.Join(err, perr))
}

// window wraps a created window, turning a missing window into an error.
func (g *GLFW) window(win *glfw.Window, err error) (glboot.Window, error) {
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	if win == nil {
		return nil, fmt.Errorf("create window: %w", errNoWindow)
	}
	return &window{sys: g, win: win}, nil
}

// PollEvents processes pending events. Errors raised while polling are
// forwarded to the error callback.
func (g *GLFW) PollEvents() {
	defer g.drain()
	defer g.recoverError()
	glfw.PollEvents()
}

// SwapInterval sets the number of screen updates to wait before a swap.
func (g *GLFW) SwapInterval(interval int) {
	glfw.SwapInterval(interval)
	g.drain()
}

// Time returns seconds since GLFW was initialised.
func (g *GLFW) Time() float64 {
	return glfw.GetTime()
}

func (g *GLFW) report(err error) {
	if g.onError == nil || err == nil {
		return
	}
	var gerr *glfw.Error
	if errors.As(err, &gerr) {
		g.onError(int(gerr.Code), gerr.Desc)
		return
	}
	g.onError(-1, err.Error())
}

// drain reports the queued platform errors and returns them joined.
func (g *GLFW) drain() error {
	queued := g.errs.take()
	for _, err := range queued {
		g.report(err)
	}
	if len(queued) == 0 {
		return nil
	}
	errs := make([]error, len(queued))
	for i, err := range queued {
		errs[i] = err
	}
	return errors.Join(errs...)
}

func (g *GLFW) recoverError() {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		panic(r)
	}
	var gerr *glfw.Error
	if !errors.As(err, &gerr) {
		panic(r)
	}
	g.report(err)
}

// window adapts *glfw.Window to glboot.Window.
type window struct {
	sys *GLFW
	win *glfw.Window
}

// MakeContextCurrent makes the window's context current on this thread.
func (w *window) MakeContextCurrent() {
	w.win.MakeContextCurrent()
	w.sys.drain()
}

// SetSizeCallback calls fn with the new window size on every resize.
func (w *window) SetSizeCallback(fn func(width, height int)) {
	w.win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		fn(width, height)
	})
}

// Key returns the last reported state of k. Unmapped keys read as released.
func (w *window) Key(k glboot.Key) glboot.Action {
	key := glfwKey(k)
	if key == glfw.KeyUnknown {
		return glboot.Release
	}
	if w.win.GetKey(key) == glfw.Press {
		return glboot.Press
	}
	return glboot.Release
}

// ShouldClose reports the window's close flag.
func (w *window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// SetShouldClose sets the window's close flag.
func (w *window) SetShouldClose(v bool) {
	w.win.SetShouldClose(v)
}

// SetTitle sets the window title.
func (w *window) SetTitle(title string) {
	w.win.SetTitle(title)
	w.sys.drain()
}

// SwapBuffers presents the back buffer.
func (w *window) SwapBuffers() {
	w.win.SwapBuffers()
	w.sys.drain()
}

// Destroy destroys the window and its context.
func (w *window) Destroy() {
	w.win.Destroy()
	w.sys.drain()
}

// glfwKey maps session keys to GLFW keys.
func glfwKey(k glboot.Key) glfw.Key {
	switch k {
	case glboot.KeyEscape:
		return glfw.KeyEscape
	case glboot.KeyEnter:
		return glfw.KeyEnter
	case glboot.KeySpace:
		return glfw.KeySpace
	case glboot.KeyQ:
		return glfw.KeyQ
	case glboot.KeyR:
		return glfw.KeyR
	case glboot.KeyF1:
		return glfw.KeyF1
	case glboot.KeyF5:
		return glfw.KeyF5
	case glboot.KeyF10:
		return glfw.KeyF10
	case glboot.KeyF11:
		return glfw.KeyF11
	case glboot.KeyF12:
		return glfw.KeyF12
	default:
		return glfw.KeyUnknown
	}
}
