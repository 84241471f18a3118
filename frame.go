package glboot

import (
	"fmt"
	"log/slog"
)

// State is the frame driver's lifecycle state.
type State int

const (
	Running State = iota
	Closing
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Closing:
		return "closing"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Reloader supplies replacement programs between frames. Poll returns a nil
// program when there is nothing new.
type Reloader interface {
	Poll() (*Program, error)
}

// DefaultClearColor is the grey the framebuffer is cleared to.
var DefaultClearColor = [4]float32{0.5, 0.5, 0.5, 1.0}

// FrameDriver runs the per-frame loop of a session.
type FrameDriver struct {
	session  *Session
	gfx      Graphics
	res      *Resources
	logger   *slog.Logger
	counter  *FrameCounter
	interval float64
	exitKey  Key
	clear    [4]float32
	reloader Reloader
	teardown *Teardown

	state  State
	frames uint64
}

// DriverOption configures a FrameDriver.
type DriverOption func(*FrameDriver)

// WithExitKey sets the key that closes the window.
func WithExitKey(k Key) DriverOption {
	return func(d *FrameDriver) { d.exitKey = k }
}

// WithClearColor sets the framebuffer clear colour.
func WithClearColor(c [4]float32) DriverOption {
	return func(d *FrameDriver) { d.clear = c }
}

// WithFPSInterval sets the frame rate reporting interval in seconds.
func WithFPSInterval(seconds float64) DriverOption {
	return func(d *FrameDriver) { d.interval = seconds }
}

// WithReloader polls r for a new program before each frame.
func WithReloader(r Reloader) DriverOption {
	return func(d *FrameDriver) { d.reloader = r }
}

// WithTeardown makes Close release t instead of the driver's own resources
// and session. t must own both.
func WithTeardown(t *Teardown) DriverOption {
	return func(d *FrameDriver) { d.teardown = t }
}

// WithLogger sets the driver's logger.
func WithLogger(l *slog.Logger) DriverOption {
	return func(d *FrameDriver) { d.logger = l }
}

// NewFrameDriver returns a driver in the Running state. res may hold no
// usable program, in which case frames are cleared but nothing is drawn.
func NewFrameDriver(s *Session, gfx Graphics, res *Resources, opts ...DriverOption) *FrameDriver {
	d := &FrameDriver{
		session:  s,
		gfx:      gfx,
		res:      res,
		logger:   slog.Default(),
		interval: DefaultFPSInterval,
		exitKey:  KeyEscape,
		clear:    DefaultClearColor,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.counter = NewFrameCounter(s.System().Time(), d.interval)
	d.gfx.EnableDepthTest(DepthLess)
	d.logger.Info("frame loop started", "exit_key", d.exitKey.String())
	return d
}

// State returns the current lifecycle state.
func (d *FrameDriver) State() State {
	return d.state
}

// Frames returns the number of frames presented.
func (d *FrameDriver) Frames() uint64 {
	return d.frames
}

// Frame runs one iteration of the loop and returns the resulting state. It
// does nothing unless the driver is Running.
func (d *FrameDriver) Frame() State {
	if d.state != Running {
		return d.state
	}
	sys, win := d.session.System(), d.session.Window()

	d.reload()

	d.gfx.ClearColor(d.clear[0], d.clear[1], d.clear[2], d.clear[3])
	d.gfx.Clear()
	w, h := d.session.Size()
	d.gfx.Viewport(0, 0, int32(w), int32(h))

	if d.res != nil && d.res.Program.Usable() {
		d.gfx.UseProgram(d.res.Program.ID())
		d.gfx.BindVertexArray(d.res.VertexArray)
		d.gfx.DrawTriangles(0, d.res.VertexCount)
	}

	if fps, ok := d.counter.Tick(sys.Time()); ok {
		win.SetTitle(fmt.Sprintf("%s @ fps: %.2f", d.session.Title(), fps))
	}

	sys.PollEvents()
	if win.Key(d.exitKey) == Press {
		win.SetShouldClose(true)
	}
	if win.ShouldClose() {
		d.state = Closing
	}

	win.SwapBuffers()
	d.frames++
	return d.state
}

// Run loops until the window is closed or the exit key is pressed, then
// tears everything down.
func (d *FrameDriver) Run() {
	for d.Frame() == Running {
	}
	d.Close()
}

// Close releases the GPU resources and the session exactly once and leaves
// the driver Terminated.
func (d *FrameDriver) Close() {
	if d.state == Terminated {
		return
	}
	d.state = Closing
	d.logger.Info("frame loop stopped", "frames", d.frames)
	if d.teardown != nil {
		d.teardown.Release()
	} else {
		d.res.Release()
		if !d.session.Closed() {
			if err := d.session.Close(); err != nil {
				d.logger.Error("close session", "err", err)
			}
		}
	}
	d.state = Terminated
}

func (d *FrameDriver) reload() {
	if d.reloader == nil || d.res == nil {
		return
	}
	prog, err := d.reloader.Poll()
	if err != nil {
		d.logger.Warn("shader reload failed, keeping current program", "err", err)
		return
	}
	if prog != nil {
		d.res.ReplaceProgram(prog)
		d.logger.Info("shader program reloaded", "program", prog.ID())
	}
}
