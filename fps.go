package glboot

// DefaultFPSInterval is the time between frame rate reports, in seconds.
const DefaultFPSInterval = 0.25

// FrameCounter measures frames per second over fixed reporting intervals.
// The result is for display only.
type FrameCounter struct {
	interval float64
	last     float64
	frames   int
}

// NewFrameCounter returns a counter whose first interval starts at start.
func NewFrameCounter(start, interval float64) *FrameCounter {
	if interval <= 0 {
		interval = DefaultFPSInterval
	}
	return &FrameCounter{interval: interval, last: start}
}

// Tick records one frame at time now. Once more than the interval has
// elapsed since the last report it returns the frame rate over that span,
// reported as true, and starts a new interval.
func (c *FrameCounter) Tick(now float64) (fps float64, reported bool) {
	c.frames++
	elapsed := now - c.last
	if elapsed <= c.interval {
		return 0, false
	}
	fps = float64(c.frames) / elapsed
	c.frames = 0
	c.last = now
	return fps, true
}

// Frames returns the frames counted in the current interval.
func (c *FrameCounter) Frames() int {
	return c.frames
}
