package glboot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/glboot"
)

func TestFrameCounterReportsAfterInterval(t *testing.T) {
	c := glboot.NewFrameCounter(0, 0.25)

	var now float64
	reports := 0
	var lastFPS float64
	for step := 0; step < 3; step++ {
		now += 0.1
		if fps, ok := c.Tick(now); ok {
			reports++
			lastFPS = fps
		}
	}

	assert.Equal(t, 1, reports)
	assert.InDelta(t, 3/0.3, lastFPS, 1e-9, "three frames over 0.3s")
	assert.Equal(t, 0, c.Frames(), "counter resets after a report")
}

func TestFrameCounterNoReportWithinInterval(t *testing.T) {
	c := glboot.NewFrameCounter(10, 0.25)

	_, ok := c.Tick(10.1)
	assert.False(t, ok)
	_, ok = c.Tick(10.25)
	assert.False(t, ok, "elapsed must exceed the interval")
	assert.Equal(t, 2, c.Frames())
}

func TestFrameCounterIntervalsRestartFromReport(t *testing.T) {
	c := glboot.NewFrameCounter(0, 0.25)

	fps, ok := c.Tick(0.5)
	assert.True(t, ok)
	assert.InDelta(t, 2.0, fps, 1e-9)

	_, ok = c.Tick(0.7)
	assert.False(t, ok)
	fps, ok = c.Tick(1.0)
	assert.True(t, ok)
	assert.InDelta(t, 4.0, fps, 1e-9, "two frames over 0.5s")
}

func TestFrameCounterDefaultInterval(t *testing.T) {
	c := glboot.NewFrameCounter(0, 0)
	_, ok := c.Tick(glboot.DefaultFPSInterval)
	assert.False(t, ok)
	_, ok = c.Tick(glboot.DefaultFPSInterval + 0.01)
	assert.True(t, ok)
}
