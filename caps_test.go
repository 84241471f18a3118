package glboot_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/glboot"
)

func TestReportCapabilities(t *testing.T) {
	l := newTestLog(t)
	gfx := newFakeGraphics()
	gfx.stereo = true
	var out bytes.Buffer

	glboot.ReportCapabilities(gfx, l.logger, &out)

	assert.Equal(t, "Renderer: Fake Renderer\nOpenGL version supported: 4.1 Fake\n", out.String())
	assert.Equal(t, strings.Join([]string{
		"Renderer: Fake Renderer",
		"OpenGL version supported: 4.1 Fake",
		"GL Context Params:",
		"GL_MAX_COMBINED_TEXTURE_IMAGE_UNITS 80",
		"GL_MAX_CUBE_MAP_TEXTURE_SIZE 16384",
		"GL_MAX_DRAW_BUFFERS 8",
		"GL_MAX_FRAGMENT_UNIFORM_COMPONENTS 4096",
		"GL_MAX_TEXTURE_IMAGE_UNITS 16",
		"GL_MAX_TEXTURE_SIZE 16384",
		"GL_MAX_VARYING_COMPONENTS 124",
		"GL_MAX_VERTEX_ATTRIBS 16",
		"GL_MAX_VERTEX_TEXTURE_IMAGE_UNITS 16",
		"GL_MAX_VERTEX_UNIFORM_COMPONENTS 4096",
		"GL_MAX_VIEWPORT_DIMS 16384 8192",
		"GL_STEREO 1",
		"-----------------------------",
	}, "\n")+"\n", l.contents(t))
}

func TestReportCapabilitiesSkipsFailedQueries(t *testing.T) {
	l := newTestLog(t)
	gfx := newFakeGraphics()
	gfx.limitErr[glboot.MaxDrawBuffers] = errors.New("gl error 0x0500")
	gfx.limitErr[glboot.Stereo] = errors.New("gl error 0x0500")

	glboot.ReportCapabilities(gfx, l.logger, nil)

	log := l.contents(t)
	assert.Contains(t, log, `WARNING: could not query GL_MAX_DRAW_BUFFERS err="gl error 0x0500"`)
	assert.Contains(t, log, "WARNING: could not query GL_STEREO")
	assert.NotContains(t, log, "GL_MAX_DRAW_BUFFERS 8")
	// Later limits are still reported.
	assert.Contains(t, log, "GL_MAX_TEXTURE_SIZE 16384")
	assert.Contains(t, log, "GL_MAX_VIEWPORT_DIMS 16384 8192")
	assert.True(t, strings.HasSuffix(log, "-----------------------------\n"))
}
