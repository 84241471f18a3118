package glboot

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

type capability struct {
	limit Limit
	name  string
	n     int // number of integer values; 0 for boolean limits
}

// capabilities is logged in this order.
var capabilities = []capability{
	{MaxCombinedTextureImageUnits, "GL_MAX_COMBINED_TEXTURE_IMAGE_UNITS", 1},
	{MaxCubeMapTextureSize, "GL_MAX_CUBE_MAP_TEXTURE_SIZE", 1},
	{MaxDrawBuffers, "GL_MAX_DRAW_BUFFERS", 1},
	{MaxFragmentUniformComponents, "GL_MAX_FRAGMENT_UNIFORM_COMPONENTS", 1},
	{MaxTextureImageUnits, "GL_MAX_TEXTURE_IMAGE_UNITS", 1},
	{MaxTextureSize, "GL_MAX_TEXTURE_SIZE", 1},
	{MaxVaryingComponents, "GL_MAX_VARYING_COMPONENTS", 1},
	{MaxVertexAttribs, "GL_MAX_VERTEX_ATTRIBS", 1},
	{MaxVertexTextureImageUnits, "GL_MAX_VERTEX_TEXTURE_IMAGE_UNITS", 1},
	{MaxVertexUniformComponents, "GL_MAX_VERTEX_UNIFORM_COMPONENTS", 1},
	{MaxViewportDims, "GL_MAX_VIEWPORT_DIMS", 2},
	{Stereo, "GL_STEREO", 0},
}

// ReportCapabilities writes the renderer and version strings to out and the
// log, followed by one "<name> <value...>" line per context limit. A limit
// that cannot be queried is logged and skipped.
func ReportCapabilities(gfx Graphics, logger *slog.Logger, out io.Writer) {
	renderer, version := gfx.Renderer(), gfx.Version()
	if out != nil {
		fmt.Fprintf(out, "Renderer: %s\n", renderer)
		fmt.Fprintf(out, "OpenGL version supported: %s\n", version)
	}
	logger.Info("Renderer: " + renderer)
	logger.Info("OpenGL version supported: " + version)

	logger.Info("GL Context Params:")
	for _, c := range capabilities {
		line, err := queryCapability(gfx, c)
		if err != nil {
			logger.Warn("could not query "+c.name, "err", err)
			continue
		}
		logger.Info(line)
	}
	logger.Info("-----------------------------")
}

func queryCapability(gfx Graphics, c capability) (string, error) {
	if c.n == 0 {
		v, err := gfx.Boolean(c.limit)
		if err != nil {
			return "", err
		}
		b := 0
		if v {
			b = 1
		}
		return c.name + " " + strconv.Itoa(b), nil
	}

	vals := make([]int32, c.n)
	if err := gfx.Integers(c.limit, vals); err != nil {
		return "", err
	}
	parts := make([]string, 0, len(vals)+1)
	parts = append(parts, c.name)
	for _, v := range vals {
		parts = append(parts, strconv.Itoa(int(v)))
	}
	return strings.Join(parts, " "), nil
}
