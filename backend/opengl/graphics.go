// Package opengl provides the GLFW window system and OpenGL 4.1 graphics
// backends for glboot.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/glboot"
)

// Graphics implements glboot.Graphics on the current OpenGL context.
// Init must be called after the window's context has been made current.
type Graphics struct{}

// NewGraphics returns an OpenGL graphics backend.
func NewGraphics() *Graphics {
	return &Graphics{}
}

// Init loads the OpenGL function pointers.
func (g *Graphics) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	return nil
}

// Renderer returns GL_RENDERER.
func (g *Graphics) Renderer() string {
	return gl.GoStr(gl.GetString(gl.RENDERER))
}

// Version returns GL_VERSION.
func (g *Graphics) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// GL_MAX_VARYING_COMPONENTS; aliased by GL_MAX_VARYING_FLOATS in older headers.
const maxVaryingComponents = 0x8B4B

var limitEnums = map[glboot.Limit]uint32{
	glboot.MaxCombinedTextureImageUnits: gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS,
	glboot.MaxCubeMapTextureSize:        gl.MAX_CUBE_MAP_TEXTURE_SIZE,
	glboot.MaxDrawBuffers:               gl.MAX_DRAW_BUFFERS,
	glboot.MaxFragmentUniformComponents: gl.MAX_FRAGMENT_UNIFORM_COMPONENTS,
	glboot.MaxTextureImageUnits:         gl.MAX_TEXTURE_IMAGE_UNITS,
	glboot.MaxTextureSize:               gl.MAX_TEXTURE_SIZE,
	glboot.MaxVaryingComponents:         maxVaryingComponents,
	glboot.MaxVertexAttribs:             gl.MAX_VERTEX_ATTRIBS,
	glboot.MaxVertexTextureImageUnits:   gl.MAX_VERTEX_TEXTURE_IMAGE_UNITS,
	glboot.MaxVertexUniformComponents:   gl.MAX_VERTEX_UNIFORM_COMPONENTS,
	glboot.MaxViewportDims:              gl.MAX_VIEWPORT_DIMS,
	glboot.Stereo:                       gl.STEREO,
}

// Integers queries an integer limit. MaxViewportDims needs two slots.
func (g *Graphics) Integers(l glboot.Limit, dst []int32) error {
	pname, ok := limitEnums[l]
	if !ok {
		return fmt.Errorf("unknown limit %d", l)
	}
	need := 1
	if l == glboot.MaxViewportDims {
		need = 2
	}
	if len(dst) < need {
		return fmt.Errorf("limit %d needs %d values, got room for %d", l, need, len(dst))
	}
	clearErrors()
	gl.GetIntegerv(pname, &dst[0])
	return lastError()
}

// Boolean queries a boolean limit.
func (g *Graphics) Boolean(l glboot.Limit) (bool, error) {
	pname, ok := limitEnums[l]
	if !ok {
		return false, fmt.Errorf("unknown limit %d", l)
	}
	var v bool
	clearErrors()
	gl.GetBooleanv(pname, &v)
	return v, lastError()
}

// EnableDepthTest turns on depth testing with the given comparison.
func (g *Graphics) EnableDepthTest(fn glboot.DepthFunc) {
	gl.Enable(gl.DEPTH_TEST)
	switch fn {
	case glboot.DepthLessEqual:
		gl.DepthFunc(gl.LEQUAL)
	case glboot.DepthAlways:
		gl.DepthFunc(gl.ALWAYS)
	default:
		gl.DepthFunc(gl.LESS)
	}
}

// CreateBuffer uploads data into a new STATIC_DRAW array buffer.
func (g *Graphics) CreateBuffer(data []float32) (uint32, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty buffer")
	}
	var vbo uint32
	clearErrors()
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	if err := lastError(); err != nil {
		gl.DeleteBuffers(1, &vbo)
		return 0, err
	}
	return vbo, nil
}

// DeleteBuffer releases a buffer. Zero is ignored.
func (g *Graphics) DeleteBuffer(id uint32) {
	if id != 0 {
		gl.DeleteBuffers(1, &id)
	}
}

// CreateVertexArray describes buffer as size floats per vertex, tightly
// packed, at attribute index.
func (g *Graphics) CreateVertexArray(buffer, index uint32, size int32) (uint32, error) {
	var vao uint32
	clearErrors()
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.EnableVertexAttribArray(index)
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, 0, 0)
	gl.BindVertexArray(0)
	if err := lastError(); err != nil {
		gl.DeleteVertexArrays(1, &vao)
		return 0, err
	}
	return vao, nil
}

// DeleteVertexArray releases a vertex array. Zero is ignored.
func (g *Graphics) DeleteVertexArray(id uint32) {
	if id != 0 {
		gl.DeleteVertexArrays(1, &id)
	}
}

// BindVertexArray makes id the current vertex array.
func (g *Graphics) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

// CreateShader creates a shader object for stage and sets its source.
func (g *Graphics) CreateShader(stage glboot.Stage, source string) uint32 {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == glboot.FragmentStage {
		kind = gl.FRAGMENT_SHADER
	}
	id := gl.CreateShader(kind)
	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}
	csource, free := gl.Strs(source)
	gl.ShaderSource(id, 1, csource, nil)
	free()
	return id
}

// CompileShader compiles a shader. Check the result with ShaderCompiled.
func (g *Graphics) CompileShader(id uint32) {
	gl.CompileShader(id)
}

// ShaderCompiled reports GL_COMPILE_STATUS.
func (g *Graphics) ShaderCompiled(id uint32) bool {
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

// ShaderInfoLog returns at most maxLength bytes of the shader's info log.
func (g *Graphics) ShaderInfoLog(id uint32, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	buf := make([]byte, maxLength)
	var n int32
	gl.GetShaderInfoLog(id, int32(maxLength), &n, &buf[0])
	return string(buf[:n])
}

// DeleteShader flags a shader for deletion.
func (g *Graphics) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

// CreateProgram creates an empty program object.
func (g *Graphics) CreateProgram() uint32 {
	return gl.CreateProgram()
}

// AttachShader attaches a compiled shader to program.
func (g *Graphics) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

// LinkProgram links program. Check the result with ProgramLinked.
func (g *Graphics) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

// ProgramLinked reports GL_LINK_STATUS.
func (g *Graphics) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

// ProgramInfoLog returns at most maxLength bytes of the program's info log.
func (g *Graphics) ProgramInfoLog(program uint32, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	buf := make([]byte, maxLength)
	var n int32
	gl.GetProgramInfoLog(program, int32(maxLength), &n, &buf[0])
	return string(buf[:n])
}

// DeleteProgram releases a program. Zero is ignored.
func (g *Graphics) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

// UseProgram binds program id for drawing.
func (g *Graphics) UseProgram(id uint32) {
	gl.UseProgram(id)
}

// UniformLocation returns the location of name, or -1.
func (g *Graphics) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Uniform4f writes to the bound program. OpenGL ignores location -1.
func (g *Graphics) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

// ClearColor sets the colour Clear fills with.
func (g *Graphics) ClearColor(r, gr, b, a float32) {
	gl.ClearColor(r, gr, b, a)
}

// Clear clears the colour and depth buffers.
func (g *Graphics) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Viewport sets the viewport rectangle.
func (g *Graphics) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

// DrawTriangles draws count vertices of the bound vertex array as triangles.
func (g *Graphics) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func clearErrors() {
	for i := 0; i < 16 && gl.GetError() != gl.NO_ERROR; i++ {
	}
}

func lastError() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%04x", code)
	}
	return nil
}
