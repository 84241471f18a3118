package glboot_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-theft-auto/glboot"
)

// fakeSystem is a window system that records calls and never touches a display.
type fakeSystem struct {
	initErr   error
	createErr error
	video     [2]int

	onError    func(code int, description string)
	win        *fakeWindow
	created    int
	hints      glboot.Hints
	terminated int
	polls      int
	interval   int
	clock      func() float64

	// onPoll runs inside PollEvents, where real callbacks fire.
	onPoll func()
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{win: newFakeWindow(), clock: func() float64 { return 0 }}
}

func (s *fakeSystem) Init() error {
	if s.initErr != nil && s.onError != nil {
		s.onError(65537, s.initErr.Error())
	}
	return s.initErr
}

func (s *fakeSystem) Terminate()      { s.terminated++ }
func (s *fakeSystem) Version() string { return "3.3.8 Fake" }

func (s *fakeSystem) SetErrorCallback(fn func(code int, description string)) {
	s.onError = fn
}

func (s *fakeSystem) PrimaryVideoMode() (int, int, bool) {
	return s.video[0], s.video[1], s.video[0] > 0
}

func (s *fakeSystem) CreateWindow(width, height int, title string, hints glboot.Hints) (glboot.Window, error) {
	s.created++
	s.hints = hints
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.win.width, s.win.height, s.win.title = width, height, title
	return s.win, nil
}

func (s *fakeSystem) PollEvents() {
	s.polls++
	if s.onPoll != nil {
		s.onPoll()
	}
}

func (s *fakeSystem) SwapInterval(interval int) { s.interval = interval }
func (s *fakeSystem) Time() float64             { return s.clock() }

type fakeWindow struct {
	width, height int
	title         string
	titles        []string
	current       bool
	sizeCallback  func(width, height int)
	keys          map[glboot.Key]glboot.Action
	shouldClose   bool
	swaps         int
	destroyed     int
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{keys: make(map[glboot.Key]glboot.Action)}
}

func (w *fakeWindow) MakeContextCurrent()               { w.current = true }
func (w *fakeWindow) SetSizeCallback(fn func(int, int)) { w.sizeCallback = fn }
func (w *fakeWindow) Key(k glboot.Key) glboot.Action    { return w.keys[k] }
func (w *fakeWindow) ShouldClose() bool                 { return w.shouldClose }
func (w *fakeWindow) SetShouldClose(v bool)             { w.shouldClose = v }
func (w *fakeWindow) SetTitle(title string)             { w.titles = append(w.titles, title) }
func (w *fakeWindow) SwapBuffers()                      { w.swaps++ }
func (w *fakeWindow) Destroy()                          { w.destroyed++ }
func (w *fakeWindow) resize(width, height int)          { w.sizeCallback(width, height) }
func (w *fakeWindow) press(k glboot.Key)                { w.keys[k] = glboot.Press }
func (w *fakeWindow) lastTitle() string                 { return w.titles[len(w.titles)-1] }

type fakeShader struct {
	stage    glboot.Stage
	source   string
	compiled bool
	log      string
}

type fakeProgram struct {
	shaders []uint32
	linked  bool
	log     string
	// uniforms maps names declared by the fragment stage to locations.
	uniforms map[string]int32
}

type drawCall struct {
	program, vao uint32
	first, count int32
}

// fakeGraphics is a graphics backend with a tiny GLSL "compiler": a stage
// compiles if it declares main and its braces balance, and a program links if
// every fragment input is a vertex output of the same type.
type fakeGraphics struct {
	next uint32

	renderer, version string
	ints              map[glboot.Limit][]int32
	stereo            bool
	limitErr          map[glboot.Limit]error
	bufferErr         error

	buffers  map[uint32][]float32
	vaos     map[uint32]uint32
	shaders  map[uint32]*fakeShader
	programs map[uint32]*fakeProgram
	deleted  []string

	depthTest    bool
	depthFunc    glboot.DepthFunc
	bound        uint32
	boundVAO     uint32
	clearColor   [4]float32
	clears       int
	viewports    [][4]int32
	draws        []drawCall
	uniforms     map[uint32]map[int32][4]float32
	linkQueries  int
	createdProgs int
	infoLog      string
}

func newFakeGraphics() *fakeGraphics {
	return &fakeGraphics{
		renderer: "Fake Renderer",
		version:  "4.1 Fake",
		ints: map[glboot.Limit][]int32{
			glboot.MaxCombinedTextureImageUnits: {80},
			glboot.MaxCubeMapTextureSize:        {16384},
			glboot.MaxDrawBuffers:               {8},
			glboot.MaxFragmentUniformComponents: {4096},
			glboot.MaxTextureImageUnits:         {16},
			glboot.MaxTextureSize:               {16384},
			glboot.MaxVaryingComponents:         {124},
			glboot.MaxVertexAttribs:             {16},
			glboot.MaxVertexTextureImageUnits:   {16},
			glboot.MaxVertexUniformComponents:   {4096},
			glboot.MaxViewportDims:              {16384, 8192},
		},
		limitErr: make(map[glboot.Limit]error),
		buffers:  make(map[uint32][]float32),
		vaos:     make(map[uint32]uint32),
		shaders:  make(map[uint32]*fakeShader),
		programs: make(map[uint32]*fakeProgram),
		uniforms: make(map[uint32]map[int32][4]float32),
	}
}

func (g *fakeGraphics) id() uint32 {
	g.next++
	return g.next
}

func (g *fakeGraphics) Init() error      { return nil }
func (g *fakeGraphics) Renderer() string { return g.renderer }
func (g *fakeGraphics) Version() string  { return g.version }

func (g *fakeGraphics) Integers(l glboot.Limit, dst []int32) error {
	if err := g.limitErr[l]; err != nil {
		return err
	}
	v, ok := g.ints[l]
	if !ok {
		return errors.New("invalid enum")
	}
	copy(dst, v)
	return nil
}

func (g *fakeGraphics) Boolean(l glboot.Limit) (bool, error) {
	if err := g.limitErr[l]; err != nil {
		return false, err
	}
	return g.stereo, nil
}

func (g *fakeGraphics) EnableDepthTest(fn glboot.DepthFunc) {
	g.depthTest = true
	g.depthFunc = fn
}

func (g *fakeGraphics) CreateBuffer(data []float32) (uint32, error) {
	if g.bufferErr != nil {
		return 0, g.bufferErr
	}
	id := g.id()
	g.buffers[id] = append([]float32(nil), data...)
	return id, nil
}

func (g *fakeGraphics) DeleteBuffer(id uint32) {
	delete(g.buffers, id)
	g.deleted = append(g.deleted, fmt.Sprintf("buffer %d", id))
}

func (g *fakeGraphics) CreateVertexArray(buffer, index uint32, size int32) (uint32, error) {
	if _, ok := g.buffers[buffer]; !ok || index != 0 || size != 3 {
		return 0, fmt.Errorf("bad layout buffer=%d index=%d size=%d", buffer, index, size)
	}
	id := g.id()
	g.vaos[id] = buffer
	return id, nil
}

func (g *fakeGraphics) DeleteVertexArray(id uint32) {
	delete(g.vaos, id)
	g.deleted = append(g.deleted, fmt.Sprintf("vao %d", id))
}

func (g *fakeGraphics) BindVertexArray(id uint32) { g.boundVAO = id }

func (g *fakeGraphics) CreateShader(stage glboot.Stage, source string) uint32 {
	id := g.id()
	g.shaders[id] = &fakeShader{stage: stage, source: source}
	return id
}

func (g *fakeGraphics) CompileShader(id uint32) {
	s := g.shaders[id]
	s.compiled = strings.Contains(s.source, "void main(") &&
		strings.Count(s.source, "{") == strings.Count(s.source, "}")
	if !s.compiled {
		s.log = g.infoLog
		if s.log == "" {
			s.log = fmt.Sprintf("0:1(1): error: syntax error in %s shader", s.stage)
		}
	}
}

func (g *fakeGraphics) ShaderCompiled(id uint32) bool { return g.shaders[id].compiled }

func (g *fakeGraphics) ShaderInfoLog(id uint32, maxLength int) string {
	return truncate(g.shaders[id].log, maxLength)
}

func (g *fakeGraphics) DeleteShader(id uint32) {
	g.deleted = append(g.deleted, fmt.Sprintf("shader %d", id))
}

func (g *fakeGraphics) CreateProgram() uint32 {
	g.createdProgs++
	id := g.id()
	g.programs[id] = &fakeProgram{uniforms: make(map[string]int32)}
	return id
}

func (g *fakeGraphics) AttachShader(program, shader uint32) {
	p := g.programs[program]
	p.shaders = append(p.shaders, shader)
}

func (g *fakeGraphics) LinkProgram(program uint32) {
	p := g.programs[program]
	var vs, fs *fakeShader
	for _, id := range p.shaders {
		switch s := g.shaders[id]; s.stage {
		case glboot.VertexStage:
			vs = s
		case glboot.FragmentStage:
			fs = s
		}
	}
	if vs == nil || fs == nil || !vs.compiled || !fs.compiled {
		p.log = "error: program needs a compiled vertex and fragment shader"
		return
	}
	outs := declarations(vs.source, "out")
	for name, typ := range declarations(fs.source, "in") {
		if outs[name] != typ {
			p.log = fmt.Sprintf("error: fragment shader input %q (%s) has no matching vertex output", name, typ)
			return
		}
	}
	for name := range declarations(fs.source, "uniform") {
		p.uniforms[name] = int32(len(p.uniforms))
	}
	p.linked = true
}

func (g *fakeGraphics) ProgramLinked(program uint32) bool {
	g.linkQueries++
	return g.programs[program].linked
}

func (g *fakeGraphics) ProgramInfoLog(program uint32, maxLength int) string {
	return truncate(g.programs[program].log, maxLength)
}

func (g *fakeGraphics) DeleteProgram(id uint32) {
	delete(g.programs, id)
	g.deleted = append(g.deleted, fmt.Sprintf("program %d", id))
}

func (g *fakeGraphics) UseProgram(id uint32) { g.bound = id }

func (g *fakeGraphics) UniformLocation(program uint32, name string) int32 {
	p, ok := g.programs[program]
	if !ok || !p.linked {
		return glboot.NotFound
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return glboot.NotFound
}

func (g *fakeGraphics) Uniform4f(location int32, x, y, z, w float32) {
	if location == glboot.NotFound {
		return
	}
	if g.uniforms[g.bound] == nil {
		g.uniforms[g.bound] = make(map[int32][4]float32)
	}
	g.uniforms[g.bound][location] = [4]float32{x, y, z, w}
}

func (g *fakeGraphics) ClearColor(r, gr, b, a float32) { g.clearColor = [4]float32{r, gr, b, a} }
func (g *fakeGraphics) Clear()                         { g.clears++ }

func (g *fakeGraphics) Viewport(x, y, width, height int32) {
	g.viewports = append(g.viewports, [4]int32{x, y, width, height})
}

func (g *fakeGraphics) DrawTriangles(first, count int32) {
	g.draws = append(g.draws, drawCall{program: g.bound, vao: g.boundVAO, first: first, count: count})
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// declarations returns name->type for "<qualifier> <type> <name>;" lines.
func declarations(src, qualifier string) map[string]string {
	decls := make(map[string]string)
	for _, line := range strings.Split(src, "\n") {
		fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		if len(fields) == 3 && fields[0] == qualifier {
			decls[fields[2]] = fields[1]
		}
	}
	return decls
}

const (
	validVertex = `#version 410 core
layout (location = 0) in vec3 vp;
void main() {
    gl_Position = vec4(vp, 1.0);
}
`
	validFragment = `#version 410 core
uniform vec4 inputColour;
out vec4 frag_colour;
void main() {
    frag_colour = inputColour;
}
`
	brokenVertex = `#version 410 core
layout (location = 0) in vec3 vp;
void main() {
    gl_Position = vec4(vp, 1.0)
`
	mismatchedVertex = `#version 410 core
layout (location = 0) in vec3 vp;
out vec3 colour;
void main() {
    colour = vp;
    gl_Position = vec4(vp, 1.0);
}
`
	mismatchedFragment = `#version 410 core
in vec4 colour;
out vec4 frag_colour;
void main() {
    frag_colour = colour;
}
`
)

// testLog is a diagnostic log in a temp dir with its error stream captured.
type testLog struct {
	diag   *glboot.DiagnosticLog
	logger *slog.Logger
	stderr *bytes.Buffer
}

func newTestLog(t *testing.T) *testLog {
	t.Helper()
	var stderr bytes.Buffer
	diag := glboot.NewDiagnosticLog(filepath.Join(t.TempDir(), "gl.log"), &stderr, glboot.WithLevel(slog.LevelDebug))
	return &testLog{diag: diag, logger: slog.New(diag), stderr: &stderr}
}

func (l *testLog) contents(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(l.diag.Path())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}
