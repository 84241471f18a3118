package glboot

import (
	"errors"
	"fmt"
	"log/slog"
)

// InfoLogMax bounds the diagnostic text fetched for a failed compile or link.
const InfoLogMax = 2048

// ColourUniform is the fragment shader uniform holding the fill colour.
const ColourUniform = "inputColour"

// Program is a linked shader program.
type Program struct {
	gfx Graphics
	id  uint32
}

// ID returns the backend program name, or 0 once deleted.
func (p *Program) ID() uint32 {
	if p == nil {
		return 0
	}
	return p.id
}

// Usable reports whether the program may be bound for drawing.
func (p *Program) Usable() bool {
	return p != nil && p.id != 0
}

// UniformLocation looks up a uniform by name. Unknown names return NotFound.
func (p *Program) UniformLocation(name string) int32 {
	if !p.Usable() {
		return NotFound
	}
	return p.gfx.UniformLocation(p.id, name)
}

// SetUniform4f binds the program and writes a vec4 uniform. Writing a name
// the program does not use is a no-op.
func (p *Program) SetUniform4f(name string, v [4]float32) {
	if !p.Usable() {
		return
	}
	loc := p.UniformLocation(name)
	p.gfx.UseProgram(p.id)
	p.gfx.Uniform4f(loc, v[0], v[1], v[2], v[3])
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.Usable() {
		p.gfx.DeleteProgram(p.id)
		p.id = 0
	}
}

// Resources are the GPU objects backing one drawable mesh.
type Resources struct {
	gfx         Graphics
	Buffer      uint32
	VertexArray uint32
	VertexCount int32
	Program     *Program
}

// ReplaceProgram swaps in p and deletes the previous program.
func (r *Resources) ReplaceProgram(p *Program) {
	if r.Program != nil && r.Program != p {
		r.Program.Delete()
	}
	r.Program = p
}

// Release deletes the program, vertex array and buffer. It is safe to call
// more than once.
func (r *Resources) Release() {
	if r == nil {
		return
	}
	r.Program.Delete()
	r.Program = nil
	if r.VertexArray != 0 {
		r.gfx.DeleteVertexArray(r.VertexArray)
		r.VertexArray = 0
	}
	if r.Buffer != 0 {
		r.gfx.DeleteBuffer(r.Buffer)
		r.Buffer = 0
	}
}

// Provisioner uploads geometry and builds shader programs. It keeps no state
// between calls.
type Provisioner struct {
	gfx    Graphics
	logger *slog.Logger
}

// NewProvisioner returns a provisioner logging shader diagnostics to logger.
func NewProvisioner(gfx Graphics, logger *slog.Logger) *Provisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provisioner{gfx: gfx, logger: logger}
}

// UploadGeometry copies g into a static draw buffer.
func (p *Provisioner) UploadGeometry(g Geometry) (uint32, error) {
	if g.Len() == 0 {
		return 0, fmt.Errorf("upload geometry: empty geometry")
	}
	id, err := p.gfx.CreateBuffer(g.points)
	if err != nil {
		return 0, fmt.Errorf("upload geometry: %w", err)
	}
	return id, nil
}

// DescribeLayout binds buffer to attribute slot 0 as tightly packed vec3
// positions.
func (p *Provisioner) DescribeLayout(buffer uint32) (uint32, error) {
	id, err := p.gfx.CreateVertexArray(buffer, 0, ComponentsPerVertex)
	if err != nil {
		return 0, fmt.Errorf("describe vertex layout: %w", err)
	}
	return id, nil
}

// CompileStage compiles one shader stage. On failure the backend's info log
// is written to the log as an error and returned in a *ShaderError.
func (p *Provisioner) CompileStage(stage Stage, source string) (uint32, error) {
	id := p.gfx.CreateShader(stage, source)
	p.gfx.CompileShader(id)
	if p.gfx.ShaderCompiled(id) {
		return id, nil
	}

	info := p.gfx.ShaderInfoLog(id, InfoLogMax)
	p.gfx.DeleteShader(id)
	p.logger.Error(fmt.Sprintf("GL shader index %d did not compile", id), "stage", stage.String())
	p.logger.Error(fmt.Sprintf("Shader info log GL index %d:\n%s", id, info))
	return 0, &ShaderError{Op: OpCompile, Stage: stage, Log: info}
}

// Link links a vertex and fragment stage into a program. The stages are
// deleted whether or not linking succeeds.
func (p *Provisioner) Link(vertex, fragment uint32) (*Program, error) {
	id := p.gfx.CreateProgram()
	p.gfx.AttachShader(id, vertex)
	p.gfx.AttachShader(id, fragment)
	p.gfx.LinkProgram(id)
	p.gfx.DeleteShader(vertex)
	p.gfx.DeleteShader(fragment)

	if !p.gfx.ProgramLinked(id) {
		info := p.gfx.ProgramInfoLog(id, InfoLogMax)
		p.gfx.DeleteProgram(id)
		p.logger.Error(fmt.Sprintf("GL shader program index %d did not link", id))
		p.logger.Error(fmt.Sprintf("Program info log GL index %d:\n%s", id, info))
		return nil, &ShaderError{Op: OpLink, Log: info}
	}
	return &Program{gfx: p.gfx, id: id}, nil
}

// BuildProgram compiles both stages and links them. Both stages are always
// compiled so that every diagnostic reaches the log; linking is skipped if
// either failed.
func (p *Provisioner) BuildProgram(vertexSource, fragmentSource string) (*Program, error) {
	vs, vErr := p.CompileStage(VertexStage, vertexSource)
	fs, fErr := p.CompileStage(FragmentStage, fragmentSource)
	if vErr != nil || fErr != nil {
		if vs != 0 {
			p.gfx.DeleteShader(vs)
		}
		if fs != 0 {
			p.gfx.DeleteShader(fs)
		}
		return nil, errors.Join(vErr, fErr)
	}
	return p.Link(vs, fs)
}

// Provision uploads g, describes its layout and builds the shader program.
//
// A shader error is returned together with the geometry resources, whose
// Program is nil; the caller may keep running with nothing drawn or release
// the resources and stop. Other errors return nil resources.
func (p *Provisioner) Provision(g Geometry, vertexSource, fragmentSource string) (*Resources, error) {
	buf, err := p.UploadGeometry(g)
	if err != nil {
		return nil, err
	}
	vao, err := p.DescribeLayout(buf)
	if err != nil {
		p.gfx.DeleteBuffer(buf)
		return nil, err
	}
	res := &Resources{
		gfx:         p.gfx,
		Buffer:      buf,
		VertexArray: vao,
		VertexCount: g.VertexCount(),
	}

	prog, err := p.BuildProgram(vertexSource, fragmentSource)
	if err != nil {
		return res, err
	}
	res.Program = prog
	p.logger.Info("shader program linked", "program", prog.ID(), "vertices", res.VertexCount)
	return res, nil
}
