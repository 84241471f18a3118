package glboot

// Profile selects the OpenGL context profile requested from the window system.
type Profile int

const (
	ProfileAny Profile = iota
	ProfileCore
	ProfileCompat
)

// String returns the config name of the profile.
func (p Profile) String() string {
	switch p {
	case ProfileCore:
		return "core"
	case ProfileCompat:
		return "compat"
	default:
		return "any"
	}
}

// Hints are applied to the window system before the window and its context
// are created. Some platforms (macOS) silently fall back to a legacy context
// unless ForwardCompatible and ProfileCore are both set.
type Hints struct {
	Major             int
	Minor             int
	Profile           Profile
	ForwardCompatible bool
	Samples           int
}

// WindowSystem is the windowing/input backend.
// All methods must be called from the thread that called Init.
type WindowSystem interface {
	Init() error
	Terminate()
	Version() string
	// SetErrorCallback registers fn for errors raised by the backend. It may
	// be called before Init.
	SetErrorCallback(fn func(code int, description string))
	// PrimaryVideoMode returns the size of the primary monitor's current mode.
	PrimaryVideoMode() (width, height int, ok bool)
	CreateWindow(width, height int, title string, hints Hints) (Window, error)
	// PollEvents processes pending events without blocking. Callbacks fire
	// synchronously from within this call.
	PollEvents()
	SwapInterval(interval int)
	// Time returns monotonic seconds since Init.
	Time() float64
}

// Window is a window with an attached graphics context.
type Window interface {
	MakeContextCurrent()
	SetSizeCallback(fn func(width, height int))
	Key(k Key) Action
	ShouldClose() bool
	SetShouldClose(v bool)
	SetTitle(title string)
	SwapBuffers()
	Destroy()
}

// Stage identifies a shader stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// DepthFunc is the depth comparison used when depth testing is enabled.
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
	DepthAlways
)

// Limit is an implementation-defined context limit.
type Limit int

const (
	MaxCombinedTextureImageUnits Limit = iota
	MaxCubeMapTextureSize
	MaxDrawBuffers
	MaxFragmentUniformComponents
	MaxTextureImageUnits
	MaxTextureSize
	MaxVaryingComponents
	MaxVertexAttribs
	MaxVertexTextureImageUnits
	MaxVertexUniformComponents
	MaxViewportDims
	Stereo
)

// NotFound is the uniform location returned for names the program does not
// use. Writes to it are ignored by the graphics backend.
const NotFound int32 = -1

// Graphics is the subset of the graphics API used by a session. Object
// handles are the backend's names; zero is never a valid handle.
type Graphics interface {
	Init() error
	Renderer() string
	Version() string
	// Integers fills dst with the value(s) of an integer limit.
	Integers(l Limit, dst []int32) error
	Boolean(l Limit) (bool, error)

	EnableDepthTest(fn DepthFunc)

	CreateBuffer(data []float32) (uint32, error)
	DeleteBuffer(id uint32)
	// CreateVertexArray binds buffer to attribute slot index with size
	// float components per vertex, tightly packed.
	CreateVertexArray(buffer uint32, index uint32, size int32) (uint32, error)
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)

	CreateShader(stage Stage, source string) uint32
	CompileShader(id uint32)
	ShaderCompiled(id uint32) bool
	ShaderInfoLog(id uint32, maxLength int) string
	DeleteShader(id uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32, maxLength int) string
	DeleteProgram(id uint32)
	UseProgram(id uint32)
	UniformLocation(program uint32, name string) int32
	Uniform4f(location int32, x, y, z, w float32)

	ClearColor(r, g, b, a float32)
	Clear()
	Viewport(x, y, width, height int32)
	DrawTriangles(first, count int32)
}
