package glboot

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendInit is returned when the window system fails to start.
	ErrBackendInit = errors.New("window system init failed")
	// ErrContextCreation is returned when the window or its context cannot be created.
	ErrContextCreation = errors.New("context creation failed")
	// ErrShaderCompile matches a *ShaderError raised by a failed compile.
	ErrShaderCompile = errors.New("shader compile failed")
	// ErrShaderLink matches a *ShaderError raised by a failed link.
	ErrShaderLink = errors.New("shader link failed")
	// ErrLogWrite is returned when the diagnostic log cannot be written.
	ErrLogWrite = errors.New("log write failed")
	// ErrClosed is returned by operations on a closed session.
	ErrClosed = errors.New("session closed")
)

// ShaderOp is the operation a ShaderError refers to.
type ShaderOp int

const (
	OpCompile ShaderOp = iota
	OpLink
)

// ShaderError carries the backend diagnostic for a failed compile or link.
type ShaderError struct {
	Op    ShaderOp
	Stage Stage // meaningful for OpCompile only
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Op == OpLink {
		return fmt.Sprintf("shader program link failed: %s", e.Log)
	}
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// Is reports whether target is the sentinel for e's operation.
func (e *ShaderError) Is(target error) bool {
	switch target {
	case ErrShaderCompile:
		return e.Op == OpCompile
	case ErrShaderLink:
		return e.Op == OpLink
	}
	return false
}

// BackendError is an error reported asynchronously through the window
// system's error callback.
type BackendError struct {
	Code        int
	Description string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("GLFW Error: code %d msg: %s", e.Code, e.Description)
}
