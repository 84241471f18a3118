package glboot

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
)

//go:embed shaders/*.vert shaders/*.frag
var embeddedShaders embed.FS

// SourceProvider returns shader source text for a logical path. The returned
// string belongs to the caller.
type SourceProvider interface {
	Source(name string) (string, error)
}

// FSSource reads shader sources from a file system.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource returns a provider reading from fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// NewDirSource returns a provider reading from a directory on disk.
func NewDirSource(dir string) *FSSource {
	return &FSSource{fsys: os.DirFS(dir)}
}

// EmbeddedSource returns a provider for the shaders built into the binary.
func EmbeddedSource() *FSSource {
	sub, err := fs.Sub(embeddedShaders, "shaders")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return &FSSource{fsys: sub}
}

// Source implements SourceProvider.
func (s *FSSource) Source(name string) (string, error) {
	data, err := fs.ReadFile(s.fsys, path.Clean(name))
	if err != nil {
		return "", fmt.Errorf("read shader %s: %w", name, err)
	}
	return string(data), nil
}

// ReadShaderPair fetches the vertex and fragment sources.
func ReadShaderPair(src SourceProvider, vertex, fragment string) (vs, fsrc string, err error) {
	if vs, err = src.Source(vertex); err != nil {
		return "", "", err
	}
	if fsrc, err = src.Source(fragment); err != nil {
		return "", "", err
	}
	return vs, fsrc, nil
}
