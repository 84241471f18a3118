package glboot

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher reports edits to a set of shader files.
//
// fsnotify delivers events on its own goroutine; Changed drains them without
// blocking so that all session state stays on the render thread.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	logger  *slog.Logger
}

// NewShaderWatcher watches the named files inside dir. The directory is
// watched rather than the files so that editors replacing files on save are
// still seen.
func NewShaderWatcher(dir string, logger *slog.Logger, names ...string) (*ShaderWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	sw := &ShaderWatcher{
		watcher: w,
		files:   make(map[string]bool, len(names)),
		logger:  logger,
	}
	for _, n := range names {
		sw.files[filepath.Clean(filepath.Join(dir, n))] = true
	}
	return sw, nil
}

// Changed reports whether a watched file was written or replaced since the
// last call.
func (w *ShaderWatcher) Changed() bool {
	changed := false
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return changed
			}
			if !w.files[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				w.logger.Debug("shader changed", "file", ev.Name, "op", ev.Op.String())
				changed = true
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return changed
			}
			w.logger.Warn("shader watcher", "err", err)
		default:
			return changed
		}
	}
}

// Close stops watching.
func (w *ShaderWatcher) Close() error {
	return w.watcher.Close()
}

// ChangeNotifier reports whether shader sources changed since the last call.
type ChangeNotifier interface {
	Changed() bool
}

// ShaderReloader rebuilds the program when its sources change. It implements
// Reloader.
type ShaderReloader struct {
	notifier ChangeNotifier
	source   SourceProvider
	prov     *Provisioner
	vertex   string
	fragment string
	colour   [4]float32
}

// NewShaderReloader returns a reloader building vertex and fragment from
// source and setting the colour uniform on every new program.
func NewShaderReloader(n ChangeNotifier, source SourceProvider, prov *Provisioner, vertex, fragment string, colour [4]float32) *ShaderReloader {
	return &ShaderReloader{
		notifier: n,
		source:   source,
		prov:     prov,
		vertex:   vertex,
		fragment: fragment,
		colour:   colour,
	}
}

// Poll implements Reloader.
func (r *ShaderReloader) Poll() (*Program, error) {
	if !r.notifier.Changed() {
		return nil, nil
	}
	vs, fs, err := ReadShaderPair(r.source, r.vertex, r.fragment)
	if err != nil {
		return nil, err
	}
	prog, err := r.prov.BuildProgram(vs, fs)
	if err != nil {
		return nil, err
	}
	prog.SetUniform4f(ColourUniform, r.colour)
	return prog, nil
}
