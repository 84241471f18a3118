// Command glboot opens an OpenGL window, draws a flat-coloured quad and
// reports the frame rate in the title bar until Escape is pressed or the
// window is closed.
//
// Diagnostics (context limits, shader errors, GLFW errors) go to gl.log.
//
//	go run ./cmd/glboot
//	go run ./cmd/glboot -config glboot.yaml -shaders ./shaders -watch
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-theft-auto/glboot"
	"github.com/go-theft-auto/glboot/backend/opengl"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML or TOML config file")
	logFile := flag.String("log", "", "diagnostic log file (default gl.log)")
	shaderDir := flag.String("shaders", "", "directory holding the shader files (default: built-in shaders)")
	watch := flag.Bool("watch", false, "reload shaders when they change on disk (needs -shaders)")
	width := flag.Int("width", 0, "window width")
	height := flag.Int("height", 0, "window height")
	fullscreen := flag.Bool("fullscreen", false, "size the window to the primary monitor")
	debug := flag.Bool("debug", false, "log debug records")
	flag.Parse()

	cfg := glboot.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = glboot.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	applyFlags(&cfg, *logFile, *shaderDir, *watch, *width, *height, *fullscreen)

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	diag := glboot.NewDiagnosticLog(cfg.LogFile, os.Stderr, glboot.WithLevel(level))
	// A log that cannot be written is reported but does not stop the session.
	_ = diag.Restart()
	logger := slog.New(diag)

	var teardown glboot.Teardown
	defer teardown.Release()

	session, err := glboot.Open(opengl.NewGLFW(), cfg, logger)
	if err != nil {
		return err
	}
	teardown.Push(func() { _ = session.Close() })

	gfx := opengl.NewGraphics()
	if err := gfx.Init(); err != nil {
		logger.Error("could not load OpenGL", "err", err)
		return fmt.Errorf("%w: %w", glboot.ErrContextCreation, err)
	}
	glboot.ReportCapabilities(gfx, logger, os.Stdout)

	source := glboot.SourceProvider(glboot.EmbeddedSource())
	if cfg.ShaderDir != "" {
		source = glboot.NewDirSource(cfg.ShaderDir)
	}
	vs, fs, err := glboot.ReadShaderPair(source, cfg.VertexShader, cfg.FragmentShader)
	if err != nil {
		logger.Error("could not read shaders", "err", err)
		return err
	}

	prov := glboot.NewProvisioner(gfx, logger)
	res, err := prov.Provision(glboot.Quad(), vs, fs)
	if res != nil {
		teardown.Push(res.Release)
	}
	switch {
	case errors.Is(err, glboot.ErrShaderCompile), errors.Is(err, glboot.ErrShaderLink):
		// Keep the window up with nothing drawn; a reload may fix it.
		logger.Warn("continuing without a usable shader program")
	case err != nil:
		return err
	default:
		res.Program.SetUniform4f(glboot.ColourUniform, cfg.Colour)
	}

	opts := []glboot.DriverOption{
		glboot.WithLogger(logger),
		glboot.WithExitKey(cfg.Key()),
		glboot.WithClearColor(cfg.ClearColor),
		glboot.WithFPSInterval(cfg.FPSInterval),
		glboot.WithTeardown(&teardown),
	}
	if cfg.WatchShaders {
		if cfg.ShaderDir == "" {
			logger.Warn("shader watching needs a shader directory, ignoring")
		} else if watcher, err := glboot.NewShaderWatcher(cfg.ShaderDir, logger, cfg.VertexShader, cfg.FragmentShader); err != nil {
			logger.Warn("shader watching disabled", "err", err)
		} else {
			teardown.Push(func() { _ = watcher.Close() })
			reloader := glboot.NewShaderReloader(watcher, source, prov, cfg.VertexShader, cfg.FragmentShader, cfg.Colour)
			opts = append(opts, glboot.WithReloader(reloader))
		}
	}

	glboot.NewFrameDriver(session, gfx, res, opts...).Run()
	return nil
}

func applyFlags(cfg *glboot.Config, logFile, shaderDir string, watch bool, width, height int, fullscreen bool) {
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if shaderDir != "" {
		cfg.ShaderDir = shaderDir
	}
	if watch {
		cfg.WatchShaders = true
	}
	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}
	if fullscreen {
		cfg.Fullscreen = true
	}
}
