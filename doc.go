/*
Package glboot bootstraps an OpenGL application: it opens a window with a
core-profile context, logs what the driver supports, uploads geometry,
compiles and links a shader program and drives a frame loop until the user
quits.

# Overview

The package talks to the display through two small interfaces, WindowSystem
and Graphics. The backend/opengl package implements both on top of GLFW and
go-gl; tests use recording fakes instead.

Diagnostics go to a plain-text file (gl.log by default) through a
DiagnosticLog, which is an slog.Handler. Errors are also printed to stderr.

# Quick Start

	diag := glboot.NewDiagnosticLog("gl.log", os.Stderr)
	_ = diag.Restart()
	logger := slog.New(diag)

	session, err := glboot.Open(opengl.NewGLFW(), glboot.DefaultConfig(), logger)
	if err != nil {
	    return err
	}
	gfx := opengl.NewGraphics()
	if err := gfx.Init(); err != nil {
	    return err
	}
	glboot.ReportCapabilities(gfx, logger, os.Stdout)

	vs, fs, _ := glboot.ReadShaderPair(glboot.EmbeddedSource(), "test.vert", "test.frag")
	res, err := glboot.NewProvisioner(gfx, logger).Provision(glboot.Quad(), vs, fs)
	if err == nil {
	    res.Program.SetUniform4f(glboot.ColourUniform, [4]float32{1, 0, 0, 1})
	}

	glboot.NewFrameDriver(session, gfx, res, glboot.WithLogger(logger)).Run()

# Threading

GLFW and the GL context are bound to the thread that created them. Callers
must lock the main goroutine to its OS thread (runtime.LockOSThread in init)
and make every call from it. ShaderWatcher receives file events on its own
goroutine but hands them over only when polled from the frame loop.

# Shutdown

FrameDriver.Close releases GPU resources before the window and the window
before the library. Use a Teardown when other cleanups must run in the same
reverse order.
*/
package glboot
