package main

import (
	"runtime"

	"gl-raytracer/internal/app"
	"gl-raytracer/internal/config"
	"gl-raytracer/internal/graphics"
	"gl-raytracer/internal/input"
	"gl-raytracer/internal/logger"
	"gl-raytracer/internal/ui"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

func init() {
	// GLFW and the GL context must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	if err := logger.Init(config.Debug); err != nil {
		closer.Fatalln("logger:", err)
	}
	closer.Bind(logger.Sync)

	run()
	closer.Close()
}

func run() {
	if err := app.InitGLFW(); err != nil {
		fatal("glfw", err)
	}
	defer glfw.Terminate()

	window, err := app.SetupWindow()
	if err != nil {
		fatal("window", err)
	}
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		fatal("opengl", err)
	}
	fbW, fbH := window.GetFramebufferSize()
	logger.Log.Info("opengl ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int("width", fbW),
		zap.Int("height", fbH))

	vertPath, fragPath := config.GetShaderPaths()
	program, err := graphics.NewShader(vertPath, fragPath)
	if err != nil {
		fatal("ray tracing shader", err)
	}

	overlay, err := ui.NewUI()
	if err != nil {
		fatal("ui font", err)
	}
	if err := overlay.Init(); err != nil {
		fatal("ui shaders", err)
	}

	im := input.NewInputManager()
	app.SetupInputHandlers(window, im)

	a := app.New(app.Deps{
		Window:  app.GLFWWindow{Window: window},
		Input:   im,
		Program: program,
		Target:  graphics.NewFrameTexture(fbW, fbH),
		Screen:  graphics.NewFullscreenTriangle(),
		Overlay: overlay,
	})
	defer a.Close()

	a.Run()
}

// fatal logs an initialization failure and exits after running bound cleanups
func fatal(stage string, err error) {
	logger.Log.Error("initialization failed", zap.String("stage", stage), zap.Error(err))
	closer.Exit(closer.ExitCodeErr)
}
