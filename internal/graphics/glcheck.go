package graphics

import (
	"gl-raytracer/internal/config"
	"gl-raytracer/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// checkGLError drains the GL error queue after op. Only active in debug builds.
func checkGLError(op string) {
	if !config.Debug {
		return
	}
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return
		}
		logger.Log.Error("OpenGL error", zap.String("op", op), zap.String("code", glErrorName(code)))
	}
}

func glErrorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	}
	return "unknown"
}
