package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// FrameTexture is the RGBA32F texture holding the previously rendered frame.
// It always matches the framebuffer size it was last resized to.
type FrameTexture struct {
	ID     uint32
	Width  int
	Height int
}

// NewFrameTexture allocates a previous-frame texture of the given size
func NewFrameTexture(width, height int) *FrameTexture {
	t := &FrameTexture{}
	t.allocate(width, height)
	return t
}

func (t *FrameTexture) allocate(width, height int) {
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA32F,
		int32(width),
		int32(height),
		0,
		gl.RGBA,
		gl.FLOAT,
		nil,
	)
	checkGLError("FrameTexture.allocate")

	t.Width = width
	t.Height = height
}

// Resize replaces the texture with a new one of the given size. The old
// handle is released first so nothing can sample a stale image.
func (t *FrameTexture) Resize(width, height int) {
	t.Delete()
	t.allocate(width, height)
}

// Bind binds the texture to the given texture unit
func (t *FrameTexture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// CaptureFramebuffer copies the lower-left width x height region of the
// current read framebuffer into the texture
func (t *FrameTexture) CaptureFramebuffer(width, height int) {
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.CopyTexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, 0, 0, int32(width), int32(height))
	checkGLError("FrameTexture.CaptureFramebuffer")
}

// Delete releases the texture
func (t *FrameTexture) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
