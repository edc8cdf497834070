package graphics

import "github.com/go-gl/gl/v4.1-core/gl"

// One triangle whose clip-space extent covers the whole viewport
var fullscreenTriangle = []float32{
	-1, -1,
	3, -1,
	-1, 3,
}

// FullscreenTriangle runs the bound fragment shader once per pixel
type FullscreenTriangle struct {
	vao uint32
	vbo uint32
}

// NewFullscreenTriangle uploads the triangle to attribute 0
func NewFullscreenTriangle() *FullscreenTriangle {
	t := &FullscreenTriangle{}
	gl.GenVertexArrays(1, &t.vao)
	gl.BindVertexArray(t.vao)

	gl.GenBuffers(1, &t.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(fullscreenTriangle)*4, gl.Ptr(fullscreenTriangle), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	checkGLError("NewFullscreenTriangle")
	return t
}

// Begin sets the viewport and clears the color buffer
func (t *FullscreenTriangle) Begin(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw issues the single draw call
func (t *FullscreenTriangle) Draw() {
	gl.BindVertexArray(t.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

// Dispose releases the vertex array and buffer
func (t *FullscreenTriangle) Dispose() {
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
	}
	if t.vbo != 0 {
		gl.DeleteBuffers(1, &t.vbo)
	}
}
