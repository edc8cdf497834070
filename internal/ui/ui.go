package ui

import (
	"path/filepath"

	"gl-raytracer/internal/config"
	"gl-raytracer/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const fontPixels = 16

// Cursor is the mouse state for one UI frame, in window coordinates
type Cursor struct {
	X, Y    float32
	Down    bool // left button held
	Pressed bool // left button went down this frame
}

type cmdKind int

const (
	cmdRects cmdKind = iota
	cmdText
)

// drawCmd is one recorded batch. Rect vertices are (x, y, r, g, b, a);
// text vertices are (x, y, u, v) drawn with a single color.
type drawCmd struct {
	kind  cmdKind
	verts []float32
	color mgl32.Vec3
	// sealed rect batches are reserved slots that later rects must not merge into
	sealed bool
}

// UI is a small immediate-mode UI. Widgets are evaluated while they are
// declared between BeginFrame and Flush; drawing is recorded and only hits
// the GPU in Flush.
type UI struct {
	rectShader *graphics.Shader
	textShader *graphics.Shader
	rectVAO    uint32
	rectVBO    uint32
	textVAO    uint32
	textVBO    uint32

	atlas *FontAtlas

	width, height float32
	projection    mgl32.Mat4
	cursor        Cursor

	cmds []drawCmd

	activeSliderID string

	// panel layout
	panel panelState
}

// NewUI bakes the font atlas. Call Init once a GL context is current.
func NewUI() (*UI, error) {
	atlas, err := BuildDefaultFontAtlas(fontPixels)
	if err != nil {
		return nil, err
	}
	return &UI{atlas: atlas}, nil
}

// Init compiles the UI shaders and creates the GPU buffers
func (u *UI) Init() error {
	dir := filepath.Join(config.GetShadersDir(), "ui")

	var err error
	u.rectShader, err = graphics.NewShader(filepath.Join(dir, "ui.vert"), filepath.Join(dir, "ui.frag"))
	if err != nil {
		return err
	}
	u.textShader, err = graphics.NewShader(filepath.Join(dir, "font.vert"), filepath.Join(dir, "font.frag"))
	if err != nil {
		return err
	}

	u.rectVAO, u.rectVBO = newDynamicBuffer([]int32{2, 4})
	u.textVAO, u.textVBO = newDynamicBuffer([]int32{4})
	u.atlas.Upload()
	return nil
}

// newDynamicBuffer creates a VAO/VBO pair with tightly packed float attributes
func newDynamicBuffer(sizes []int32) (uint32, uint32) {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	var stride int32
	for _, s := range sizes {
		stride += s * 4
	}
	offset := 0
	for i, s := range sizes {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointer(uint32(i), s, gl.FLOAT, false, stride, gl.PtrOffset(offset))
		offset += int(s) * 4
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// Dispose cleans up OpenGL resources
func (u *UI) Dispose() {
	if u.rectVAO != 0 {
		gl.DeleteVertexArrays(1, &u.rectVAO)
		gl.DeleteBuffers(1, &u.rectVBO)
	}
	if u.textVAO != 0 {
		gl.DeleteVertexArrays(1, &u.textVAO)
		gl.DeleteBuffers(1, &u.textVBO)
	}
	if u.rectShader != nil {
		u.rectShader.Delete()
	}
	if u.textShader != nil {
		u.textShader.Delete()
	}
	u.atlas.Delete()
}

// BeginFrame starts recording a new frame for a window of the given size
func (u *UI) BeginFrame(width, height int, cursor Cursor) {
	u.width = float32(width)
	u.height = float32(height)
	u.projection = mgl32.Ortho(0, u.width, u.height, 0, -1, 1)
	u.cursor = cursor
	u.cmds = u.cmds[:0]

	// Release a drag that ended outside any slider
	if !cursor.Down {
		u.activeSliderID = ""
	}
}

// DrawFilledRect records a screen-space rectangle (pixels, top-left origin)
func (u *UI) DrawFilledRect(x, y, w, h float32, color mgl32.Vec3, alpha float32) {
	verts := rectVertices(x, y, w, h, color, alpha)
	if n := len(u.cmds); n > 0 && u.cmds[n-1].kind == cmdRects && !u.cmds[n-1].sealed {
		u.cmds[n-1].verts = append(u.cmds[n-1].verts, verts...)
		return
	}
	u.cmds = append(u.cmds, drawCmd{kind: cmdRects, verts: verts})
}

func rectVertices(x, y, w, h float32, c mgl32.Vec3, a float32) []float32 {
	x1, y1 := x+w, y+h
	return []float32{
		x, y, c[0], c[1], c[2], a,
		x1, y, c[0], c[1], c[2], a,
		x1, y1, c[0], c[1], c[2], a,
		x, y, c[0], c[1], c[2], a,
		x1, y1, c[0], c[1], c[2], a,
		x, y1, c[0], c[1], c[2], a,
	}
}

// DrawText records text with its baseline at (x, y)
func (u *UI) DrawText(text string, x, y float32, color mgl32.Vec3) {
	verts := u.atlas.AppendVertices(nil, text, x, y, 1)
	if len(verts) == 0 {
		return
	}
	u.cmds = append(u.cmds, drawCmd{kind: cmdText, verts: verts, color: color})
}

// MeasureText returns the pixel size of text
func (u *UI) MeasureText(text string) (float32, float32) {
	return u.atlas.Measure(text, 1)
}

// LineHeight returns the font line height in pixels
func (u *UI) LineHeight() float32 {
	return float32(u.atlas.LineHeight)
}

// batches returns the recorded commands that have vertices. A panel that was
// never ended leaves its background slot empty.
func (u *UI) batches() []drawCmd {
	out := make([]drawCmd, 0, len(u.cmds))
	for _, cmd := range u.cmds {
		if len(cmd.verts) > 0 {
			out = append(out, cmd)
		}
	}
	return out
}

// Flush draws everything recorded since BeginFrame on top of the current framebuffer
func (u *UI) Flush() {
	cmds := u.batches()
	if len(cmds) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	for _, cmd := range cmds {
		switch cmd.kind {
		case cmdRects:
			u.rectShader.Use()
			u.rectShader.SetMatrix4("projection", &u.projection[0])
			drawDynamic(u.rectVAO, u.rectVBO, cmd.verts, 6)
		case cmdText:
			u.textShader.Use()
			u.textShader.SetMatrix4("projection", &u.projection[0])
			u.textShader.SetVector3("textColor", cmd.color.X(), cmd.color.Y(), cmd.color.Z())
			u.textShader.SetInt("text", 0)
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, u.atlas.TextureID)
			drawDynamic(u.textVAO, u.textVBO, cmd.verts, 4)
		}
	}

	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

func drawDynamic(vao, vbo uint32, verts []float32, floatsPerVertex int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	// Orphan the buffer to avoid GPU stalls on dynamic updates
	size := len(verts) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(verts)/floatsPerVertex))
}

func (u *UI) hovered(x, y, w, h float32) bool {
	c := u.cursor
	return c.X >= x && c.X <= x+w && c.Y >= y && c.Y <= y+h
}
