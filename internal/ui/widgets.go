package ui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	panelPadding = 8
	rowSpacing   = 4
	sliderHeight = 14
	thumbWidth   = 10
	checkboxSize = 14
)

var (
	panelColor  = mgl32.Vec3{0.08, 0.08, 0.1}
	textColor   = mgl32.Vec3{0.95, 0.95, 0.95}
	trackColor  = mgl32.Vec3{0.3, 0.3, 0.3}
	thumbColor  = mgl32.Vec3{0.6, 0.6, 0.6}
	activeColor = mgl32.Vec3{0.35, 0.6, 0.95}
	hintColor   = mgl32.Vec3{1, 1, 0}
)

type panelState struct {
	open    bool
	title   string
	x, y, w float32
	cursorY float32
	bgIndex int
}

// BeginPanel opens a panel at (x, y) with the given width. Widgets declared
// until EndPanel are stacked vertically inside it.
func (u *UI) BeginPanel(title string, x, y, w float32) {
	// Reserve a slot so the background is drawn below the contents
	u.cmds = append(u.cmds, drawCmd{kind: cmdRects, sealed: true})
	u.panel = panelState{
		open:    true,
		title:   title,
		x:       x,
		y:       y,
		w:       w,
		cursorY: y + panelPadding,
		bgIndex: len(u.cmds) - 1,
	}
	if title != "" {
		u.Text(title)
	}
}

// EndPanel closes the current panel and fills in its background
func (u *UI) EndPanel() {
	p := &u.panel
	if !p.open {
		return
	}
	h := p.cursorY - p.y + panelPadding - rowSpacing
	u.cmds[p.bgIndex].verts = rectVertices(p.x, p.y, p.w, h, panelColor, 0.75)
	p.open = false
}

// Text adds a line of text to the current panel
func (u *UI) Text(format string, args ...any) {
	s := format
	if len(args) > 0 {
		s = fmt.Sprintf(format, args...)
	}
	lh := u.LineHeight()
	u.DrawText(s, u.panel.x+panelPadding, u.panel.cursorY+lh*0.8, textColor)
	u.panel.cursorY += lh + rowSpacing
}

// innerWidth is the usable width of the current panel row
func (u *UI) innerWidth() float32 {
	return u.panel.w - 2*panelPadding
}

// rowHeight is the height of a widget row: a label line above a control
func (u *UI) rowHeight() float32 {
	return u.LineHeight() + sliderHeight + rowSpacing
}

// SliderFloat edits *v within [min, max]. A drag that starts on the track
// keeps the slider active until the button is released. Reports whether *v changed.
func (u *UI) SliderFloat(label string, v *float32, min, max float32) bool {
	lh := u.LineHeight()
	x := u.panel.x + panelPadding
	y := u.panel.cursorY
	w := u.innerWidth()

	u.DrawText(fmt.Sprintf("%s: %.3f", label, *v), x, y+lh*0.8, textColor)
	changed := u.slider(u.panel.title+"/"+label, x, y+lh, w, sliderHeight, v, min, max)

	u.panel.cursorY += u.rowHeight() + rowSpacing
	return changed
}

// SliderFloat3 edits three components side by side with a shared range
func (u *UI) SliderFloat3(label string, v *mgl32.Vec3, min, max float32) bool {
	return u.vec3Row(label, v, min, max, false)
}

// ColorEdit3 edits an RGB color in [0, 1] and shows a swatch
func (u *UI) ColorEdit3(label string, c *mgl32.Vec3) bool {
	return u.vec3Row(label, c, 0, 1, true)
}

func (u *UI) vec3Row(label string, v *mgl32.Vec3, min, max float32, swatch bool) bool {
	lh := u.LineHeight()
	x := u.panel.x + panelPadding
	y := u.panel.cursorY
	w := u.innerWidth()

	u.DrawText(fmt.Sprintf("%s: %.2f, %.2f, %.2f", label, v[0], v[1], v[2]), x, y+lh*0.8, textColor)

	if swatch {
		u.DrawFilledRect(x+w-sliderHeight, y+lh, sliderHeight, sliderHeight, *v, 1)
		w -= sliderHeight + rowSpacing
	}

	gap := float32(rowSpacing)
	sw := (w - 2*gap) / 3
	changed := false
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("%s/%s[%d]", u.panel.title, label, i)
		if u.slider(id, x+float32(i)*(sw+gap), y+lh, sw, sliderHeight, &v[i], min, max) {
			changed = true
		}
	}

	u.panel.cursorY += u.rowHeight() + rowSpacing
	return changed
}

// Checkbox toggles *v when the box or its label is clicked. Reports whether *v changed.
func (u *UI) Checkbox(label string, v *bool) bool {
	lh := u.LineHeight()
	x := u.panel.x + panelPadding
	y := u.panel.cursorY
	labelW, _ := u.MeasureText(label)
	hitW := checkboxSize + rowSpacing*2 + labelW

	changed := false
	if u.cursor.Pressed && u.activeSliderID == "" && u.hovered(x, y, hitW, checkboxSize) {
		*v = !*v
		changed = true
	}

	u.DrawFilledRect(x, y, checkboxSize, checkboxSize, trackColor, 0.9)
	if *v {
		inset := float32(3)
		u.DrawFilledRect(x+inset, y+inset, checkboxSize-2*inset, checkboxSize-2*inset, activeColor, 1)
	}
	u.DrawText(label, x+checkboxSize+rowSpacing*2, y+lh*0.8, textColor)

	u.panel.cursorY += max32(checkboxSize, lh) + rowSpacing
	return changed
}

// slider draws a horizontal track with a thumb and applies drag input
func (u *UI) slider(id string, x, y, w, h float32, v *float32, min, max float32) bool {
	u.DrawFilledRect(x, y, w, h, trackColor, 0.8)

	old := *v
	if u.activeSliderID == id {
		if u.cursor.Down {
			*v = sliderValue(u.cursor.X, x, w, min, max)
		} else {
			u.activeSliderID = ""
		}
	} else if u.activeSliderID == "" && u.cursor.Pressed && u.hovered(x, y, w, h) {
		// Begin drag
		u.activeSliderID = id
		*v = sliderValue(u.cursor.X, x, w, min, max)
	}

	ratio := float32(0)
	if max > min {
		ratio = mgl32.Clamp((*v-min)/(max-min), 0, 1)
	}
	color := thumbColor
	if u.activeSliderID == id {
		color = activeColor
	}
	u.DrawFilledRect(x+(w-thumbWidth)*ratio, y, thumbWidth, h, color, 0.9)

	return *v != old
}

// sliderValue maps a cursor x position on a track to a value in [min, max]
func sliderValue(cursorX, x, w, min, max float32) float32 {
	t := mgl32.Clamp((cursorX-x)/w, 0, 1)
	return min + t*(max-min)
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
