package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Absolute per-component thresholds. A component must differ by strictly
// more than its threshold to count as a change.
const (
	PositionEpsilon  = 1e-4
	DirectionEpsilon = 1e-4
	ColorEpsilon     = 1e-4
	IntensityEpsilon = 1e-4
	FOVEpsilon       = 1e-3
)

func differs(a, b, eps float32) bool {
	return math32.Abs(a-b) > eps
}

func vecDiffers(a, b mgl32.Vec3, eps float32) bool {
	for i := 0; i < 3; i++ {
		if differs(a[i], b[i], eps) {
			return true
		}
	}
	return false
}

// CameraChanged reports whether position, direction or FOV moved between a and b.
// Yaw and pitch are not compared, Direction already reflects them.
func CameraChanged(a, b Camera) bool {
	return vecDiffers(a.Position, b.Position, PositionEpsilon) ||
		vecDiffers(a.Direction, b.Direction, DirectionEpsilon) ||
		differs(a.FOV, b.FOV, FOVEpsilon)
}

// SunChanged reports whether any sun parameter changed
func SunChanged(a, b Sun) bool {
	return vecDiffers(a.Direction, b.Direction, DirectionEpsilon) ||
		vecDiffers(a.Color, b.Color, ColorEpsilon) ||
		differs(a.Intensity, b.Intensity, IntensityEpsilon)
}

// SkyChanged reports whether any sky parameter changed
func SkyChanged(a, b Sky) bool {
	return vecDiffers(a.Color, b.Color, ColorEpsilon) ||
		differs(a.Intensity, b.Intensity, IntensityEpsilon)
}

// Changes is the per-frame result of comparing against the previous snapshot
type Changes struct {
	Camera bool
	Sun    bool
	Sky    bool
}

// Any reports whether anything visually relevant changed
func (c Changes) Any() bool {
	return c.Camera || c.Sun || c.Sky
}

// Detector remembers the previous frame's snapshot
type Detector struct {
	last    Snapshot
	hasLast bool
}

// Compare checks cur against the remembered snapshot. Before the first
// Remember there is nothing to compare against and no change is reported.
func (d *Detector) Compare(cur Snapshot) Changes {
	if !d.hasLast {
		return Changes{}
	}
	return Changes{
		Camera: CameraChanged(cur.Camera, d.last.Camera),
		Sun:    SunChanged(cur.Sun, d.last.Sun),
		Sky:    SkyChanged(cur.Sky, d.last.Sky),
	}
}

// Remember stores cur as the snapshot for the next Compare
func (d *Detector) Remember(cur Snapshot) {
	d.last = cur
	d.hasLast = true
}

// HasLast reports whether a snapshot has been remembered
func (d *Detector) HasLast() bool {
	return d.hasLast
}
