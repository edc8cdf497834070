package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera is the view state uploaded to the ray tracing shader.
// Yaw and Pitch are in degrees and only used to derive Direction.
type Camera struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	FOV       float32

	Yaw   float32
	Pitch float32
}

// Sun is the directional light
type Sun struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// Sky is the ambient light
type Sky struct {
	Color     mgl32.Vec3
	Intensity float32
}

// Snapshot is the per-frame state compared by the Detector
type Snapshot struct {
	Camera Camera
	Sun    Sun
	Sky    Sky
}

// DefaultCamera returns the startup camera looking down -Z
func DefaultCamera() Camera {
	return Camera{
		Position:  mgl32.Vec3{0, 0.5, 3},
		Direction: mgl32.Vec3{0, 0, -1},
		FOV:       45,
		Yaw:       -90,
		Pitch:     0,
	}
}

// DefaultSun returns the startup sun light
func DefaultSun() Sun {
	return Sun{
		Direction: mgl32.Vec3{0.4, 0.8, 0.2},
		Color:     mgl32.Vec3{1.0, 0.95, 0.85},
		Intensity: 0.6,
	}
}

// DefaultSky returns the startup sky light (off)
func DefaultSky() Sky {
	return Sky{
		Color:     mgl32.Vec3{0.5, 0.7, 1.0},
		Intensity: 0,
	}
}
