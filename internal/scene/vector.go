package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the +Y axis
var WorldUp = mgl32.Vec3{0, 1, 0}

// Normalize returns v scaled to unit length. A zero vector is returned unchanged.
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// DirectionFromAngles converts yaw/pitch in degrees to a unit direction.
// Yaw -90, pitch 0 looks down -Z.
func DirectionFromAngles(yaw, pitch float32) mgl32.Vec3 {
	y := mgl32.DegToRad(yaw)
	p := mgl32.DegToRad(pitch)
	return Normalize(mgl32.Vec3{
		math32.Cos(y) * math32.Cos(p),
		math32.Sin(p),
		math32.Sin(y) * math32.Cos(p),
	})
}

// Right returns the horizontal strafe vector for a view direction,
// cross(dir, up) normalized. It is zero when dir is parallel to up.
func Right(dir mgl32.Vec3) mgl32.Vec3 {
	return Normalize(dir.Cross(WorldUp))
}
