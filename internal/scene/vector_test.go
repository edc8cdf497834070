package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// near compares component-wise with an absolute tolerance. mgl32's
// ApproxEqualThreshold is relative and rejects tiny values next to zero.
func near(a, b mgl32.Vec3, eps float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestDirectionFromAnglesDefaultLooksDownNegZ(t *testing.T) {
	d := DirectionFromAngles(-90, 0)
	if !near(d, mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("Expected (0,0,-1), got %v", d)
	}
}

func TestDirectionFromAnglesAxes(t *testing.T) {
	cases := []struct {
		yaw, pitch float32
		want       mgl32.Vec3
	}{
		{0, 0, mgl32.Vec3{1, 0, 0}},
		{90, 0, mgl32.Vec3{0, 0, 1}},
		{180, 0, mgl32.Vec3{-1, 0, 0}},
		{-90, 90, mgl32.Vec3{0, 1, 0}},
	}
	for _, c := range cases {
		if got := DirectionFromAngles(c.yaw, c.pitch); !near(got, c.want, 1e-5) {
			t.Errorf("yaw=%v pitch=%v: expected %v, got %v", c.yaw, c.pitch, c.want, got)
		}
	}
}

func TestDirectionFromAnglesIsUnit(t *testing.T) {
	for _, yaw := range []float32{-180, -90, 0, 33, 270} {
		for _, pitch := range []float32{-89, -45, 0, 12.5, 89} {
			l := DirectionFromAngles(yaw, pitch).Len()
			if l < 0.9999 || l > 1.0001 {
				t.Errorf("yaw=%v pitch=%v: length %v", yaw, pitch, l)
			}
		}
	}
}

func TestRight(t *testing.T) {
	r := Right(mgl32.Vec3{0, 0, -1})
	if !near(r, mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Errorf("Expected +X strafe, got %v", r)
	}

	// Looking straight up has no horizontal right vector
	if up := Right(WorldUp); up != (mgl32.Vec3{}) {
		t.Errorf("Expected zero vector, got %v", up)
	}
}

func TestNormalizeZero(t *testing.T) {
	if n := Normalize(mgl32.Vec3{}); n != (mgl32.Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", n)
	}
}
