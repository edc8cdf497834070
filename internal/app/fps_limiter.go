package app

import (
	"time"

	"gl-raytracer/internal/config"
)

// FPSLimiter caps the frame rate on top of vsync when a limit is configured
type FPSLimiter struct {
	next time.Time
	now  func() time.Time
}

// NewFPSLimiter creates a limiter reading its cap from config
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{now: time.Now}
}

// Wait blocks until the next frame is due. It returns immediately when no
// limit is set. Uses a hybrid sleep/spin approach for precision on high caps.
func (f *FPSLimiter) Wait() {
	limit := config.GetFPSLimit()
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)
	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// Resync after a hitch instead of rendering a burst of catch-up frames
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}
