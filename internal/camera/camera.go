// Package camera is the orbit camera around the globe: it looks at a
// (lat, lon) point from a distance, eases toward fly-to targets and spins
// slowly when idle.
package camera

import (
	"math"
	"time"

	"chronicle-globe/internal/geo"
)

const (
	MinDistance     = 1.2
	MaxDistance     = 5.0
	DefaultDistance = 2.5
	// DollyFactor is applied per zoom step.
	DollyFactor = 1.2
	// MaxPitch keeps the camera off the poles where "up" degenerates.
	MaxPitch = 80.0
	// arrival threshold in degrees
	arriveEps = 0.05
)

// Camera is mutated only by the UI loop.
type Camera struct {
	Yaw      float64 // longitude facing the viewer, degrees
	Pitch    float64 // latitude facing the viewer, degrees
	Distance float64

	// AutoRotate spins the globe at SpinDegPerSec while no flight is active.
	AutoRotate    bool
	SpinDegPerSec float64
	// Damping is the easing rate toward a fly-to target, per second.
	Damping float64

	flying    bool
	targetYaw float64
	targetPit float64

	home homeView
}

// homeView is the initial view restored by Reset.
type homeView struct {
	Yaw, Pitch float64
	AutoRotate bool
}

// New returns a camera at the default distance. period is the time for one
// full idle revolution; zero disables idle rotation.
func New(yaw, pitch float64, period time.Duration) *Camera {
	c := &Camera{
		Yaw:      geo.WrapLon(yaw),
		Pitch:    clampPitch(pitch),
		Distance: DefaultDistance,
		Damping:  3.0,
	}
	if period > 0 {
		c.AutoRotate = true
		c.SpinDegPerSec = 360 / period.Seconds()
	}
	c.home = homeView{Yaw: c.Yaw, Pitch: c.Pitch, AutoRotate: c.AutoRotate}
	return c
}

// FlyTo starts easing toward (lat, lon) and stops idle rotation.
func (c *Camera) FlyTo(lat, lon float64) {
	c.targetYaw = geo.WrapLon(lon)
	c.targetPit = clampPitch(lat)
	c.flying = true
	c.AutoRotate = false
}

// Flying reports whether a fly-to is still in progress.
func (c *Camera) Flying() bool { return c.flying }

// Zoom multiplies the zoom level by factor; >1 moves closer.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = math.Max(MinDistance, math.Min(MaxDistance, c.Distance/factor))
}

// Scale is the on-screen magnification relative to the default distance.
func (c *Camera) Scale() float64 {
	return DefaultDistance / c.Distance
}

// Orbit turns the view by the given degrees and cancels any flight.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.flying = false
	c.Yaw = geo.WrapLon(c.Yaw + dYaw)
	c.Pitch = clampPitch(c.Pitch + dPitch)
}

// Reset restores the initial view.
func (c *Camera) Reset() {
	c.flying = false
	c.Yaw = c.home.Yaw
	c.Pitch = c.home.Pitch
	c.AutoRotate = c.home.AutoRotate
	c.Distance = DefaultDistance
}

// Step advances the camera by dt.
func (c *Camera) Step(dt time.Duration) {
	secs := dt.Seconds()
	if secs <= 0 {
		return
	}
	if c.flying {
		alpha := 1 - math.Exp(-c.Damping*secs)
		dYaw := shortestDelta(c.Yaw, c.targetYaw)
		dPit := c.targetPit - c.Pitch
		if math.Abs(dYaw) < arriveEps && math.Abs(dPit) < arriveEps {
			c.Yaw, c.Pitch = c.targetYaw, c.targetPit
			c.flying = false
			return
		}
		c.Yaw = geo.WrapLon(c.Yaw + dYaw*alpha)
		c.Pitch += dPit * alpha
		return
	}
	if c.AutoRotate {
		c.Yaw = geo.WrapLon(c.Yaw + c.SpinDegPerSec*secs)
	}
}

// Basis returns the view axes: right (east on screen), up, and forward
// (from the globe centre toward the viewer).
func (c *Camera) Basis() (right, up, forward geo.Vec3) {
	forward = geo.Project(c.Pitch, c.Yaw, 1)
	right = geo.Vec3{Y: 1}.Cross(forward).Normalize()
	up = forward.Cross(right)
	return right, up, forward
}

// ToView maps a globe-space point into view space: X right, Y up, Z toward
// the viewer. Points with Z < 0 are on the far side.
func (c *Camera) ToView(p geo.Vec3) geo.Vec3 {
	right, up, forward := c.Basis()
	return geo.Vec3{X: p.Dot(right), Y: p.Dot(up), Z: p.Dot(forward)}
}

// FromView is the inverse of ToView.
func (c *Camera) FromView(v geo.Vec3) geo.Vec3 {
	right, up, forward := c.Basis()
	return right.Scale(v.X).Add(up.Scale(v.Y)).Add(forward.Scale(v.Z))
}

func clampPitch(p float64) float64 {
	return math.Max(-MaxPitch, math.Min(MaxPitch, p))
}

func shortestDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	}
	if d < -180 {
		d += 360
	}
	return d
}
