// Package geo converts geographic coordinates into globe-space vectors and
// builds the curved arcs drawn between topics.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// DefaultRadius sits just above the unit globe so markers are not buried in it.
const DefaultRadius = 1.01

var ErrOutOfRange = errors.New("coordinates out of range")

// Validate reports whether lat/lon are inside [-90,90] and [-180,180].
func Validate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("lat %.4f lon %.4f: %w", lat, lon, ErrOutOfRange)
	}
	return nil
}

// Project places (lat, lon) on a sphere of the given radius. Longitude is
// offset by 180 degrees so lon=0 lands on the +X seam, and latitude by 90 so
// lat=90 is the +Y pole. Latitude is clamped and longitude wrapped; a
// non-positive radius falls back to DefaultRadius.
func Project(lat, lon, radius float64) Vec3 {
	if radius <= 0 {
		radius = DefaultRadius
	}
	lat = clampLat(lat)
	lon = WrapLon(lon)

	phi := (90 - lat) * math.Pi / 180
	theta := (lon + 180) * math.Pi / 180

	return Vec3{
		X: -radius * math.Sin(phi) * math.Cos(theta),
		Y: radius * math.Cos(phi),
		Z: radius * math.Sin(phi) * math.Sin(theta),
	}
}

// LatLon is the inverse of Project for any non-zero vector.
func LatLon(v Vec3) (lat, lon float64) {
	r := v.Len()
	if r == 0 {
		return 0, 0
	}
	lat = 90 - math.Acos(clamp(v.Y/r, -1, 1))*180/math.Pi
	// x = -sin(phi)cos(theta), z = sin(phi)sin(theta)
	theta := math.Atan2(v.Z, -v.X) * 180 / math.Pi
	lon = WrapLon(theta - 180)
	return lat, lon
}

// WrapLon folds any longitude into [-180, 180].
func WrapLon(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

func clampLat(lat float64) float64 {
	if math.IsNaN(lat) {
		return 0
	}
	return clamp(lat, -90, 90)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
