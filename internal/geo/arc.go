package geo

// ArcSegments gives the 51-point polylines used for connections.
const ArcSegments = 50

// ArcLift scales how far the control point rises above the midpoint,
// relative to the chord length.
const ArcLift = 0.4

// ArcControl returns the control point of the quadratic curve between a and
// b: the chord midpoint pushed radially out to |a| + ArcLift*|a-b|.
func ArcControl(a, b Vec3) Vec3 {
	chord := Distance(a, b)
	altitude := a.Len() + ArcLift*chord

	mid := a.Add(b).Scale(0.5)
	dir := mid.Normalize()
	if mid.Len() < 1e-9*(1+a.Len()) {
		// Antipodal endpoints have no midpoint direction; lift sideways.
		dir = perpendicular(a)
	}
	return dir.Scale(altitude)
}

// Arc samples the quadratic Bezier from a to b into segments+1 points.
func Arc(a, b Vec3, segments int) []Vec3 {
	if segments < 1 {
		segments = ArcSegments
	}
	c := ArcControl(a, b)
	points := make([]Vec3, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		points[i] = quadraticPoint(t, a, c, b)
	}
	return points
}

func quadraticPoint(t float64, p0, p1, p2 Vec3) Vec3 {
	u := 1 - t
	return p0.Scale(u * u).Add(p1.Scale(2 * u * t)).Add(p2.Scale(t * t))
}

func perpendicular(v Vec3) Vec3 {
	axis := Vec3{Y: 1}
	if p := v.Cross(axis); p.Len() > 1e-9 {
		return p.Normalize()
	}
	return v.Cross(Vec3{X: 1}).Normalize()
}
