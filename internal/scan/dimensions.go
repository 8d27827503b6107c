package scan

import "math"

// RoomDimensions is the axis-aligned bounding extent of a room's walls on
// the world horizontal plane, plus the tallest wall height. Meters, rounded
// to two decimal places.
type RoomDimensions struct {
	Width  float64
	Length float64
	Height float64
}

// Round2 rounds a value to two decimal places. It is the single rounding
// choke point for the export pipeline: every numeric leaf that reaches an
// export record passes through here exactly once, so expected outputs can be
// pinned in tests. Inputs must already be float64; widening from the capture
// session's single precision happens in Describe, before any arithmetic.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeRoomDimensions reduces wall descriptors to the room's axis-aligned
// bounding extents.
//
// Walls are not axis-aligned in general, so each wall contributes the
// projection of its own local axis onto the world axes:
//
//	ext_x = halfWidth * |dirX|
//	ext_z = halfWidth * |dirZ|
//
// and the running min/max of centre±extent is accumulated across all walls.
// Width spans world X, length spans world Z, height is the maximum wall
// height. An empty wall list yields exactly (0, 0, 0) rather than an error.
func ComputeRoomDimensions(walls []SurfaceDescriptor) RoomDimensions {
	if len(walls) == 0 {
		return RoomDimensions{}
	}

	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minZ, maxZ := math.MaxFloat64, -math.MaxFloat64
	var maxHeight float64

	for _, w := range walls {
		extX := w.HalfWidth * math.Abs(w.DirX)
		extZ := w.HalfWidth * math.Abs(w.DirZ)

		if w.CenterX-extX < minX {
			minX = w.CenterX - extX
		}
		if w.CenterX+extX > maxX {
			maxX = w.CenterX + extX
		}
		if w.CenterZ-extZ < minZ {
			minZ = w.CenterZ - extZ
		}
		if w.CenterZ+extZ > maxZ {
			maxZ = w.CenterZ + extZ
		}
		if w.Height > maxHeight {
			maxHeight = w.Height
		}
	}

	return RoomDimensions{
		Width:  Round2(maxX - minX),
		Length: Round2(maxZ - minZ),
		Height: Round2(maxHeight),
	}
}

// OrientationDegrees returns a wall's yaw on the horizontal plane in
// degrees, rounded to two decimals. The range is (-180, 180] straight from
// atan2; angles are deliberately not wrapped into [0, 360) because the
// backend schema records the signed value.
func OrientationDegrees(d SurfaceDescriptor) float64 {
	return Round2(math.Atan2(d.DirZ, d.DirX) * 180 / math.Pi)
}
