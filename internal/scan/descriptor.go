package scan

import "math"

// ApplyTransform applies a 4x4 row-major transform T to point (x,y,z).
// T is expected as [16]float32 row-major: m00,m01,m02,m03, m10,...
// Arithmetic is done in float64 after widening.
func ApplyTransform(x, y, z float64, T [16]float32) (wx, wy, wz float64) {
	wx = float64(T[0])*x + float64(T[1])*y + float64(T[2])*z + float64(T[3])
	wy = float64(T[4])*x + float64(T[5])*y + float64(T[6])*z + float64(T[7])
	wz = float64(T[8])*x + float64(T[9])*y + float64(T[10])*z + float64(T[11])
	return
}

// Describe flattens a raw surface into a SurfaceDescriptor.
//
// The centre is the surface's local origin carried through the transform,
// projected onto world X and Z. The direction is the local-X basis column
// projected onto the world horizontal plane (T[0], T[8]); this encodes the
// surface's yaw without a full rotation decomposition. Widening to float64
// happens here, before any arithmetic, so later rounding never sees
// single-precision artifacts.
//
// Describe is total: it performs no validation, and degenerate transforms
// (zero-length basis vectors) simply produce a zero projected extent.
func Describe(s RawSurface) SurfaceDescriptor {
	cx, _, cz := ApplyTransform(0, 0, 0, s.Transform)
	return SurfaceDescriptor{
		CenterX:   cx,
		CenterZ:   cz,
		HalfWidth: math.Abs(float64(s.ExtentX)) / 2,
		DirX:      float64(s.Transform[0]),
		DirZ:      float64(s.Transform[8]),
		Height:    math.Abs(float64(s.ExtentY)),
	}
}

// DescribeAll flattens a slice of raw surfaces, preserving order.
func DescribeAll(surfaces []RawSurface) []SurfaceDescriptor {
	if len(surfaces) == 0 {
		return nil
	}
	out := make([]SurfaceDescriptor, len(surfaces))
	for i, s := range surfaces {
		out[i] = Describe(s)
	}
	return out
}
