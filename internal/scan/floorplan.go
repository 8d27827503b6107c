package scan

// PlanPoint is a single position on the world horizontal plane.
type PlanPoint struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Floorplan is the top-down geometry of a capture: wall descriptors plus
// furniture centres. It is persisted alongside the export record so the
// floorplan chart can be served for a stored scan later; the record itself
// carries only dimensions, not placement.
type Floorplan struct {
	Walls     []SurfaceDescriptor `json:"walls"`
	Furniture []PlanPoint         `json:"furniture,omitempty"`
}

// BuildFloorplan reduces a capture to its floorplan geometry. Like the rest
// of the pipeline it is pure and total.
func BuildFloorplan(c Capture) Floorplan {
	fp := Floorplan{Walls: DescribeAll(c.Walls)}
	for _, o := range c.Objects {
		x, _, z := ApplyTransform(0, 0, 0, o.Transform)
		fp.Furniture = append(fp.Furniture, PlanPoint{X: x, Z: z})
	}
	return fp
}
