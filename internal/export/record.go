package export

import (
	"math"

	"github.com/hippogriff-ai/roomscan/internal/scan"
	"github.com/hippogriff-ai/roomscan/internal/units"
)

// RoomExport is the room-level summary: bounding extents plus the fixed unit
// tag. The record always carries meters; display conversion happens on read.
type RoomExport struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// WallExport is one wall's summary, order-preserving with the capture.
type WallExport struct {
	ID          string  `json:"id"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Orientation float64 `json:"orientation"`
}

// OpeningExport is one classified door/window/opening.
type OpeningExport struct {
	Type   string  `json:"type"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FurnitureExport is one classified furniture object.
type FurnitureExport struct {
	Type   string  `json:"type"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// SurfaceExport is a placeholder entry for non-wall surfaces; only the type
// tag survives to the backend.
type SurfaceExport struct {
	Type string `json:"type"`
}

// Record is the normalized export record sent to the backend. Every numeric
// leaf has already passed through scan.Round2 by the time a Record exists;
// no raw extent ever reaches the wire.
type Record struct {
	Room         RoomExport        `json:"room"`
	Walls        []WallExport      `json:"walls"`
	Openings     []OpeningExport   `json:"openings"`
	Furniture    []FurnitureExport `json:"furniture"`
	Surfaces     []SurfaceExport   `json:"surfaces"`
	FloorAreaSqm float64           `json:"floor_area_sqm"`
}

// BuildRecord runs the full export pipeline over one capture snapshot:
// flatten surfaces to descriptors, reduce walls to room dimensions, classify
// openings and furniture, and assemble the rounded record.
//
// The function is pure and total. Malformed geometry (NaN transforms,
// negative extents already folded by Describe) is not rejected; it propagates
// arithmetically into the output exactly as the capture delivered it.
func BuildRecord(c scan.Capture) Record {
	walls := scan.DescribeAll(c.Walls)
	dims := scan.ComputeRoomDimensions(walls)

	rec := Record{
		Room: RoomExport{
			Width:  dims.Width,
			Length: dims.Length,
			Height: dims.Height,
			Unit:   units.Meters,
		},
		Walls:     exportWalls(c.Walls, walls),
		Openings:  exportOpenings(c),
		Furniture: exportFurniture(c.Objects),
		Surfaces:  exportSurfaces(c.Floors),
		// Floor area is the product of the rounded dimensions, not the raw
		// extents: the backend pins the displayed area to the displayed
		// width and length.
		FloorAreaSqm: scan.Round2(dims.Width * dims.Length),
	}
	return rec
}

func exportWalls(raw []scan.RawSurface, descs []scan.SurfaceDescriptor) []WallExport {
	out := make([]WallExport, len(descs))
	for i, d := range descs {
		out[i] = WallExport{
			ID:          raw[i].ID,
			Width:       scan.Round2(d.HalfWidth * 2),
			Height:      scan.Round2(d.Height),
			Orientation: scan.OrientationDegrees(d),
		}
	}
	return out
}

// exportOpenings flattens the capture's opening groups in the fixed order
// doors, windows, generic openings. Order within each group is preserved;
// groups are never interleaved.
func exportOpenings(c scan.Capture) []OpeningExport {
	out := make([]OpeningExport, 0, len(c.Doors)+len(c.Windows)+len(c.Openings))
	for _, group := range [][]scan.RawSurface{c.Doors, c.Windows, c.Openings} {
		for _, s := range group {
			out = append(out, OpeningExport{
				Type:   ClassifyOpening(s.Category),
				Width:  scan.Round2(math.Abs(float64(s.ExtentX))),
				Height: scan.Round2(math.Abs(float64(s.ExtentY))),
			})
		}
	}
	return out
}

func exportFurniture(objects []scan.RawObject) []FurnitureExport {
	out := make([]FurnitureExport, len(objects))
	for i, o := range objects {
		out[i] = FurnitureExport{
			Type:   ClassifyObject(o.Category),
			Width:  scan.Round2(math.Abs(float64(o.ExtentX))),
			Depth:  scan.Round2(math.Abs(float64(o.ExtentZ))),
			Height: scan.Round2(math.Abs(float64(o.ExtentY))),
		}
	}
	return out
}

func exportSurfaces(floors []scan.RawSurface) []SurfaceExport {
	out := make([]SurfaceExport, len(floors))
	for i := range floors {
		out[i] = SurfaceExport{Type: "floor"}
	}
	return out
}
