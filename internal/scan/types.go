// Package scan models raw room-scan captures and reduces their surfaces to
// flat geometric descriptors used by the export pipeline.
package scan

// SurfaceCategory is the closed set of planar surface kinds a capture
// session reports.
type SurfaceCategory string

const (
	SurfaceWall    SurfaceCategory = "wall"
	SurfaceFloor   SurfaceCategory = "floor"
	SurfaceDoor    SurfaceCategory = "door"
	SurfaceWindow  SurfaceCategory = "window"
	SurfaceOpening SurfaceCategory = "opening"
)

// ObjectCategory is the closed set of furniture kinds a capture session
// reports for detected objects.
type ObjectCategory string

const (
	ObjectStorage      ObjectCategory = "storage"
	ObjectRefrigerator ObjectCategory = "refrigerator"
	ObjectStove        ObjectCategory = "stove"
	ObjectBed          ObjectCategory = "bed"
	ObjectSink         ObjectCategory = "sink"
	ObjectWasherDryer  ObjectCategory = "washer_dryer"
	ObjectToilet       ObjectCategory = "toilet"
	ObjectBathtub      ObjectCategory = "bathtub"
	ObjectOven         ObjectCategory = "oven"
	ObjectDishwasher   ObjectCategory = "dishwasher"
	ObjectTable        ObjectCategory = "table"
	ObjectSofa         ObjectCategory = "sofa"
	ObjectChair        ObjectCategory = "chair"
	ObjectFireplace    ObjectCategory = "fireplace"
	ObjectTelevision   ObjectCategory = "television"
	ObjectStairs       ObjectCategory = "stairs"
)

// RawSurface is a planar surface as reported by the capture session: a rigid
// transform placing the surface in the world frame plus the surface's local
// planar extents.
//
// Transform is a 4x4 row-major matrix [16]float32: m00,m01,m02,m03, m10,...
// The capture frame convention is X=right, Z=forward, Y=up, so the world
// horizontal plane is X-Z. Extents are in meters and use single precision
// because that is what capture hardware delivers.
type RawSurface struct {
	ID        string          `json:"id,omitempty"`
	Category  SurfaceCategory `json:"category"`
	Transform [16]float32     `json:"transform"`
	ExtentX   float32         `json:"extent_x"`
	ExtentY   float32         `json:"extent_y"`
}

// RawObject is a detected furniture item: a rigid transform plus a local 3D
// bounding extent (meters, single precision).
type RawObject struct {
	ID        string         `json:"id,omitempty"`
	Category  ObjectCategory `json:"category"`
	Transform [16]float32    `json:"transform"`
	ExtentX   float32        `json:"extent_x"`
	ExtentY   float32        `json:"extent_y"`
	ExtentZ   float32        `json:"extent_z"`
}

// Capture is one immutable snapshot of a finished room scan. Surface slices
// keep the capture session's reporting order; the export pipeline preserves
// it.
type Capture struct {
	Walls    []RawSurface `json:"walls"`
	Doors    []RawSurface `json:"doors"`
	Windows  []RawSurface `json:"windows"`
	Openings []RawSurface `json:"openings"`
	Floors   []RawSurface `json:"floors"`
	Objects  []RawObject  `json:"objects"`
}

// SurfaceDescriptor is the flattened, capture-framework-independent geometry
// of a surface: horizontal-plane centre, projected local-axis direction,
// half width along that axis, and vertical extent. All meters, all float64.
// Descriptors are derived once per surface at export time; wall descriptors
// are also persisted as part of a stored export's Floorplan.
type SurfaceDescriptor struct {
	CenterX   float64 `json:"center_x"`
	CenterZ   float64 `json:"center_z"`
	HalfWidth float64 `json:"half_width"`
	DirX      float64 `json:"dir_x"`
	DirZ      float64 `json:"dir_z"`
	Height    float64 `json:"height"`
}
