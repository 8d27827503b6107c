package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hippogriff-ai/roomscan/internal/scan"
)

// wallSamplePoints is how many points are plotted along each wall segment
// before the global plotMaxPoints budget forces a coarser stride.
const wallSamplePoints = 40

// renderFloorplan previews the top-down plot (HTML) of a capture that has
// not been stored: POST the same capture JSON the ingest endpoint takes.
// Stored scans are served by ID via GET /scans/{id}/floorplan instead.
func (s *Server) renderFloorplan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Content-Type", "application/json")
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var capture scan.Capture
	body := http.MaxBytesReader(w, r.Body, maxCaptureBody)
	if err := json.NewDecoder(body).Decode(&capture); err != nil {
		w.Header().Set("Content-Type", "application/json")
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid capture payload: %v", err))
		return
	}

	s.writeFloorplanChart(w, scan.BuildFloorplan(capture))
}

// storedFloorplan serves the floorplan chart for a stored export from the
// geometry persisted at ingest time.
func (s *Server) storedFloorplan(w http.ResponseWriter, id string) {
	stored, err := s.db.GetExport(id)
	if errors.Is(err, sql.ErrNoRows) {
		w.Header().Set("Content-Type", "application/json")
		s.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("No export with id %q", id))
		return
	}
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to load export: %v", err))
		return
	}

	s.writeFloorplanChart(w, stored.Floorplan)
}

// writeFloorplanChart renders a floorplan as a go-echarts scatter chart: one
// sampled point series per wall footprint plus a series of furniture
// centres. Debugging-only, to eyeball placement without a client app.
func (s *Server) writeFloorplanChart(w http.ResponseWriter, fp scan.Floorplan) {
	if len(fp.Walls) == 0 {
		w.Header().Set("Content-Type", "application/json")
		s.writeJSONError(w, http.StatusBadRequest, "No walls to plot")
		return
	}

	maxPoints := s.plotMaxPoints
	if maxPoints <= 0 {
		maxPoints = 2000
	}
	perWall := wallSamplePoints
	if len(fp.Walls)*perWall > maxPoints {
		perWall = maxPoints / len(fp.Walls)
		if perWall < 2 {
			perWall = 2
		}
	}

	wallData := make([]opts.ScatterData, 0, len(fp.Walls)*perWall)
	maxAbs := 0.0
	for _, d := range fp.Walls {
		// Sample along the segment center ± halfWidth*direction.
		for i := 0; i < perWall; i++ {
			t := -1.0 + 2.0*float64(i)/float64(perWall-1)
			x := d.CenterX + t*d.HalfWidth*d.DirX
			z := d.CenterZ + t*d.HalfWidth*d.DirZ
			if math.Abs(x) > maxAbs {
				maxAbs = math.Abs(x)
			}
			if math.Abs(z) > maxAbs {
				maxAbs = math.Abs(z)
			}
			wallData = append(wallData, opts.ScatterData{Value: []interface{}{x, z}})
		}
	}

	furnitureData := make([]opts.ScatterData, 0, len(fp.Furniture))
	for _, p := range fp.Furniture {
		if math.Abs(p.X) > maxAbs {
			maxAbs = math.Abs(p.X)
		}
		if math.Abs(p.Z) > maxAbs {
			maxAbs = math.Abs(p.Z)
		}
		furnitureData = append(furnitureData, opts.ScatterData{Value: []interface{}{p.X, p.Z}})
	}

	// Small padding so edge points stay visible; symmetric ranges force a
	// square plot.
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Room Floorplan (Top-Down)", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Room Floorplan", Subtitle: fmt.Sprintf("walls=%d objects=%d points=%d", len(fp.Walls), len(fp.Furniture), len(wallData))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Z (m)", NameLocation: "middle", NameGap: 30}),
	)

	scatter.AddSeries("walls", wallData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	if len(furnitureData) > 0 {
		scatter.AddSeries("furniture", furnitureData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))
	}

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		w.Header().Set("Content-Type", "application/json")
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
