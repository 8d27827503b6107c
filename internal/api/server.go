// Package api exposes the scan-export pipeline over HTTP: capture ingest,
// stored record retrieval, and debugging views.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hippogriff-ai/roomscan/internal/db"
	"github.com/hippogriff-ai/roomscan/internal/export"
	"github.com/hippogriff-ai/roomscan/internal/scan"
	"github.com/hippogriff-ai/roomscan/internal/units"
)

// ANSI escape codes for request log colouring
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// maxCaptureBody bounds ingest payloads. A full scan of a large room stays
// well under this.
const maxCaptureBody = 4 * 1024 * 1024

type Server struct {
	db            *db.DB
	units         string
	plotMaxPoints int
}

func NewServer(database *db.DB, displayUnits string, plotMaxPoints int) *Server {
	if !units.IsValid(displayUnits) {
		displayUnits = units.Meters
	}
	return &Server{
		db:            database,
		units:         displayUnits,
		plotMaxPoints: plotMaxPoints,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/scans", s.handleScans)
	mux.HandleFunc("/scans/", s.handleScanByID)
	mux.HandleFunc("/floorplan", s.renderFloorplan)
	mux.HandleFunc("/config", s.showConfig)
	return mux
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleScans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.ingestScan(w, r)
	case http.MethodGet:
		s.listExports(w, r)
	default:
		w.Header().Set("Content-Type", "application/json")
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// ingestScan decodes one capture snapshot, runs the export pipeline, and
// persists the resulting record. The pipeline itself cannot fail; only
// decoding and storage can.
func (s *Server) ingestScan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var capture scan.Capture
	body := http.MaxBytesReader(w, r.Body, maxCaptureBody)
	if err := json.NewDecoder(body).Decode(&capture); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid capture payload: %v", err))
		return
	}

	stored := &db.StoredExport{
		Label:     r.URL.Query().Get("label"),
		Record:    export.BuildRecord(capture),
		Floorplan: scan.BuildFloorplan(capture),
	}
	if err := s.db.InsertExport(stored); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to store export: %v", err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(stored); err != nil {
		log.Printf("failed to write export response: %v", err)
	}
}

func (s *Server) listExports(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
		limit = parsed
	}

	displayUnits := s.units
	if u := r.URL.Query().Get("units"); u != "" {
		if !units.IsValid(u) {
			s.writeJSONError(w, http.StatusBadRequest,
				fmt.Sprintf("Invalid 'units' parameter, expected one of: %s", units.GetValidUnitsString()))
			return
		}
		displayUnits = u
	}

	summaries, err := s.db.ListExports(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to list exports: %v", err))
		return
	}

	// Display conversion only; stored records stay in meters.
	for i := range summaries {
		summaries[i].RoomWidth = units.ConvertLength(summaries[i].RoomWidth, displayUnits)
		summaries[i].RoomLength = units.ConvertLength(summaries[i].RoomLength, displayUnits)
		summaries[i].RoomHeight = units.ConvertLength(summaries[i].RoomHeight, displayUnits)
	}

	if summaries == nil {
		summaries = []db.ExportSummary{}
	}
	if err := json.NewEncoder(w).Encode(summaries); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write export list")
	}
}

func (s *Server) handleScanByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/scans/")

	// GET /scans/{id}/floorplan serves the chart for a stored scan.
	if sub, ok := strings.CutSuffix(id, "/floorplan"); ok && sub != "" && !strings.Contains(sub, "/") {
		if r.Method != http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		s.storedFloorplan(w, sub)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if id == "" || strings.Contains(id, "/") {
		s.writeJSONError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		stored, err := s.db.GetExport(id)
		if errors.Is(err, sql.ErrNoRows) {
			s.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("No export with id %q", id))
			return
		}
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError,
				fmt.Sprintf("Failed to load export: %v", err))
			return
		}
		if err := json.NewEncoder(w).Encode(stored); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, "Failed to write export")
		}
	case http.MethodDelete:
		if err := s.db.DeleteExport(id); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError,
				fmt.Sprintf("Failed to delete export: %v", err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	config := map[string]interface{}{
		"units":       s.units,
		"valid_units": units.ValidUnits,
	}
	if err := json.NewEncoder(w).Encode(config); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write config")
	}
}
