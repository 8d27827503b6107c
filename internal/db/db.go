// Package db provides SQLite persistence for normalized scan export records.
package db

import (
	"compress/gzip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tailscale/tailsql/server/tailsql"
	_ "modernc.org/sqlite"
	"tailscale.com/tsweb"

	"github.com/hippogriff-ai/roomscan/internal/export"
	"github.com/hippogriff-ai/roomscan/internal/monitoring"
	"github.com/hippogriff-ai/roomscan/internal/scan"
	"github.com/hippogriff-ai/roomscan/internal/timeutil"
)

type DB struct {
	*sql.DB
	path  string
	clock timeutil.Clock
}

// NewDB opens (creating if necessary) the SQLite database at path and
// ensures the baseline schema exists. Schema changes beyond the baseline are
// managed by golang-migrate (see migrate.go).
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS scan_exports (
			export_id         TEXT PRIMARY KEY,
			label             TEXT,
			room_width        DOUBLE,
			room_length       DOUBLE,
			room_height       DOUBLE,
			floor_area_sqm    DOUBLE,
			wall_count        BIGINT,
			opening_count     BIGINT,
			furniture_count   BIGINT,
			record_json       TEXT,
			floorplan_json    TEXT,
			created_at_ns     BIGINT
		);
		CREATE INDEX IF NOT EXISTS idx_scan_exports_created
			ON scan_exports (created_at_ns);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{DB: db, path: path, clock: timeutil.RealClock{}}, nil
}

// SetClock replaces the timestamp source. Tests use a MockClock to pin
// created_at_ns values.
func (db *DB) SetClock(c timeutil.Clock) {
	if c == nil {
		c = timeutil.RealClock{}
	}
	db.clock = c
}

// StoredExport is one persisted export record plus its storage metadata.
// Summary columns are denormalized from the record so list queries never
// parse JSON. The floorplan geometry rides along in its own column for the
// by-ID floorplan chart; it is not part of the record's wire shape.
type StoredExport struct {
	ExportID       string         `json:"export_id"`
	Label          string         `json:"label,omitempty"`
	RoomWidth      float64        `json:"room_width"`
	RoomLength     float64        `json:"room_length"`
	RoomHeight     float64        `json:"room_height"`
	FloorAreaSqm   float64        `json:"floor_area_sqm"`
	WallCount      int            `json:"wall_count"`
	OpeningCount   int            `json:"opening_count"`
	FurnitureCount int            `json:"furniture_count"`
	Record         export.Record  `json:"record"`
	Floorplan      scan.Floorplan `json:"-"`
	CreatedAtNs    int64          `json:"created_at_ns"`
}

// InsertExport persists an export record. If stored.ExportID is empty, a new
// UUID is generated. Summary columns are filled from the record.
func (db *DB) InsertExport(stored *StoredExport) error {
	if stored.ExportID == "" {
		stored.ExportID = uuid.New().String()
	}
	if stored.CreatedAtNs == 0 {
		stored.CreatedAtNs = db.clock.Now().UnixNano()
	}
	stored.RoomWidth = stored.Record.Room.Width
	stored.RoomLength = stored.Record.Room.Length
	stored.RoomHeight = stored.Record.Room.Height
	stored.FloorAreaSqm = stored.Record.FloorAreaSqm
	stored.WallCount = len(stored.Record.Walls)
	stored.OpeningCount = len(stored.Record.Openings)
	stored.FurnitureCount = len(stored.Record.Furniture)

	recordJSON, err := json.Marshal(stored.Record)
	if err != nil {
		return fmt.Errorf("marshal export record: %w", err)
	}
	floorplanJSON, err := json.Marshal(stored.Floorplan)
	if err != nil {
		return fmt.Errorf("marshal floorplan: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO scan_exports (
			export_id, label, room_width, room_length, room_height,
			floor_area_sqm, wall_count, opening_count, furniture_count,
			record_json, floorplan_json, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ExportID,
		nullString(stored.Label),
		stored.RoomWidth,
		stored.RoomLength,
		stored.RoomHeight,
		stored.FloorAreaSqm,
		stored.WallCount,
		stored.OpeningCount,
		stored.FurnitureCount,
		string(recordJSON),
		string(floorplanJSON),
		stored.CreatedAtNs,
	)
	if err != nil {
		return fmt.Errorf("insert export: %w", err)
	}
	return nil
}

// GetExport retrieves a stored export, including the full record, by ID.
// Returns sql.ErrNoRows when the ID is unknown.
func (db *DB) GetExport(exportID string) (*StoredExport, error) {
	row := db.QueryRow(`
		SELECT export_id, label, room_width, room_length, room_height,
		       floor_area_sqm, wall_count, opening_count, furniture_count,
		       record_json, floorplan_json, created_at_ns
		FROM scan_exports WHERE export_id = ?`, exportID)

	var stored StoredExport
	var label sql.NullString
	var recordJSON string
	var floorplanJSON sql.NullString
	if err := row.Scan(
		&stored.ExportID,
		&label,
		&stored.RoomWidth,
		&stored.RoomLength,
		&stored.RoomHeight,
		&stored.FloorAreaSqm,
		&stored.WallCount,
		&stored.OpeningCount,
		&stored.FurnitureCount,
		&recordJSON,
		&floorplanJSON,
		&stored.CreatedAtNs,
	); err != nil {
		return nil, err
	}
	stored.Label = label.String

	if err := json.Unmarshal([]byte(recordJSON), &stored.Record); err != nil {
		return nil, fmt.Errorf("unmarshal export record %s: %w", stored.ExportID, err)
	}
	if floorplanJSON.Valid && floorplanJSON.String != "" {
		if err := json.Unmarshal([]byte(floorplanJSON.String), &stored.Floorplan); err != nil {
			return nil, fmt.Errorf("unmarshal floorplan %s: %w", stored.ExportID, err)
		}
	}
	return &stored, nil
}

// ExportSummary is the list-view projection of a stored export.
type ExportSummary struct {
	ExportID       string  `json:"export_id"`
	Label          string  `json:"label,omitempty"`
	RoomWidth      float64 `json:"room_width"`
	RoomLength     float64 `json:"room_length"`
	RoomHeight     float64 `json:"room_height"`
	FloorAreaSqm   float64 `json:"floor_area_sqm"`
	WallCount      int     `json:"wall_count"`
	OpeningCount   int     `json:"opening_count"`
	FurnitureCount int     `json:"furniture_count"`
	CreatedAtNs    int64   `json:"created_at_ns"`
}

// ListExports returns the most recent export summaries, newest first.
func (db *DB) ListExports(limit int) ([]ExportSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`
		SELECT export_id, label, room_width, room_length, room_height,
		       floor_area_sqm, wall_count, opening_count, furniture_count,
		       created_at_ns
		FROM scan_exports ORDER BY created_at_ns DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []ExportSummary
	for rows.Next() {
		var s ExportSummary
		var label sql.NullString
		if err := rows.Scan(
			&s.ExportID,
			&label,
			&s.RoomWidth,
			&s.RoomLength,
			&s.RoomHeight,
			&s.FloorAreaSqm,
			&s.WallCount,
			&s.OpeningCount,
			&s.FurnitureCount,
			&s.CreatedAtNs,
		); err != nil {
			return nil, err
		}
		s.Label = label.String
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// DeleteExport removes a stored export. Deleting an unknown ID is not an
// error; the backend treats deletion as idempotent.
func (db *DB) DeleteExport(exportID string) error {
	_, err := db.Exec(`DELETE FROM scan_exports WHERE export_id = ?`, exportID)
	return err
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// AttachAdminRoutes mounts debugging routes on mux: a tailsql live SQL
// console and an on-demand gzip backup download.
func (db *DB) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		log.Fatalf("failed to create tailsql server: %v", err)
	}
	tsql.SetDB("sqlite://"+db.path, db.DB, &tailsql.DBOptions{
		Label: "Scan exports DB",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	debug.Handle("backup", "Create and download a backup of the database now", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		unixTime := time.Now().Unix()
		backupPath := fmt.Sprintf("backup-%d.db", unixTime)
		if _, err := db.DB.Exec("VACUUM INTO ?", backupPath); err != nil {
			http.Error(w, fmt.Sprintf("Failed to create backup: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", backupPath))
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Encoding", "gzip")

		backupFile, err := os.Open(backupPath)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to open backup file: %v", err), http.StatusInternalServerError)
			return
		}
		defer func() {
			backupFile.Close()
			if err := os.Remove(backupPath); err != nil {
				monitoring.Logf("Failed to remove backup file: %v", err)
			}
		}()

		gzipWriter := gzip.NewWriter(w)
		defer gzipWriter.Close()
		if _, err := io.Copy(gzipWriter, backupFile); err != nil {
			http.Error(w, fmt.Sprintf("Failed to write backup file: %v", err), http.StatusInternalServerError)
			return
		}
	}))
}
