package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hippogriff-ai/roomscan/internal/export"
	"github.com/hippogriff-ai/roomscan/internal/scan"
	"github.com/hippogriff-ai/roomscan/internal/timeutil"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "exports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRecord() export.Record {
	return export.Record{
		Room: export.RoomExport{Width: 3.50, Length: 4.20, Height: 2.40, Unit: "meters"},
		Walls: []export.WallExport{
			{ID: "w1", Width: 3.50, Height: 2.40, Orientation: 0.00},
			{ID: "w2", Width: 4.20, Height: 2.40, Orientation: 90.00},
		},
		Openings: []export.OpeningExport{
			{Type: "door", Width: 0.90, Height: 2.00},
		},
		Furniture: []export.FurnitureExport{
			{Type: "sofa", Width: 2.10, Depth: 0.95, Height: 0.85},
		},
		Surfaces:     []export.SurfaceExport{{Type: "floor"}},
		FloorAreaSqm: 14.70,
	}
}

func TestInsertExport_GeneratesIDAndTimestamp(t *testing.T) {
	db := newTestDB(t)

	stored := &StoredExport{Record: sampleRecord()}
	require.NoError(t, db.InsertExport(stored))

	assert.NotEmpty(t, stored.ExportID)
	assert.NotZero(t, stored.CreatedAtNs)
	assert.Equal(t, 3.50, stored.RoomWidth)
	assert.Equal(t, 2, stored.WallCount)
	assert.Equal(t, 1, stored.OpeningCount)
	assert.Equal(t, 1, stored.FurnitureCount)
}

func TestInsertExport_UsesClockForTimestamp(t *testing.T) {
	db := newTestDB(t)

	at := time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC)
	db.SetClock(timeutil.NewMockClock(at))

	stored := &StoredExport{Record: sampleRecord()}
	require.NoError(t, db.InsertExport(stored))

	assert.Equal(t, at.UnixNano(), stored.CreatedAtNs)
}

func TestGetExport_RoundTripsRecord(t *testing.T) {
	db := newTestDB(t)

	stored := &StoredExport{Label: "living room", Record: sampleRecord()}
	require.NoError(t, db.InsertExport(stored))

	got, err := db.GetExport(stored.ExportID)
	require.NoError(t, err)

	assert.Equal(t, "living room", got.Label)
	assert.Equal(t, stored.Record, got.Record)
	assert.Equal(t, 14.70, got.FloorAreaSqm)
}

func TestGetExport_RoundTripsFloorplan(t *testing.T) {
	db := newTestDB(t)

	stored := &StoredExport{
		Record: sampleRecord(),
		Floorplan: scan.Floorplan{
			Walls: []scan.SurfaceDescriptor{
				{CenterX: 0, CenterZ: -1.5, HalfWidth: 2, DirX: 1, DirZ: 0, Height: 2.4},
				{CenterX: -2, CenterZ: 0, HalfWidth: 1.5, DirX: 0, DirZ: 1, Height: 2.4},
			},
			Furniture: []scan.PlanPoint{{X: 0.5, Z: -0.25}},
		},
	}
	require.NoError(t, db.InsertExport(stored))

	got, err := db.GetExport(stored.ExportID)
	require.NoError(t, err)
	assert.Equal(t, stored.Floorplan, got.Floorplan)
}

func TestGetExport_UnknownID(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetExport("no-such-export")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListExports_NewestFirstWithLimit(t *testing.T) {
	db := newTestDB(t)

	for i, ns := range []int64{100, 300, 200} {
		stored := &StoredExport{
			ExportID:    []string{"a", "b", "c"}[i],
			Record:      sampleRecord(),
			CreatedAtNs: ns,
		}
		require.NoError(t, db.InsertExport(stored))
	}

	summaries, err := db.ListExports(2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "b", summaries[0].ExportID)
	assert.Equal(t, "c", summaries[1].ExportID)

	all, err := db.ListExports(0) // zero limit falls back to default
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteExport_Idempotent(t *testing.T) {
	db := newTestDB(t)

	stored := &StoredExport{Record: sampleRecord()}
	require.NoError(t, db.InsertExport(stored))

	require.NoError(t, db.DeleteExport(stored.ExportID))
	require.NoError(t, db.DeleteExport(stored.ExportID))

	_, err := db.GetExport(stored.ExportID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMigrations_UpDownVersion(t *testing.T) {
	dir := t.TempDir()
	db, err := NewDB(filepath.Join(dir, "fresh.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.MigrateUp("migrations"))

	version, dirty, err := db.MigrateVersion("migrations")
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)

	require.NoError(t, db.MigrateDown("migrations"))
}

func TestMigrateTo_SpecificVersion(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "versioned.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.MigrateTo("migrations", 1))

	version, dirty, err := db.MigrateVersion("migrations")
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)

	// Already at the target version: ErrNoChange is swallowed.
	require.NoError(t, db.MigrateTo("migrations", 1))
}
