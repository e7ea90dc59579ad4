package session

import (
	"context"
	"strconv"
	"time"

	"github.com/nestwatch/nestwatch-api/internal/models"
)

// Row is one annotation flattened to the external store's column set
type Row map[string]string

// Columns is the row serialization order expected by the external store
var Columns = []string{
	"kind",
	"start_ref",
	"end_ref",
	"start_filename",
	"end_filename",
	"site",
	"camera_id",
	"retrieval_date",
	"category",
	"species",
	"behavior",
	"reviewer",
	"start_timestamp",
	"end_timestamp",
	"created_at",
}

// Store is the external annotation store. AppendRows is assumed all-or-nothing
// from the client's perspective: it either confirms every submitted row or
// fails the whole batch.
type Store interface {
	AppendRows(ctx context.Context, rows []Row) (int, error)
}

// SyncResult reports a completed sync
type SyncResult struct {
	Appended int       `json:"appended"`
	SyncedAt time.Time `json:"synced_at"`
}

// RecordRow serializes one annotation to the store's row format
func RecordRow(rec *models.Annotation) Row {
	return Row{
		"kind":            string(rec.Kind),
		"start_ref":       strconv.Itoa(rec.StartRef),
		"end_ref":         strconv.Itoa(rec.EndRef),
		"start_filename":  rec.StartFilename,
		"end_filename":    rec.EndFilename,
		"site":            rec.Site,
		"camera_id":       rec.CameraID,
		"retrieval_date":  rec.RetrievalDate,
		"category":        rec.Category,
		"species":         rec.Species,
		"behavior":        rec.Behavior,
		"reviewer":        rec.Reviewer,
		"start_timestamp": rec.StartTimestamp,
		"end_timestamp":   rec.EndTimestamp,
		"created_at":      rec.CreatedAt.Format(time.RFC3339),
	}
}

// Sync pushes the table's unsynced records to the external store. The batch
// is atomic: records are marked synced only after the store confirms the
// append, and on failure nothing is marked, so a retry resubmits the
// identical set. An empty unsynced set returns immediately without
// contacting the store.
func Sync(ctx context.Context, table *Table, store Store) (SyncResult, error) {
	batch := table.Unsynced()
	if len(batch) == 0 {
		return SyncResult{Appended: 0, SyncedAt: time.Now().UTC()}, nil
	}

	rows := make([]Row, len(batch))
	for i, rec := range batch {
		rows[i] = RecordRow(rec)
	}

	count, err := store.AppendRows(ctx, rows)
	if err != nil {
		return SyncResult{}, SyncError{Cause: err}
	}

	table.MarkSynced(batch)
	return SyncResult{Appended: count, SyncedAt: time.Now().UTC()}, nil
}
