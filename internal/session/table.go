package session

import "github.com/nestwatch/nestwatch-api/internal/models"

// Table is the append-only store of committed annotation records for one
// session. Insertion order is preserved and mirrors both rendering order and
// sync order. Records are only removed by a full Clear.
type Table struct {
	records []*models.Annotation
}

// NewTable returns an empty session table
func NewTable() *Table {
	return &Table{}
}

// Append adds a record to the end of the table
func (t *Table) Append(record *models.Annotation) {
	t.records = append(t.records, record)
}

// Len returns the number of committed records
func (t *Table) Len() int {
	return len(t.records)
}

// All returns the committed records in insertion order
func (t *Table) All() []*models.Annotation {
	out := make([]*models.Annotation, len(t.records))
	copy(out, t.records)
	return out
}

// Unsynced returns the records not yet confirmed by the external store, in
// insertion order
func (t *Table) Unsynced() []*models.Annotation {
	var out []*models.Annotation
	for _, rec := range t.records {
		if !rec.Synced {
			out = append(out, rec)
		}
	}
	return out
}

// MarkSynced flips the synced flag on exactly the given records. Records are
// matched by identity, not value, so two field-identical annotations are
// never confused.
func (t *Table) MarkSynced(records []*models.Annotation) {
	for _, rec := range records {
		for _, existing := range t.records {
			if existing == rec {
				existing.Synced = true
				break
			}
		}
	}
}

// Clear empties the table unconditionally
func (t *Table) Clear() {
	t.records = nil
}
