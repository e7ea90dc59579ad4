package archive

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nestwatch/nestwatch-api/internal/database"
	"github.com/nestwatch/nestwatch-api/internal/models"
	"github.com/nestwatch/nestwatch-api/internal/session"
)

// Repository is the local-database annotation store. It stands in for the
// shared spreadsheet when the service runs offline: committed annotations are
// appended to a local table and assignments are read from one.
//
// Implements session.Store and assignments.Source.
type Repository struct {
	db *database.DB
}

// NewRepository creates a new archive repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the archive tables
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(
		&models.ArchivedAnnotation{},
		&models.AssignmentRecord{},
	)
}

// AppendRows writes the annotation rows in a single transaction so a batch
// either lands whole or not at all, matching the store contract.
// Implements session.Store.
func (r *Repository) AppendRows(ctx context.Context, rows []session.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	records := make([]models.ArchivedAnnotation, 0, len(rows))
	for _, row := range rows {
		records = append(records, annotationFromRow(row))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
	if err != nil {
		return 0, fmt.Errorf("archiving annotation rows: %w", err)
	}

	return len(records), nil
}

// FetchAssignments reads the assignment table. Implements assignments.Source.
func (r *Repository) FetchAssignments(ctx context.Context) ([]models.Assignment, error) {
	var records []models.AssignmentRecord
	err := r.db.WithContext(ctx).
		Order("site, camera").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("reading archived assignments: %w", err)
	}

	assignments := make([]models.Assignment, 0, len(records))
	for _, rec := range records {
		status := rec.Status
		if status == "" {
			status = models.StatusNotStarted
		}
		assignments = append(assignments, models.Assignment{
			Site:     rec.Site,
			Camera:   rec.Camera,
			Status:   status,
			Reviewer: rec.Reviewer,
			Notes:    rec.Notes,
		})
	}
	return assignments, nil
}

// SaveAssignment inserts or updates the assignment row for a site and camera
func (r *Repository) SaveAssignment(ctx context.Context, assignment models.Assignment) error {
	var existing models.AssignmentRecord
	err := r.db.WithContext(ctx).
		Where("site = ? AND camera = ?", assignment.Site, assignment.Camera).
		First(&existing).Error

	switch {
	case err == nil:
		existing.Status = assignment.Status
		existing.Reviewer = assignment.Reviewer
		existing.Notes = assignment.Notes
		return r.db.WithContext(ctx).Save(&existing).Error
	case err == gorm.ErrRecordNotFound:
		record := models.AssignmentRecord{
			Site:     assignment.Site,
			Camera:   assignment.Camera,
			Status:   assignment.Status,
			Reviewer: assignment.Reviewer,
			Notes:    assignment.Notes,
		}
		return r.db.WithContext(ctx).Create(&record).Error
	default:
		return fmt.Errorf("looking up assignment: %w", err)
	}
}

// annotationFromRow maps a store row onto the archive model
func annotationFromRow(row session.Row) models.ArchivedAnnotation {
	return models.ArchivedAnnotation{
		UUID:           uuid.New().String(),
		Kind:           row["kind"],
		StartRef:       atoiOrZero(row["start_ref"]),
		EndRef:         atoiOrZero(row["end_ref"]),
		StartFilename:  row["start_filename"],
		EndFilename:    row["end_filename"],
		Site:           row["site"],
		CameraID:       row["camera_id"],
		RetrievalDate:  row["retrieval_date"],
		Category:       row["category"],
		Species:        row["species"],
		Behavior:       row["behavior"],
		Reviewer:       row["reviewer"],
		StartTimestamp: row["start_timestamp"],
		EndTimestamp:   row["end_timestamp"],
		RecordedAt:     row["created_at"],
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
