package models

import "gorm.io/gorm"

// ArchivedAnnotation is the local-database form of a committed annotation,
// written by the archive store backend as a stand-in for the shared
// spreadsheet.
type ArchivedAnnotation struct {
	gorm.Model
	UUID           string `gorm:"uniqueIndex;not null" json:"uuid"`
	Kind           string `gorm:"not null;index" json:"kind"`
	StartRef       int    `json:"start_ref"`
	EndRef         int    `json:"end_ref"`
	StartFilename  string `json:"start_filename"`
	EndFilename    string `json:"end_filename"`
	Site           string `gorm:"index" json:"site"`
	CameraID       string `gorm:"index" json:"camera_id"`
	RetrievalDate  string `json:"retrieval_date"`
	Category       string `json:"category"`
	Species        string `json:"species"`
	Behavior       string `json:"behavior"`
	Reviewer       string `gorm:"index" json:"reviewer"`
	StartTimestamp string `json:"start_timestamp"`
	EndTimestamp   string `json:"end_timestamp"`
	RecordedAt     string `json:"recorded_at"`
}

// TableName returns the table name for the ArchivedAnnotation model
func (ArchivedAnnotation) TableName() string {
	return "archived_annotations"
}

// AssignmentRecord is the local-database form of a camera review assignment,
// used by the archive backend in place of the assignments spreadsheet.
type AssignmentRecord struct {
	gorm.Model
	Site     string `gorm:"index;not null" json:"site"`
	Camera   string `gorm:"index;not null" json:"camera"`
	Status   string `gorm:"index" json:"status"`
	Reviewer string `gorm:"index" json:"reviewer"`
	Notes    string `json:"notes"`
}

// TableName returns the table name for the AssignmentRecord model
func (AssignmentRecord) TableName() string {
	return "assignment_records"
}
