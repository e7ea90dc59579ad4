package models

// Assignment statuses as they appear in the assignments overview sheet
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Assignment is one row of the camera-assignments overview: which reviewer is
// working through which camera deployment, and how far along they are.
type Assignment struct {
	Site     string `json:"site"`
	Camera   string `json:"camera"`
	Status   string `json:"status"`
	Reviewer string `json:"reviewer"`
	Notes    string `json:"notes,omitempty"`
}
