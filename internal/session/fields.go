package session

import "time"

// Metadata field names accepted by Fields.Set. These match the annotation
// form: dropdown values persist between saves, while the start_time/end_time
// overrides are cleared after each committed annotation.
const (
	FieldSite          = "site"
	FieldCameraID      = "camera_id"
	FieldRetrievalDate = "retrieval_date"
	FieldCategory      = "category"
	FieldSpecies       = "species"
	FieldBehavior      = "behavior"
	FieldReviewer      = "reviewer"
	FieldStartTime     = "start_time"
	FieldEndTime       = "end_time"
)

// Fields is the per-session annotation form state. Values are stored as
// entered; trimming happens at validation time in the builder.
type Fields struct {
	Site          string `json:"site"`
	CameraID      string `json:"camera_id"`
	RetrievalDate string `json:"retrieval_date"`
	Category      string `json:"category"`
	Species       string `json:"species"`
	Behavior      string `json:"behavior"`
	Reviewer      string `json:"reviewer"`

	// Manual capture-time overrides, used only when the referenced images
	// carry no EXIF timestamp. Format "2006-01-02 15:04:05".
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// NewFields returns form state with the session defaults: retrieval date set
// to today and category set to Seabird
func NewFields(now time.Time) *Fields {
	f := &Fields{}
	f.Reset(now)
	return f
}

// Set updates a single field by name
func (f *Fields) Set(name, value string) error {
	switch name {
	case FieldSite:
		f.Site = value
	case FieldCameraID:
		f.CameraID = value
	case FieldRetrievalDate:
		f.RetrievalDate = value
	case FieldCategory:
		f.Category = value
	case FieldSpecies:
		f.Species = value
	case FieldBehavior:
		f.Behavior = value
	case FieldReviewer:
		f.Reviewer = value
	case FieldStartTime:
		f.StartTime = value
	case FieldEndTime:
		f.EndTime = value
	default:
		return ErrUnknownField
	}
	return nil
}

// ResetOverrides clears the manual timestamp overrides. Called after each
// successful save; the dropdown fields carry over to the next annotation.
func (f *Fields) ResetOverrides() {
	f.StartTime = ""
	f.EndTime = ""
}

// Reset restores all fields to session defaults
func (f *Fields) Reset(now time.Time) {
	*f = Fields{
		RetrievalDate: now.Format("2006-01-02"),
		Category:      "Seabird",
	}
}
