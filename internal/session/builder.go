package session

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nestwatch/nestwatch-api/internal/models"
)

// TimestampLayout is the wire format for capture times, matching the
// "YYYY-MM-DD HH:MM:SS" convention of the annotation sheet
const TimestampLayout = "2006-01-02 15:04:05"

// requiredFields are validated in form order; the first empty one wins
var requiredFields = []string{
	FieldSite,
	FieldCameraID,
	FieldRetrievalDate,
	FieldCategory,
	FieldSpecies,
	FieldBehavior,
	FieldReviewer,
}

// BuildAnnotation validates the marks and metadata and, on success, returns a
// new unsynced annotation record. The builder is pure: it never mutates the
// marking state, the fields, or the collection, and the caller is responsible
// for appending the record to the session table and resetting the marks.
func BuildAnnotation(marking *Marking, fields *Fields, coll *Collection, now time.Time) (*models.Annotation, error) {
	if marking.Mode() == ModeNone {
		return nil, ErrNoMarkSelected
	}

	for _, name := range requiredFields {
		if strings.TrimSpace(fieldValue(fields, name)) == "" {
			return nil, MissingFieldError{Field: name}
		}
	}

	record := &models.Annotation{
		UUID:          uuid.New().String(),
		Site:          strings.TrimSpace(fields.Site),
		CameraID:      strings.TrimSpace(fields.CameraID),
		RetrievalDate: strings.TrimSpace(fields.RetrievalDate),
		Category:      strings.TrimSpace(fields.Category),
		Species:       strings.TrimSpace(fields.Species),
		Behavior:      strings.TrimSpace(fields.Behavior),
		Reviewer:      strings.TrimSpace(fields.Reviewer),
		CreatedAt:     now.UTC(),
		Synced:        false,
	}

	if single, ok := marking.SingleIndex(); ok {
		img, err := coll.Get(single)
		if err != nil {
			return nil, err
		}
		ts := captureTime(coll, single, fields.StartTime)

		record.Kind = models.KindSingle
		record.StartRef = single
		record.EndRef = single
		record.StartFilename = img.Filename
		record.EndFilename = img.Filename
		record.StartTimestamp = ts
		record.EndTimestamp = ts
		return record, nil
	}

	// Sequence mode. The marking state machine already enforces ordering and
	// the same-image rule; the builder re-checks so a record can never be
	// committed from inconsistent marks.
	start, startSet := marking.StartIndex()
	end, endSet := marking.EndIndex()
	if !startSet || !endSet || end < start {
		return nil, ErrIncompleteSequence
	}
	if end == start {
		return nil, ErrSameImageSequence
	}

	startImg, err := coll.Get(start)
	if err != nil {
		return nil, err
	}
	endImg, err := coll.Get(end)
	if err != nil {
		return nil, err
	}

	record.Kind = models.KindSequence
	record.StartRef = start
	record.EndRef = end
	record.StartFilename = startImg.Filename
	record.EndFilename = endImg.Filename
	record.StartTimestamp = captureTime(coll, start, fields.StartTime)
	record.EndTimestamp = captureTime(coll, end, fields.EndTime)
	return record, nil
}

// captureTime resolves the capture time for one referenced image: the
// collection's memoized extraction when present, otherwise the manual
// override, otherwise empty.
func captureTime(coll *Collection, ordinal int, override string) string {
	if t, ok, err := coll.Timestamp(ordinal); err == nil && ok {
		return t.Format(TimestampLayout)
	}
	return strings.TrimSpace(override)
}

func fieldValue(f *Fields, name string) string {
	switch name {
	case FieldSite:
		return f.Site
	case FieldCameraID:
		return f.CameraID
	case FieldRetrievalDate:
		return f.RetrievalDate
	case FieldCategory:
		return f.Category
	case FieldSpecies:
		return f.Species
	case FieldBehavior:
		return f.Behavior
	case FieldReviewer:
		return f.Reviewer
	default:
		return ""
	}
}
