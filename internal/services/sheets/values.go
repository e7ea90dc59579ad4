package sheets

import (
	"strings"

	"github.com/nestwatch/nestwatch-api/internal/models"
	"github.com/nestwatch/nestwatch-api/internal/session"
)

// rowValues flattens an annotation row into the sheet's column order
func rowValues(row session.Row) []interface{} {
	values := make([]interface{}, 0, len(session.Columns))
	for _, col := range session.Columns {
		values = append(values, row[col])
	}
	return values
}

// assignmentsFromValues parses the raw sheet cells into assignments. The
// first row is treated as a header when it looks like one; rows with no site
// and no camera are skipped.
func assignmentsFromValues(values [][]interface{}) []models.Assignment {
	assignments := make([]models.Assignment, 0, len(values))

	for i, cells := range values {
		if i == 0 && isHeaderRow(cells) {
			continue
		}

		a := models.Assignment{
			Site:     cellString(cells, 0),
			Camera:   cellString(cells, 1),
			Status:   cellString(cells, 2),
			Reviewer: cellString(cells, 3),
			Notes:    cellString(cells, 4),
		}
		if a.Site == "" && a.Camera == "" {
			continue
		}
		if a.Status == "" {
			a.Status = models.StatusNotStarted
		}
		assignments = append(assignments, a)
	}

	return assignments
}

// isHeaderRow reports whether the first sheet row carries column labels
// rather than data
func isHeaderRow(cells []interface{}) bool {
	first := strings.ToLower(cellString(cells, 0))
	return first == "site" || first == "location"
}

// cellString returns the cell at idx as a trimmed string, tolerating short rows
func cellString(cells []interface{}, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	s, ok := cells[idx].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
