package insights

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/unitask/unitask-api/internal/models"
)

// Required columns of an uploaded training dataset. Additional columns are
// ignored.
const (
	columnDescription = "description"
	columnPriority    = "priority"
	columnAssignedTo  = "assigned_to"
)

// ParseTrainingCSV reads an uploaded CSV into training rows. A missing
// required column is fatal; rows with empty required fields are dropped
// silently.
func ParseTrainingCSV(r io.Reader) ([]models.TrainingRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range []string{columnDescription, columnPriority, columnAssignedTo} {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV is missing required columns: %s", strings.Join(missing, ", "))
	}

	descIdx := index[columnDescription]
	prioIdx := index[columnPriority]
	userIdx := index[columnAssignedTo]

	var rows []models.TrainingRow
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed rows are dropped, not reported
			continue
		}

		row := models.TrainingRow{
			Description: fieldAt(rec, descIdx),
			Priority:    fieldAt(rec, prioIdx),
			AssignedTo:  fieldAt(rec, userIdx),
		}
		if row.Description == "" || row.Priority == "" || row.AssignedTo == "" {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func fieldAt(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
