package insights

import "github.com/unitask/unitask-api/internal/models"

// RecommendAssignee returns the user with the fewest assigned tasks in the
// uploaded dataset. Ties go to the user encountered first in the data.
// Returns the empty string when no rows exist.
func RecommendAssignee(rows []models.TrainingRow) string {
	counts := make(map[string]int, len(rows))
	var order []string
	for _, row := range rows {
		if _, seen := counts[row.AssignedTo]; !seen {
			order = append(order, row.AssignedTo)
		}
		counts[row.AssignedTo]++
	}

	best := ""
	for _, user := range order {
		if best == "" || counts[user] < counts[best] {
			best = user
		}
	}
	return best
}
