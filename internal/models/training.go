package models

// TrainingRow is one usable row from an uploaded training dataset.
// Rows missing any of the three required fields are dropped during
// ingestion and never reach this type.
type TrainingRow struct {
	Description string `json:"description"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assigned_to"`
}
