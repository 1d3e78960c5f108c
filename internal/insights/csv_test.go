package insights

import (
	"strings"
	"testing"
)

func TestParseTrainingCSV(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"description,priority,assigned_to",
		"Fix login bug,High,alice",
		"Update docs,Low,bob",
		"Refactor cache,Medium,carol",
	}, "\n")

	rows, err := ParseTrainingCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTrainingCSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Description != "Fix login bug" || rows[0].Priority != "High" || rows[0].AssignedTo != "alice" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
}

func TestParseTrainingCSVDropsIncompleteRows(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"description,priority,assigned_to",
		"Fix login bug,High,alice",
		",High,bob",
		"Update docs,,bob",
		"Refactor cache,Medium,",
		"   ,High,carol",
		"Ship release,Low,dave",
	}, "\n")

	rows, err := ParseTrainingCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTrainingCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected incomplete rows dropped, got %d rows", len(rows))
	}
	if rows[0].Description != "Fix login bug" || rows[1].Description != "Ship release" {
		t.Errorf("unexpected surviving rows: %+v", rows)
	}
}

func TestParseTrainingCSVMissingColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		missing string
	}{
		{"no assigned_to", "description,priority", "assigned_to"},
		{"no priority", "description,assigned_to", "priority"},
		{"no description", "priority,assigned_to", "description"},
		{"unrelated header", "a,b,c", "description"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := tt.header + "\nsome,row,data"
			_, err := ParseTrainingCSV(strings.NewReader(input))
			if err == nil {
				t.Fatal("expected error for missing columns")
			}
			if !strings.Contains(err.Error(), tt.missing) {
				t.Errorf("error %q does not name missing column %q", err, tt.missing)
			}
		})
	}
}

func TestParseTrainingCSVIgnoresExtraColumns(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"id,description,estimated_hours,priority,assigned_to",
		"1,Fix login bug,4,High,alice",
	}, "\n")

	rows, err := ParseTrainingCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTrainingCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Description != "Fix login bug" || rows[0].AssignedTo != "alice" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestParseTrainingCSVEmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := ParseTrainingCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}

	rows, err := ParseTrainingCSV(strings.NewReader("description,priority,assigned_to\n"))
	if err != nil {
		t.Fatalf("header-only CSV should parse: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(rows))
	}
}

func TestParseTrainingCSVShortRecords(t *testing.T) {
	t.Parallel()

	// Second data row is shorter than the header; missing fields read empty
	input := strings.Join([]string{
		"description,priority,assigned_to",
		"Fix login bug,High,alice",
		"Update docs,Low",
	}, "\n")

	rows, err := ParseTrainingCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTrainingCSV: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected short record dropped, got %d rows", len(rows))
	}
}
