package logger

import "testing"

func TestSanitizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"uuid segment replaced", "/api/v1/tasks/550e8400-e29b-41d4-a716-446655440000", "/api/v1/tasks/:id"},
		{"no identifiers", "/api/v1/dashboard", "/api/v1/dashboard"},
		{"root", "/", "/"},
		{"multiple uuids", "/a/550e8400-e29b-41d4-a716-446655440000/b/550e8400-e29b-41d4-a716-446655440001", "/a/:id/b/:id"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizePath(tt.path); got != tt.want {
				t.Errorf("SanitizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
