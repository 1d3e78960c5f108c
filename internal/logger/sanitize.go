package logger

import (
	"strings"

	"github.com/google/uuid"
)

// SanitizePath replaces identifier-looking path segments with a placeholder
// so request logs do not accumulate high-cardinality values.
func SanitizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if _, err := uuid.Parse(seg); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
