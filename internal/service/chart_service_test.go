package service

import (
	"errors"
	"testing"

	"trackclash/internal/validation"
)

func TestArchivedWeekValidation(t *testing.T) {
	s := NewChartService(nil, nil)

	tests := []struct {
		name string
		slug string
		week string
	}{
		{"bad slug", "Hot 100", "2020-01-04"},
		{"path traversal slug", "../etc", "2020-01-04"},
		{"bad week", "hot-100", "jan-2020"},
		{"empty week", "hot-100", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ArchivedWeek(tt.slug, tt.week)
			var ve validation.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("ArchivedWeek(%q, %q) = %v, want validation error", tt.slug, tt.week, err)
			}
		})
	}
}
