package service

import (
	"errors"
	"strings"
	"testing"

	"trackclash/internal/validation"
)

func TestUpdateDisplayNameValidation(t *testing.T) {
	s := NewAuthService(nil, nil, 0)

	for _, name := range []string{"", "x", strings.Repeat("a", 41)} {
		err := s.UpdateDisplayName(1, name)
		var ve validation.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("UpdateDisplayName(%q) = %v, want validation error", name, err)
		}
	}
}
