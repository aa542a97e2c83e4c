package service

import "testing"

func TestDecadeRange(t *testing.T) {
	tests := []struct {
		name      string
		decade    string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "nineties",
			decade:    "1990s",
			wantStart: "1990-01-01",
			wantEnd:   "2000-01-01",
		},
		{
			name:      "twenty tens",
			decade:    "2010s",
			wantStart: "2010-01-01",
			wantEnd:   "2020-01-01",
		},
		{
			name:      "sixties",
			decade:    "1960s",
			wantStart: "1960-01-01",
			wantEnd:   "1970-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := decadeRange(tt.decade)
			if err != nil {
				t.Fatalf("decadeRange(%q) error = %v", tt.decade, err)
			}
			if start != tt.wantStart {
				t.Errorf("start = %q, want %q", start, tt.wantStart)
			}
			if end != tt.wantEnd {
				t.Errorf("end = %q, want %q", end, tt.wantEnd)
			}
		})
	}
}
