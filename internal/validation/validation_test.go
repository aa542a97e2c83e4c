package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "password exactly 8 characters",
			password: "pass1234",
			wantErr:  false,
		},
		{
			name:     "password too short",
			password: "pass123",
			wantErr:  true,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
		{
			name:     "long password",
			password: "thisIsAVeryLongPasswordThatShouldBeValid123",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid name",
			input:   "Chart Champ",
			wantErr: false,
		},
		{
			name:    "single word",
			input:   "Champ",
			wantErr: false,
		},
		{
			name:    "empty name",
			input:   "",
			wantErr: true,
		},
		{
			name:    "name too short",
			input:   "C",
			wantErr: true,
		},
		{
			name:    "name too long",
			input:   "this display name is way too long to fit on the board",
			wantErr: true,
		},
		{
			name:    "name with apostrophe",
			input:   "O'Brien",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDisplayName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDisplayName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateChartSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{
			name:    "hot 100",
			slug:    "hot-100",
			wantErr: false,
		},
		{
			name:    "country",
			slug:    "country-songs",
			wantErr: false,
		},
		{
			name:    "uppercase rejected",
			slug:    "Hot-100",
			wantErr: true,
		},
		{
			name:    "path traversal rejected",
			slug:    "../etc/passwd",
			wantErr: true,
		},
		{
			name:    "empty slug",
			slug:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChartSlug(tt.slug)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChartSlug(%q) error = %v, wantErr %v", tt.slug, err, tt.wantErr)
			}
		})
	}
}

func TestValidateChartWeek(t *testing.T) {
	tests := []struct {
		name    string
		week    string
		wantErr bool
	}{
		{
			name:    "valid week",
			week:    "1999-07-17",
			wantErr: false,
		},
		{
			name:    "wrong format",
			week:    "07/17/1999",
			wantErr: true,
		},
		{
			name:    "missing day",
			week:    "1999-07",
			wantErr: true,
		},
		{
			name:    "empty week",
			week:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChartWeek(tt.week)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChartWeek(%q) error = %v, wantErr %v", tt.week, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDecade(t *testing.T) {
	tests := []struct {
		name    string
		decade  string
		wantErr bool
	}{
		{
			name:    "nineties",
			decade:  "1990s",
			wantErr: false,
		},
		{
			name:    "twenty tens",
			decade:  "2010s",
			wantErr: false,
		},
		{
			name:    "not a decade",
			decade:  "1995s",
			wantErr: true,
		},
		{
			name:    "bare year",
			decade:  "1990",
			wantErr: true,
		},
		{
			name:    "empty decade",
			decade:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDecade(tt.decade)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDecade(%q) error = %v, wantErr %v", tt.decade, err, tt.wantErr)
			}
		})
	}
}
