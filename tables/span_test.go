package tables

import (
	"errors"
	"testing"
)

func TestParseSpan(t *testing.T) {
	tests := []struct {
		name    string
		val     string
		want    int
		wantErr bool
	}{
		{"empty", "", 1, false},
		{"one", "1", 1, false},
		{"two", "2", 2, false},
		{"padded", " 3 ", 3, false},
		{"zero", "0", 1, false},
		{"negative", "-4", 1, false},
		{"huge", "100000", MaxSpan, false},
		{"word", "two", 0, true},
		{"unit suffix", "2px", 0, true},
		{"float", "1.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpan(tt.val)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedSpan) {
					t.Errorf("ParseSpan(%q) error = %v, want ErrMalformedSpan", tt.val, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpan(%q) error = %v", tt.val, err)
			}
			if got != tt.want {
				t.Errorf("ParseSpan(%q) = %d, want %d", tt.val, got, tt.want)
			}
		})
	}
}
