// file: internal/store/classify_test.go
// version: 1.1.0
// guid: 8e6f4b0c-3d5a-4e7f-9b1c-2e0d9f8a7b6c

package store

import "testing"

func TestClassifyManagement(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		// Canonical labels pass through their rules.
		{"Government", "Government"},
		{"GOVT", "Government"},
		{"Dept. of Education", "Government"},
		{"Education Department", "Government"},
		{"Private Aided", "Private Aided"},
		{"Pvt. Aided (recognized)", "Private Aided"},
		{"Private Unaided", "Private Unaided"},
		{"Unaided", "Private Unaided"},
		{"Govt Aided", "Government Aided"},
		{"Aided by State", "Government Aided"},
		{"Central Govt", "Central Government"},
		{"Central Government", "Central Government"},
		{"Local Body", "Local Body"},
		{"Local Body School", "Local Body"},

		// Precedence: private+aided must not fall through to the
		// generic aided rule, and unaided must not match aided.
		{"Aided Private School", "Private Aided"},
		{"Pvt Unaided School", "Private Unaided"},

		// Blank-ish inputs.
		{"", "Not available"},
		{"   ", "Not available"},
		{"nan", "Not available"},
		{"NaN", "Not available"},
		{"-", "Not available"},

		// Unmatched labels echo title-cased.
		{"tribal welfare", "Tribal Welfare"},
		{"  madrasa   recognized ", "Madrasa Recognized"},
	}

	for _, tt := range tests {
		if got := ClassifyManagement(tt.raw); got != tt.want {
			t.Errorf("ClassifyManagement(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestClassifyManagementDeterministic(t *testing.T) {
	inputs := []string{"Govt", "Pvt Aided", "Unaided", "Local Body", "something else"}
	for _, in := range inputs {
		first := ClassifyManagement(in)
		for i := 0; i < 3; i++ {
			if got := ClassifyManagement(in); got != first {
				t.Fatalf("ClassifyManagement(%q) unstable: %q then %q", in, first, got)
			}
		}
	}
}
