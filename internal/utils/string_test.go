package utils

import "testing"

func TestEqualFold(t *testing.T) {
	tests := []struct {
		a, b rune
		want bool
	}{
		{'a', 'a', true},
		{'a', 'A', true},
		{'Z', 'z', true},
		{'a', 'b', false},
		{'_', '_', true},
		{'É', 'é', true},
		{'é', 'f', false},
	}
	for _, tc := range tests {
		if got := EqualFold(tc.a, tc.b); got != tc.want {
			t.Errorf("EqualFold(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestFormatWithCommas(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, tc := range tests {
		if got := FormatWithCommas(tc.n); got != tc.want {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
