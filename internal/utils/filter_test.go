package utils

import "testing"

func TestIsValidInput(t *testing.T) {
	tests := []struct {
		prefix string
		want   bool
	}{
		{"foo", true},
		{"foo_bar", true},
		{"_private", true},
		{"foo2", true},
		{"empty?", true},
		{"save!", true},
		{"name=", true},
		{"", false},
		{"2fast", false},
		{"?early", false},
		{"foo?bar", false},
		{"foo bar", false},
		{"foo-bar", false},
		{"a.b", false},
		{"+", false},
	}
	for _, tc := range tests {
		if got := IsValidInput(tc.prefix); got != tc.want {
			t.Errorf("IsValidInput(%q) = %v, want %v", tc.prefix, got, tc.want)
		}
	}
}
