package main

import "testing"

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short string untouched", "hello", 10, "hello"},
		{"long string cut", "hello world", 8, "hello w…"},
		{"newlines flattened", "a\nb", 10, "a b"},
		{"cut lands on a rune boundary", "ééééé", 3, "éé…"},
		{"short multibyte untouched", "café", 10, "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := truncate(tt.in, tt.n)
			if got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	if id, err := parseID("42"); err != nil || id != 42 {
		t.Fatalf("parseID(42) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "abc", "-1", "4.2"} {
		if _, err := parseID(bad); err == nil {
			t.Fatalf("parseID(%q) accepted an invalid id", bad)
		}
	}
}
