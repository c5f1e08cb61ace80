package domain

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Banana", "banana"},
		{"  ЯБЛОКО  ", "яблоко"},
		{"КуРиЦа", "курица"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTodayLayout(t *testing.T) {
	today := Today()
	if len(today) != len(DateLayout) {
		t.Errorf("unexpected date format: %q", today)
	}
}
