package services

import "testing"

func TestSanitizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(403) 555-0134", "+14035550134"},
		{"403-555-0134", "+14035550134"},
		{"14035550134", "+14035550134"},
		{"+1 403 555 0134", "+14035550134"},
		{"+44 20 7946 0958", "+442079460958"},
		{"555-0134", ""},
		{"not a phone", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := SanitizePhone(c.in); got != c.want {
			t.Fatalf("SanitizePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"jordan@example.com", "jordan@example.com"},
		{"  jordan@example.com  ", "jordan@example.com"},
		{"jordan@", ""},
		{"@example.com", ""},
		{"jordan example.com", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := SanitizeEmail(c.in); got != c.want {
			t.Fatalf("SanitizeEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
