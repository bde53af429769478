package repositories

import "testing"

func TestIDArrayQuotesElements(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"m1", "m2"}, `{"m1","m2"}`},
		{[]string{"lawn, garden"}, `{"lawn, garden"}`},
		{[]string{"brace}tag", "{open"}, `{"brace}tag","{open"}`},
		{[]string{`quoted "tag"`}, `{"quoted \"tag\""}`},
		{[]string{`back\slash`}, `{"back\\slash"}`},
		{nil, "{}"},
	}
	for _, c := range cases {
		if got := idArray(c.in); got != c.want {
			t.Fatalf("idArray(%v) = %s, want %s", c.in, got, c.want)
		}
	}
}
