package builder

import "testing"

func TestParseVersion(t *testing.T) {
	t.Parallel()

	cases := map[string]Version{
		"14.3.558.106":   {Major: 14, Minor: 3, Patch: 558, Build: 106},
		"14.3":           {Major: 14, Minor: 3},
		"13":             {Major: 13},
		"":               {},
		"14.x.5":         {Major: 14, Patch: 5},
		"1.2.3.4.5.6":    {Major: 1, Minor: 2, Patch: 3, Build: 4},
		" 14.24.1 ":      {Major: 14, Minor: 24, Patch: 1},
		"Version 7.1.-2": {Minor: 1},
	}
	for raw, want := range cases {
		if got := ParseVersion(raw); got != want {
			t.Fatalf("ParseVersion(%q) = %+v, want %+v", raw, got, want)
		}
	}
}
