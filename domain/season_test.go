package domain

import "testing"

func TestParseSeason_RoundTrip(t *testing.T) {
	cases := []Season{
		{Year: 2024, Month: 1},
		{Year: 2023, Month: 12},
		{Year: 999, Month: 6},
	}
	for _, want := range cases {
		got, err := ParseSeason(want.String())
		if err != nil {
			t.Fatalf("ParseSeason(%q): %v", want.String(), err)
		}
		if got != want {
			t.Fatalf("round trip mismatch: got %v, want %v", got, want)
		}
	}
}

func TestParseSeason_Invalid(t *testing.T) {
	cases := []string{"", "2024", "2024-00", "2024-13", "-5-01", "2024-xx", "abcd-01"}
	for _, raw := range cases {
		if _, err := ParseSeason(raw); err == nil {
			t.Errorf("ParseSeason(%q): expected error", raw)
		}
	}
}

func TestSeason_Previous(t *testing.T) {
	got := Season{Year: 2024, Month: 1}.Previous()
	want := Season{Year: 2023, Month: 12}
	if got != want {
		t.Fatalf("Previous: got %v, want %v", got, want)
	}

	got = Season{Year: 2024, Month: 7}.Previous()
	want = Season{Year: 2024, Month: 6}
	if got != want {
		t.Fatalf("Previous: got %v, want %v", got, want)
	}
}

func TestSeason_String(t *testing.T) {
	s := Season{Year: 2024, Month: 3}
	if s.String() != "2024-03" {
		t.Fatalf("String: got %q, want %q", s.String(), "2024-03")
	}
}

func TestCurrentSeason(t *testing.T) {
	s := CurrentSeason()
	if err := s.validate(); err != nil {
		t.Fatalf("CurrentSeason returned invalid season %v: %v", s, err)
	}
}
