package models

import "testing"

func TestWaitlistRangeWidth(t *testing.T) {
	cases := []struct {
		r     WaitlistRange
		width int
	}{
		{WaitlistRange{Start: 1, End: 1}, 1},
		{WaitlistRange{Start: 1, End: 3}, 3},
		{WaitlistRange{Start: 4, End: 5}, 2},
	}
	for _, c := range cases {
		if got := c.r.Width(); got != c.width {
			t.Fatalf("width of %s: got %d want %d", c.r, got, c.width)
		}
	}
}

func TestWaitlistRangeRoundTrip(t *testing.T) {
	r := WaitlistRange{Start: 4, End: 5}
	if r.String() != "4-5" {
		t.Fatalf("wrong display form: %q", r.String())
	}
	parsed, err := ParseWaitlistRange("4-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != r {
		t.Fatalf("round trip mismatch: %+v", parsed)
	}
}

func TestParseWaitlistRangeRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "3", "a-b", "5-4", "0-2", "-1-2"} {
		if _, err := ParseWaitlistRange(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}
