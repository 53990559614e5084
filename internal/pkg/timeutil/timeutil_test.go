package timeutil

import (
	"fmt"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestParseHM(t *testing.T) {
	cases := []struct {
		input string
		want  *int
	}{
		{"09:00", intPtr(540)},
		{"9:05", intPtr(545)},
		{"00:00", intPtr(0)},
		{"23:59", intPtr(1439)},
		{"-01:30", intPtr(-90)},
		{" 08:15 ", intPtr(495)},
		{"", nil},
		{"9", nil},
		{"9:5:0", nil},
		{"ab:cd", nil},
		{"12:-5", nil},
	}
	for _, c := range cases {
		got := ParseHM(c.input)
		if (got == nil) != (c.want == nil) {
			t.Errorf("ParseHM(%q) = %v, want %v", c.input, got, c.want)
			continue
		}
		if got != nil && *got != *c.want {
			t.Errorf("ParseHM(%q) = %d, want %d", c.input, *got, *c.want)
		}
	}
}

func TestFormatHM(t *testing.T) {
	cases := []struct {
		input *int
		want  string
	}{
		{nil, "--:--"},
		{intPtr(0), "00:00"},
		{intPtr(540), "09:00"},
		{intPtr(1439), "23:59"},
		{intPtr(-90), "-01:30"},
	}
	for _, c := range cases {
		if got := FormatHM(c.input); got != c.want {
			t.Errorf("FormatHM(%v) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestFormatHMSigned(t *testing.T) {
	cases := []struct {
		input int
		want  string
	}{
		{0, "00:00"},
		{120, "+02:00"},
		{-600, "-10:00"},
	}
	for _, c := range cases {
		if got := FormatHMSigned(c.input); got != c.want {
			t.Errorf("FormatHMSigned(%d) = %q, want %q", c.input, got, c.want)
		}
	}
}

// Round-trip: parsing a formatted value yields the original minutes.
func TestParseFormatRoundTrip(t *testing.T) {
	for _, m := range []int{-1439, -90, -1, 0, 1, 59, 60, 540, 1439, 2000} {
		got := ParseHM(FormatHM(intPtr(m)))
		if got == nil || *got != m {
			t.Errorf("round trip of %d failed: got %v", m, got)
		}
	}
}

func TestNormalizeEnd(t *testing.T) {
	if got := NormalizeEnd(540, 1110); got != 1110 {
		t.Errorf("NormalizeEnd(540, 1110) = %d, want 1110", got)
	}
	// 22:00 -> 06:00 crosses midnight
	if got := NormalizeEnd(1320, 360); got != 1800 {
		t.Errorf("NormalizeEnd(1320, 360) = %d, want 1800", got)
	}
	if got := NormalizeEnd(0, 0); got != 0 {
		t.Errorf("NormalizeEnd(0, 0) = %d, want 0", got)
	}
}

func TestWorkedMinutes(t *testing.T) {
	cases := []struct {
		name     string
		start    *int
		end      *int
		breakMin int
		want     *int
	}{
		{"normal day", intPtr(540), intPtr(1110), 30, intPtr(540)},
		{"overnight", intPtr(1320), intPtr(360), 0, intPtr(480)},
		{"break exceeds span", intPtr(540), intPtr(600), 120, intPtr(0)},
		{"missing start", nil, intPtr(600), 0, nil},
		{"missing end", intPtr(540), nil, 0, nil},
		{"zero span", intPtr(540), intPtr(540), 0, intPtr(0)},
	}
	for _, c := range cases {
		got := WorkedMinutes(c.start, c.end, c.breakMin)
		if (got == nil) != (c.want == nil) {
			t.Errorf("%s: WorkedMinutes = %v, want %v", c.name, got, c.want)
			continue
		}
		if got != nil && *got != *c.want {
			t.Errorf("%s: WorkedMinutes = %d, want %d", c.name, *got, *c.want)
		}
	}
}

// Overnight spans never produce a negative delta before the clamp.
func TestWorkedMinutesNeverNegative(t *testing.T) {
	for start := 0; start < MinutesPerDay; start += 97 {
		for end := 0; end < MinutesPerDay; end += 89 {
			got := WorkedMinutes(intPtr(start), intPtr(end), 0)
			if got == nil || *got < 0 {
				t.Fatalf("WorkedMinutes(%d, %d, 0) = %v", start, end, got)
			}
		}
	}
}

func TestISOWeekday(t *testing.T) {
	// 2026-08-31 is a Monday, 2026-09-06 a Sunday.
	cases := []struct {
		date string
		want int
	}{
		{"2026-08-31", 1},
		{"2026-09-02", 3},
		{"2026-09-05", 6},
		{"2026-09-06", 7},
	}
	for _, c := range cases {
		d, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := ISOWeekday(d); got != c.want {
			t.Errorf("ISOWeekday(%s) = %d, want %d", c.date, got, c.want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	sat, _ := time.Parse("2006-01-02", "2026-09-05")
	mon, _ := time.Parse("2006-01-02", "2026-08-31")
	if !IsWeekend(sat) {
		t.Error("Saturday should be a weekend day")
	}
	if IsWeekend(mon) {
		t.Error("Monday should not be a weekend day")
	}
}

func ExampleFormatHM() {
	m := 545
	fmt.Println(FormatHM(&m))
	// Output: 09:05
}
