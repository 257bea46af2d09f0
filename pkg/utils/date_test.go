package utils

import (
	"testing"
	"time"
)

func TestNearestSettledDate(t *testing.T) {
	testCases := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "exactly midnight lands on previous day",
			now:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want: "2024-02-29",
		},
		{
			name: "midday",
			now:  time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
			want: "2024-02-29",
		},
		{
			name: "one second past midnight",
			now:  time.Date(2024, 3, 2, 0, 0, 1, 0, time.UTC),
			want: "2024-03-01",
		},
		{
			name: "last nanosecond of the day",
			now:  time.Date(2024, 3, 1, 23, 59, 59, 999999999, time.UTC),
			want: "2024-02-29",
		},
		{
			name: "non-leap february",
			now:  time.Date(2023, 3, 1, 8, 0, 0, 0, time.UTC),
			want: "2023-02-28",
		},
		{
			name: "year boundary",
			now:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want: "2024-12-31",
		},
		{
			name: "non-UTC input is converted first",
			// 2024-03-01T01:00+02:00 is 2024-02-29T23:00Z
			now:  time.Date(2024, 3, 1, 1, 0, 0, 0, time.FixedZone("EET", 2*60*60)),
			want: "2024-02-28",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NearestSettledDate(tc.now); got != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestIsCalendarDate(t *testing.T) {
	testCases := []struct {
		in   string
		want bool
	}{
		{"2024-01-01", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-1-1", false},
		{"20240101", false},
		{"", false},
		{"../../etc/passwd", false},
		{"2024-01-01T00:00:00Z", false},
	}

	for _, tc := range testCases {
		if got := IsCalendarDate(tc.in); got != tc.want {
			t.Errorf("IsCalendarDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
