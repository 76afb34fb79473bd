package scheduler

import "testing"

func TestBuildDailySpec(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"09:00", "0 0 9 * * *"},
		{"00:05", "0 5 0 * * *"},
		{"23:59", "0 59 23 * * *"},
	}

	for _, tc := range cases {
		got, err := buildDailySpec(tc.in)
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestBuildDailySpecInvalid(t *testing.T) {
	for _, in := range []string{"", "9", "24:00", "12:60", "aa:bb", "12:00:00"} {
		if _, err := buildDailySpec(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}
