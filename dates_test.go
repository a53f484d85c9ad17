package importfilter

import (
	"testing"
	"time"
)

func TestParseDayFirstDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"slash day-first", "04/05/2023", "2023-05-04", true},
		{"slash single digits", "4/5/2023", "2023-05-04", true},
		{"slash with time", "04/05/2023 13:45:00", "2023-05-04", true},
		{"dash day-first", "04-05-2023", "2023-05-04", true},
		{"dot day-first", "04.05.2023", "2023-05-04", true},
		{"month name", "04-May-2023", "2023-05-04", true},
		{"month name spaced", "4 May 2023", "2023-05-04", true},
		{"iso date", "2023-05-04", "2023-05-04", true},
		{"iso datetime", "2023-05-04 13:45:00", "2023-05-04", true},
		{"surrounding whitespace", "  04/05/2023  ", "2023-05-04", true},
		{"empty", "", "", false},
		{"free text", "garbage", "", false},
		{"day out of range", "32/01/2023", "", false},
		{"month out of range", "01/13/2023", "", false},
		{"bare number", "20230504", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parseDayFirstDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("parseDayFirstDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !tt.ok {
				return
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("parseDayFirstDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
			if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
				t.Errorf("parseDayFirstDate(%q) kept a time-of-day component", tt.input)
			}
		})
	}
}

func TestTruncateToDate(t *testing.T) {
	t.Parallel()

	in := time.Date(2023, time.May, 4, 13, 45, 59, 123, time.UTC)
	got := truncateToDate(in)
	want := time.Date(2023, time.May, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("truncateToDate() = %v, want %v", got, want)
	}
}
