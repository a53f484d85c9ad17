package importfilter

import (
	"regexp"
	"strings"
	"time"
)

// datePattern pairs a cheap regex gate with the time.Parse layouts it can
// match. Day-first layouts come first; the unambiguous ISO forms close
// the table.
type datePattern struct {
	pattern *regexp.Regexp
	layouts []string
}

// dayFirstPatterns recognizes the date spellings seen in customs import
// exports. Interpretation is day-first throughout: 04/05/2023 is the
// 4th of May.
var dayFirstPatterns = []datePattern{
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}(:\d{2})?$`),
		[]string{"2/1/2006 15:04:05", "02/01/2006 15:04:05", "2/1/2006 15:04", "02/01/2006 15:04"},
	},
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		[]string{"2/1/2006", "02/01/2006"},
	},
	{
		regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`),
		[]string{"2-1-2006", "02-01-2006"},
	},
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`),
		[]string{"2.1.2006", "02.01.2006"},
	},
	{
		regexp.MustCompile(`^\d{1,2}[- ][A-Za-z]{3}[- ]\d{4}$`),
		[]string{"2-Jan-2006", "02-Jan-2006", "2 Jan 2006", "02 Jan 2006"},
	},
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`),
		[]string{"2006-01-02 15:04:05"},
	},
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		[]string{"2006-01-02"},
	},
}

// parseDayFirstDate parses a raw cell as a day-first date, reporting
// failure rather than guessing. Time-of-day components are discarded;
// only the calendar date is kept.
func parseDayFirstDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	for _, dp := range dayFirstPatterns {
		if !dp.pattern.MatchString(value) {
			continue
		}
		for _, layout := range dp.layouts {
			if parsed, err := time.Parse(layout, value); err == nil {
				return truncateToDate(parsed), true
			}
		}
	}
	return time.Time{}, false
}

// truncateToDate drops any time-of-day component.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
