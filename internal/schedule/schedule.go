// Package schedule converts between the free-text opening-hours column stored on
// tenants (e.g. "Lun, Mar, Mie 08:00-20:00 | 16:00-20:00") and a structured weekly
// schedule. The string form only exists at the persistence boundary; everything else
// works with WeeklySchedule values.
package schedule

import (
	"regexp"
	"strings"
)

// Day is a canonical weekday code (mon..sun).
type Day string

const (
	Mon Day = "mon"
	Tue Day = "tue"
	Wed Day = "wed"
	Thu Day = "thu"
	Fri Day = "fri"
	Sat Day = "sat"
	Sun Day = "sun"
)

// weekOrder fixes the canonical rendering order Mon through Sun.
var weekOrder = []Day{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

// dayLabels is the display label emitted for each day code.
var dayLabels = map[Day]string{
	Mon: "Mon",
	Tue: "Tue",
	Wed: "Wed",
	Thu: "Thu",
	Fri: "Fri",
	Sat: "Sat",
	Sun: "Sun",
}

// labelToDay maps recognized day tokens to their codes. Legacy records were written
// with Spanish labels, so both vocabularies are accepted on decode.
var labelToDay = map[string]Day{
	"Mon": Mon, "Tue": Tue, "Wed": Wed, "Thu": Thu, "Fri": Fri, "Sat": Sat, "Sun": Sun,
	"Lun": Mon, "Mar": Tue, "Mie": Wed, "Jue": Thu, "Vie": Fri, "Sab": Sat, "Dom": Sun,
}

// rangePattern matches "HH:MM-HH:MM" optionally followed by " | HH:MM-HH:MM".
var rangePattern = regexp.MustCompile(`(\d{2}:\d{2})-(\d{2}:\d{2})(?:\s\|\s(\d{2}:\d{2})-(\d{2}:\d{2}))?`)

// WeeklySchedule is the structured form of an opening-hours string.
// Open2/Close2 are set only when the venue runs a split shift.
type WeeklySchedule struct {
	Days   []Day
	Open1  string
	Close1 string
	Open2  string
	Close2 string
}

// HasSplitShift reports whether a secondary time range is present.
func (w *WeeklySchedule) HasSplitShift() bool {
	return w.Open2 != "" && w.Close2 != ""
}

// Decode parses a raw opening-hours string. It returns nil when no time range is
// found or when no day token is recognized. Unrecognized day tokens are dropped so
// that partially valid legacy data still loads.
func Decode(raw string) *WeeklySchedule {
	loc := rangePattern.FindStringSubmatchIndex(raw)
	if loc == nil {
		return nil
	}
	m := rangePattern.FindStringSubmatch(raw)

	dayList := strings.TrimSpace(raw[:loc[0]])
	var days []Day
	for _, token := range strings.Split(dayList, ",") {
		if d, ok := labelToDay[strings.TrimSpace(token)]; ok {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return nil
	}

	return &WeeklySchedule{
		Days:   days,
		Open1:  m[1],
		Close1: m[2],
		Open2:  m[3],
		Close2: m[4],
	}
}

// Encode renders the schedule back to its string form, ordering days canonically
// Mon through Sun regardless of input order. It is a best-effort formatter: when the
// day set is empty or the primary range is missing it returns fallback unchanged.
func (w *WeeklySchedule) Encode(fallback string) string {
	labels := w.orderedLabels()
	if len(labels) == 0 || w.Open1 == "" || w.Close1 == "" {
		return fallback
	}

	out := strings.Join(labels, ", ") + " " + w.Open1 + "-" + w.Close1
	if w.HasSplitShift() {
		out += " | " + w.Open2 + "-" + w.Close2
	}
	return out
}

func (w *WeeklySchedule) orderedLabels() []string {
	present := make(map[Day]bool, len(w.Days))
	for _, d := range w.Days {
		present[d] = true
	}

	var labels []string
	for _, d := range weekOrder {
		if present[d] {
			labels = append(labels, dayLabels[d])
		}
	}
	return labels
}

// Includes reports whether the schedule covers the given day.
func (w *WeeklySchedule) Includes(d Day) bool {
	for _, day := range w.Days {
		if day == d {
			return true
		}
	}
	return false
}

// DayFromWeekday converts a time.Weekday-style index (Sunday = 0) to a Day code.
func DayFromWeekday(weekday int) Day {
	switch weekday {
	case 0:
		return Sun
	case 1:
		return Mon
	case 2:
		return Tue
	case 3:
		return Wed
	case 4:
		return Thu
	case 5:
		return Fri
	default:
		return Sat
	}
}
