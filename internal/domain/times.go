package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SlotsPerDay is the number of half-hour grid buckets in one day.
const SlotsPerDay = 48

var weekdayNames = map[string]string{
	"Mon": "Monday", "Tue": "Tuesday", "Wed": "Wednesday", "Thu": "Thursday",
	"Fri": "Friday", "Sat": "Saturday", "Sun": "Sunday",
}

// Day is a convention day. Index is assigned in first-seen order, so the
// first day of the convention is day 0 whatever weekday it falls on.
type Day struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

func (d *Day) String() string {
	return d.Name
}

// DayRegistry hands out one *Day per name. Lookups by long or short name
// return the same instance.
type DayRegistry struct {
	byName map[string]*Day
	days   []*Day
}

// NewDayRegistry returns an empty registry.
func NewDayRegistry() *DayRegistry {
	return &DayRegistry{byName: make(map[string]*Day)}
}

// Get returns the Day for name, creating it with the next index on first use.
// Weekday names ("Friday") and abbreviations ("Fri") resolve to the same Day.
func (r *DayRegistry) Get(name string) *Day {
	name = strings.TrimSpace(name)
	if d, ok := r.byName[name]; ok {
		return d
	}
	long, short := name, name
	if full, ok := weekdayNames[name]; ok {
		long = full
	} else {
		for s, full := range weekdayNames {
			if full == name {
				short = s
				break
			}
		}
		if short == name && len([]rune(name)) > 3 {
			short = string([]rune(name)[:3])
		}
	}
	if d, ok := r.byName[long]; ok {
		r.byName[name] = d
		return d
	}
	d := &Day{Index: len(r.days), Name: long, ShortName: short}
	r.days = append(r.days, d)
	r.byName[long] = d
	r.byName[short] = d
	r.byName[name] = d
	return d
}

// Lookup returns the Day for name without creating it.
func (r *DayRegistry) Lookup(name string) (*Day, bool) {
	d, ok := r.byName[strings.TrimSpace(name)]
	return d, ok
}

// Days returns the days in index order.
func (r *DayRegistry) Days() []*Day {
	return r.days
}

// Len returns the number of known days.
func (r *DayRegistry) Len() int {
	return len(r.days)
}

// ClockTime is a wall-clock time. Hour runs 0-47 so that a time past midnight
// can stay attached to the previous convention day. Day is optional.
type ClockTime struct {
	Hour   int  `json:"hour"`
	Minute int  `json:"minute"`
	Day    *Day `json:"-"`
}

// Duration is an interval stored the same way as a ClockTime.
type Duration struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

var (
	ampmPattern   = regexp.MustCompile(`^(\d{1,2}):(\d{1,2}) ?([AaPp][Mm])`)
	clockPattern  = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})`)
	hourPattern   = regexp.MustCompile(`(?i)^(\d+) ?hr`)
	minutePattern = regexp.MustCompile(`(?i)(\d+) ?min`)
	barePattern   = regexp.MustCompile(`^(\d+)$`)
)

// ParseClockTime parses "4:15pm", "4:15 PM" or "16:15".
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	if m := ampmPattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 1 || hour > 12 || minute > 59 {
			return ClockTime{}, &ParseError{Kind: "time", Input: s}
		}
		pm := strings.EqualFold(m[3], "pm")
		switch {
		case hour == 12 && !pm:
			hour = 0
		case hour != 12 && pm:
			hour += 12
		}
		return ClockTime{Hour: hour, Minute: minute}, nil
	}
	if m := clockPattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 47 || minute > 59 {
			return ClockTime{}, &ParseError{Kind: "time", Input: s}
		}
		return ClockTime{Hour: hour, Minute: minute}, nil
	}
	return ClockTime{}, &ParseError{Kind: "time", Input: s}
}

// ParseDuration parses "2hr 30min", "45min", "2hr", "2:30" or a bare number
// of minutes ("150").
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	var d Duration
	matched := false
	if m := hourPattern.FindStringSubmatch(s); m != nil {
		d.Hour, _ = strconv.Atoi(m[1])
		matched = true
	}
	if m := minutePattern.FindStringSubmatch(s); m != nil {
		d.Minute, _ = strconv.Atoi(m[1])
		matched = true
	}
	if matched {
		return d.normalize(), nil
	}
	if m := clockPattern.FindStringSubmatch(s); m != nil {
		d.Hour, _ = strconv.Atoi(m[1])
		d.Minute, _ = strconv.Atoi(m[2])
		return d.normalize(), nil
	}
	if m := barePattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Duration{}, &ParseError{Kind: "duration", Input: s}
		}
		return Duration{Hour: n / 60, Minute: n % 60}, nil
	}
	return Duration{}, &ParseError{Kind: "duration", Input: s}
}

// NewDuration returns a duration of the given total minutes.
func NewDuration(minutes int) Duration {
	return Duration{Hour: minutes / 60, Minute: minutes % 60}
}

func (d Duration) normalize() Duration {
	if d.Minute >= 60 {
		d.Hour += d.Minute / 60
		d.Minute %= 60
	}
	return d
}

// Minutes returns the total length in minutes.
func (d Duration) Minutes() int {
	return d.Hour*60 + d.Minute
}

// Less reports whether d is shorter than o.
func (d Duration) Less(o Duration) bool {
	return d.Minutes() < o.Minutes()
}

func (d Duration) String() string {
	switch {
	case d.Minute == 0:
		return fmt.Sprintf("%dhr", d.Hour)
	case d.Hour == 0:
		return fmt.Sprintf("%dmin", d.Minute)
	default:
		return fmt.Sprintf("%dhr %dmin", d.Hour, d.Minute)
	}
}

// On returns a copy of t bound to day.
func (t ClockTime) On(day *Day) ClockTime {
	t.Day = day
	return t
}

// Compare orders two times. When both carry a Day the day index is folded
// into the hour, so Friday 24:00 equals Saturday 0:00; otherwise only hour
// and minute are compared.
func (t ClockTime) Compare(o ClockTime) int {
	h1, h2 := t.Hour, o.Hour
	if t.Day != nil && o.Day != nil {
		h1 += t.Day.Index * 24
		h2 += o.Day.Index * 24
	}
	switch {
	case h1 != h2:
		return cmpInt(h1, h2)
	default:
		return cmpInt(t.Minute, o.Minute)
	}
}

// Before reports whether t sorts before o.
func (t ClockTime) Before(o ClockTime) bool {
	return t.Compare(o) < 0
}

// Equal reports whether t and o denote the same time.
func (t ClockTime) Equal(o ClockTime) bool {
	return t.Compare(o) == 0
}

// Add returns t+d. Minutes carry into the hour; the hour is not wrapped at 24
// and the Day is left alone, callers roll the day forward themselves.
func (t ClockTime) Add(d Duration) ClockTime {
	t.Hour += d.Hour
	t.Minute += d.Minute
	if t.Minute >= 60 {
		t.Hour += t.Minute / 60
		t.Minute %= 60
	}
	return t
}

// Sub returns t-d, borrowing from the hour. The hour may go negative.
func (t ClockTime) Sub(d Duration) ClockTime {
	t.Hour -= d.Hour
	t.Minute -= d.Minute
	for t.Minute < 0 {
		t.Hour--
		t.Minute += 60
	}
	return t
}

// Offset returns the half-hour bucket index of t. Minutes :00-:14 round down,
// :15-:44 round to the half hour and :45-:59 round to the next hour.
func (t ClockTime) Offset() int {
	day := 0
	if t.Day != nil {
		day = t.Day.Index
	}
	return day*SlotsPerDay + t.Hour*2 + (t.Minute+15)/30
}

// String24 formats t as "16:15" without folding hours past midnight.
func (t ClockTime) String24() string {
	return fmt.Sprintf("%d:%02d", t.Hour, t.Minute)
}

// String formats t as "4:15pm".
func (t ClockTime) String() string {
	hour := t.Hour % 24
	ampm := "am"
	if hour >= 12 {
		hour -= 12
		ampm = "pm"
	}
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d%s", hour, t.Minute, ampm)
}

// GridLabel formats t for a grid column header: "noon", "midnight", "4:30p".
func (t ClockTime) GridLabel() string {
	hour := t.Hour % 24
	if t.Minute == 0 {
		switch hour {
		case 0:
			return "midnight"
		case 12:
			return "noon"
		}
	}
	ampm := "a"
	if hour >= 12 {
		hour -= 12
		ampm = "p"
	}
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d%s", hour, t.Minute, ampm)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
