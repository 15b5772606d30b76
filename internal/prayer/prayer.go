// Package prayer models a day's prayer schedule and selects the nearest
// upcoming prayer relative to a reference instant.
package prayer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/jadwal-sholat/internal/api"
)

// ErrMalformedSchedule is returned when the API timings are missing a prayer
// or carry a time that is not "HH:MM".
var ErrMalformedSchedule = errors.New("malformed schedule")

// Name identifies one of the five daily prayers.
type Name int

// The five prayers in chronological (and tie-break) order.
const (
	Fajr Name = iota
	Dhuhr
	Asr
	Maghrib
	Isha
)

// Names lists every prayer in enumeration order.
var Names = []Name{Fajr, Dhuhr, Asr, Maghrib, Isha}

// table associates each prayer with its API key and Indonesian label.
var table = [...]struct {
	key   string
	label string
	raw   func(api.Timings) string
}{
	Fajr:    {"Fajr", "Subuh", func(t api.Timings) string { return t.Fajr }},
	Dhuhr:   {"Dhuhr", "Dzuhur", func(t api.Timings) string { return t.Dhuhr }},
	Asr:     {"Asr", "Ashar", func(t api.Timings) string { return t.Asr }},
	Maghrib: {"Maghrib", "Maghrib", func(t api.Timings) string { return t.Maghrib }},
	Isha:    {"Isha", "Isya", func(t api.Timings) string { return t.Isha }},
}

func (n Name) valid() bool {
	return n >= 0 && int(n) < len(table)
}

// String returns the API key of the prayer, e.g. "Dhuhr".
func (n Name) String() string {
	if !n.valid() {
		return fmt.Sprintf("Name(%d)", int(n))
	}
	return table[n].key
}

// Label returns the Indonesian display name, e.g. "Dzuhur".
func (n Name) Label() string {
	if !n.valid() {
		return n.String()
	}
	return table[n].label
}

// TimeOfDay is an hour and minute on an unspecified day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at this time of day on the date of ref, in ref's
// location, with seconds zeroed.
func (t TimeOfDay) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

// ParseTimeOfDay parses a string like "15:02" or "15:02 (WIB)". Hour and
// minute must be exactly two digits each. Anything after the first space is
// ignored.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time format: %q", raw)
	}

	hour, err := twoDigits(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	min, err := twoDigits(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}
	if hour > 23 || min > 59 {
		return TimeOfDay{}, fmt.Errorf("time out of range: %q", raw)
	}

	return TimeOfDay{Hour: hour, Minute: min}, nil
}

func twoDigits(s string) (int, error) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, fmt.Errorf("want two digits, got %q", s)
	}
	return strconv.Atoi(s)
}

// Schedule is one day's prayer times. It is immutable once built.
type Schedule struct {
	times [len(table)]TimeOfDay

	// Auxiliary times are display-only and nil when the API omits them or
	// sends something unparsable.
	Imsak    *TimeOfDay
	Sunrise  *TimeOfDay
	Midnight *TimeOfDay
}

// NewSchedule builds a Schedule from API timings. Only the five prayers
// are required.
func NewSchedule(t api.Timings) (Schedule, error) {
	var s Schedule
	for _, n := range Names {
		tod, err := parseField(n.String(), table[n].raw(t))
		if err != nil {
			return Schedule{}, err
		}
		s.times[n] = tod
	}

	s.Imsak = optional(t.Imsak)
	s.Sunrise = optional(t.Sunrise)
	s.Midnight = optional(t.Midnight)

	return s, nil
}

func optional(raw string) *TimeOfDay {
	tod, err := ParseTimeOfDay(raw)
	if err != nil {
		return nil
	}
	return &tod
}

func parseField(key, raw string) (TimeOfDay, error) {
	if strings.TrimSpace(raw) == "" {
		return TimeOfDay{}, fmt.Errorf("%w: missing %s", ErrMalformedSchedule, key)
	}
	tod, err := ParseTimeOfDay(raw)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %s: %w", ErrMalformedSchedule, key, err)
	}
	return tod, nil
}

// Time returns the scheduled time of the given prayer.
func (s Schedule) Time(n Name) TimeOfDay {
	if !n.valid() {
		return TimeOfDay{}
	}
	return s.times[n]
}

// Selection is the outcome of Nearest. When Found is false every prayer of
// the day has passed and the next one is tomorrow's Fajr.
type Selection struct {
	Found     bool
	Prayer    Name
	Time      TimeOfDay
	Remaining time.Duration
}

// Hours returns the whole hours of the remaining duration.
func (s Selection) Hours() int {
	h, _ := Split(s.Remaining)
	return h
}

// Minutes returns the whole minutes left after Hours.
func (s Selection) Minutes() int {
	_, m := Split(s.Remaining)
	return m
}

// Nearest selects the prayer whose time today is strictly after now and
// closest to it. Prayers at exactly now count as passed. On equal times the
// earlier prayer in enumeration order wins.
func Nearest(s Schedule, now time.Time) Selection {
	var best Selection
	for _, n := range Names {
		tod := s.times[n]
		diff := tod.On(now).Sub(now)
		if diff <= 0 {
			continue
		}
		if !best.Found || diff < best.Remaining {
			best = Selection{Found: true, Prayer: n, Time: tod, Remaining: diff}
		}
	}
	return best
}

// Split decomposes d into whole hours and whole minutes. Residual seconds
// are dropped. Negative durations yield zero.
func Split(d time.Duration) (hours, minutes int) {
	if d <= 0 {
		return 0, 0
	}
	return int(d / time.Hour), int(d % time.Hour / time.Minute)
}
