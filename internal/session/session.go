// Package session holds the operator's current city and runs the
// fetch-then-compute actions offered by the menu.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/jadwal-sholat/internal/api"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/clock"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/prayer"
)

// DateLayout is the DD-MM-YYYY layout the API expects.
const DateLayout = "02-01-2006"

var (
	// ErrEmptyCity is returned when a city name is blank after trimming.
	ErrEmptyCity = errors.New("city name must not be empty")
	// ErrBadDate is returned when a date does not have the DD-MM-YYYY shape.
	ErrBadDate = errors.New("date must be formatted DD-MM-YYYY")
)

// Fetcher retrieves one day's schedule. *api.Client satisfies it.
type Fetcher interface {
	FetchByCity(ctx context.Context, q api.Query) (*api.Data, error)
}

// Day is a fetched schedule together with its date metadata.
type Day struct {
	Date     api.DateInfo
	Schedule prayer.Schedule
}

// Session is the state of one interactive run.
type Session struct {
	City    string
	Country string
	Method  int

	fetcher Fetcher
	clock   clock.Clock
}

// New starts a session for city. The city is trimmed and must not be blank.
func New(f Fetcher, c clock.Clock, city, country string, method int) (*Session, error) {
	s := &Session{
		Country: country,
		Method:  method,
		fetcher: f,
		clock:   c,
	}
	if s.Country == "" {
		s.Country = api.DefaultCountry
	}
	if err := s.SetCity(city); err != nil {
		return nil, err
	}
	return s, nil
}

// SetCity switches the session to another city. A blank name is rejected
// and leaves the current city unchanged.
func (s *Session) SetCity(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCity
	}
	s.City = name
	return nil
}

// Today fetches the schedule for the current day.
func (s *Session) Today(ctx context.Context) (*Day, error) {
	return s.fetch(ctx, "")
}

// Tomorrow fetches the schedule for the day after the clock's current day.
func (s *Session) Tomorrow(ctx context.Context) (*Day, error) {
	return s.fetch(ctx, s.clock.Now().AddDate(0, 0, 1).Format(DateLayout))
}

// OnDate fetches the schedule for a DD-MM-YYYY date. Only the separator
// count is checked; the API judges the rest.
func (s *Session) OnDate(ctx context.Context, date string) (*Day, error) {
	if !ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	return s.fetch(ctx, date)
}

// Nearest fetches today's schedule and selects the next prayer relative to
// the clock.
func (s *Session) Nearest(ctx context.Context) (prayer.Selection, *Day, error) {
	day, err := s.Today(ctx)
	if err != nil {
		return prayer.Selection{}, nil, err
	}
	return s.NextIn(day), day, nil
}

// NextIn selects the next prayer of an already fetched day, reading the
// clock once.
func (s *Session) NextIn(day *Day) prayer.Selection {
	now := s.clock.Now()
	sel := prayer.Nearest(day.Schedule, now)
	log.Debug().
		Time("now", now).
		Bool("found", sel.Found).
		Stringer("prayer", sel.Prayer).
		Msg("nearest prayer selected")
	return sel
}

func (s *Session) fetch(ctx context.Context, date string) (*Day, error) {
	data, err := s.fetcher.FetchByCity(ctx, api.Query{
		City:    s.City,
		Country: s.Country,
		Date:    date,
		Method:  s.Method,
	})
	if err != nil {
		return nil, err
	}

	sched, err := prayer.NewSchedule(data.Timings)
	if err != nil {
		return nil, err
	}

	return &Day{Date: data.Date, Schedule: sched}, nil
}

// ValidDate reports whether s has exactly two hyphen separators.
func ValidDate(s string) bool {
	return strings.Count(s, "-") == 2
}
