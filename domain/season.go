package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Season is the calendar bucket all clan statistics are grouped by.
// Its canonical textual form is "YYYY-MM" and it is used as a map key
// both in memory and in the serialized snapshot.
type Season struct {
	Year  int
	Month int
}

// CurrentSeason derives the season from the wall clock (UTC).
func CurrentSeason() Season {
	now := time.Now().UTC()
	return Season{Year: now.Year(), Month: int(now.Month())}
}

// ParseSeason parses the canonical "YYYY-MM" form.
func ParseSeason(raw string) (Season, error) {
	rawYear, rawMonth, ok := strings.Cut(raw, "-")
	if !ok {
		return Season{}, NewError(ErrCodeValidation, "season must look like YYYY-MM")
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return Season{}, WrapError(ErrCodeValidation, "invalid season year", err)
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		return Season{}, WrapError(ErrCodeValidation, "invalid season month", err)
	}
	s := Season{Year: year, Month: month}
	if err := s.validate(); err != nil {
		return Season{}, err
	}
	return s, nil
}

func (s Season) validate() error {
	if s.Year < 0 {
		return NewError(ErrCodeValidation, "season year must not be negative")
	}
	if s.Month < 1 || s.Month > 12 {
		return NewError(ErrCodeValidation, "season month must be in [1,12]")
	}
	return nil
}

// Previous returns the season one month back, rolling January over to
// December of the prior year.
func (s Season) Previous() Season {
	if s.Month <= 1 {
		return Season{Year: s.Year - 1, Month: 12}
	}
	return Season{Year: s.Year, Month: s.Month - 1}
}

func (s Season) String() string {
	return fmt.Sprintf("%04d-%02d", s.Year, s.Month)
}

// MarshalText lets Season serve as a JSON object key.
func (s Season) MarshalText() ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *Season) UnmarshalText(data []byte) error {
	parsed, err := ParseSeason(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
