package domain

import (
	"fmt"
	"strings"
)

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists every weekday in calendar order, starting on Monday.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Day codes used by the registration system's days_taught field.
var weekdayCodes = map[string]Weekday{
	"M":  Monday,
	"T":  Tuesday,
	"W":  Wednesday,
	"Th": Thursday,
	"F":  Friday,
	"Sa": Saturday,
	"Su": Sunday,
}

// ParseWeekday accepts a full weekday name in any case.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for _, d := range Weekdays {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("parse weekday: unknown weekday %q", s)
}

// ParseDayCodes splits a days_taught string such as "MWF" or "TTh" into weekdays.
// Two-letter codes are matched first so "Th" is never read as "T" followed by "h".
func ParseDayCodes(codes string) ([]Weekday, error) {
	codes = strings.ReplaceAll(strings.TrimSpace(codes), " ", "")

	out := make([]Weekday, 0, len(codes))
	for i := 0; i < len(codes); {
		if i+2 <= len(codes) {
			if d, ok := weekdayCodes[codes[i:i+2]]; ok {
				out = append(out, d)
				i += 2
				continue
			}
		}
		d, ok := weekdayCodes[codes[i:i+1]]
		if !ok {
			return nil, fmt.Errorf("parse day codes: unknown code at %d in %q", i, codes)
		}
		out = append(out, d)
		i++
	}
	return out, nil
}

func (d Weekday) Valid() bool {
	_, err := ParseWeekday(string(d))
	return err == nil
}

func (d Weekday) String() string { return string(d) }
