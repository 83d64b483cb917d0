package bulkimport

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultDurationMinutes is assumed when a row carries no usable
// duration column.
const DefaultDurationMinutes = 120

// Fixed column positions for pasted spreadsheet rows. These follow the
// export layout of the upstream planning sheets and are a convention,
// not a header-driven format.
const (
	colPatientNumber = 0
	colLastName      = 1
	colFirstName     = 2
	colBirthDate     = 3
	colSurgeryDate   = 4
	colTimeEarly     = 5
	colTimeLate      = 6
	colDuration      = 7
	colProcedure     = 8
	colNotes         = 9
	colSurgeon       = 18
)

const minColumns = 9

// ParsedRow is one input line after parsing. Valid rows are selected by
// default; the caller may toggle Selected before committing. Errors is a
// human-readable list of what is missing or malformed.
type ParsedRow struct {
	Line          int        `json:"line"`
	Raw           string     `json:"raw"`
	PatientNumber string     `json:"patient_number"`
	LastName      string     `json:"last_name"`
	FirstName     string     `json:"first_name"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	SurgeryDate   *time.Time `json:"surgery_date,omitempty"`
	StartTime     string     `json:"start_time"`
	DurationMin   int        `json:"duration_min"`
	Procedure     string     `json:"procedure"`
	Notes         string     `json:"notes"`
	Surgeon       string     `json:"surgeon"`
	Valid         bool       `json:"valid"`
	Selected      bool       `json:"selected"`
	Errors        []string   `json:"errors,omitempty"`
}

// Start combines the surgery date and the HH:MM start time into one
// instant. Only meaningful on a valid row.
func (r *ParsedRow) Start() time.Time {
	if r.SurgeryDate == nil || r.StartTime == "" {
		return time.Time{}
	}
	hh, mm, ok := parseClock(r.StartTime)
	if !ok {
		return *r.SurgeryDate
	}
	d := *r.SurgeryDate
	return time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, time.UTC)
}

// End is Start plus the parsed duration.
func (r *ParsedRow) End() time.Time {
	return r.Start().Add(time.Duration(r.DurationMin) * time.Minute)
}

// ParseRows splits pasted spreadsheet text into one ParsedRow per
// non-empty line. A malformed row never aborts the batch; it comes back
// with Valid=false and its problems listed in Errors. defaultMin is the
// duration assumed for rows without a usable duration column; values at
// or below zero fall back to DefaultDurationMinutes.
func ParseRows(text string, defaultMin int) []*ParsedRow {
	if defaultMin <= 0 {
		defaultMin = DefaultDurationMinutes
	}
	var rows []*ParsedRow
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, parseRow(i+1, line, defaultMin))
	}
	return rows
}

func parseRow(lineNo int, line string, defaultMin int) *ParsedRow {
	row := &ParsedRow{Line: lineNo, Raw: line, DurationMin: defaultMin}

	cols := strings.Split(line, "\t")
	if len(cols) < minColumns {
		row.Errors = append(row.Errors, "not enough columns")
		return row
	}

	col := func(i int) string {
		if i < len(cols) {
			return strings.TrimSpace(cols[i])
		}
		return ""
	}

	row.PatientNumber = col(colPatientNumber)
	row.LastName = col(colLastName)
	row.FirstName = col(colFirstName)
	row.Procedure = col(colProcedure)
	row.Notes = col(colNotes)
	row.Surgeon = col(colSurgeon)

	if dob, err := parseDate(col(colBirthDate)); err != nil {
		row.Errors = append(row.Errors, fmt.Sprintf("birth date: %v", err))
	} else {
		row.BirthDate = &dob
	}
	if sd, err := parseDate(col(colSurgeryDate)); err != nil {
		row.Errors = append(row.Errors, fmt.Sprintf("surgery date: %v", err))
	} else {
		row.SurgeryDate = &sd
	}

	// The sheets carry two time-like columns; the later one is the
	// scheduled OR start when both are filled.
	for _, c := range []string{col(colTimeLate), col(colTimeEarly)} {
		if _, _, ok := parseClock(c); ok {
			row.StartTime = c
			break
		}
	}

	row.DurationMin = parseDuration(col(colDuration), defaultMin)

	if row.LastName == "" {
		row.Errors = append(row.Errors, "surname missing")
	}
	if row.FirstName == "" {
		row.Errors = append(row.Errors, "first name missing")
	}
	if row.StartTime == "" {
		row.Errors = append(row.Errors, "start time missing")
	}
	if row.Procedure == "" {
		row.Errors = append(row.Errors, "procedure missing")
	}

	row.Valid = len(row.Errors) == 0
	row.Selected = row.Valid
	return row
}

// parseDate accepts day-month-year with ".", "/" or "-" separators and
// 2- or 4-digit years. Two-digit years above 50 land in the 1900s.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing")
	}
	sep := ""
	for _, cand := range []string{".", "/", "-"} {
		if strings.Contains(s, cand) {
			sep = cand
			break
		}
	}
	if sep == "" {
		return time.Time{}, fmt.Errorf("unrecognized format %q", s)
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("unrecognized format %q", s)
	}
	day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("unrecognized format %q", s)
	}
	if year < 100 {
		if year > 50 {
			year += 1900
		} else {
			year += 2000
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("out of range %q", s)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("out of range %q", s)
	}
	return t, nil
}

func parseClock(s string) (hh, mm int, ok bool) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hh, err1 := strconv.Atoi(parts[0])
	mm, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, 0, false
	}
	return hh, mm, true
}

// parseDuration turns free-text duration cells into minutes. Explicit
// hour units multiply by 60; explicit minute units pass through; a bare
// number above 10 is minutes, at or below 10 it is hours. Empty or
// unparseable input falls back to defaultMin.
func parseDuration(s string, defaultMin int) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return defaultMin
	}

	numeric := func(v string) (float64, bool) {
		v = strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return 0, false
		}
		return f, true
	}

	for _, unit := range []string{"stunden", "stunde", "hours", "hour", "std", "h"} {
		if strings.Contains(s, unit) {
			if f, ok := numeric(strings.ReplaceAll(s, unit, "")); ok {
				return int(math.Round(f * 60))
			}
			return defaultMin
		}
	}
	for _, unit := range []string{"minuten", "min", "m"} {
		if strings.Contains(s, unit) {
			if f, ok := numeric(strings.ReplaceAll(s, unit, "")); ok {
				return int(math.Round(f))
			}
			return defaultMin
		}
	}
	f, ok := numeric(s)
	if !ok {
		return defaultMin
	}
	if f > 10 {
		return int(math.Round(f))
	}
	return int(math.Round(f * 60))
}
