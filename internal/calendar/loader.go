package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// productionCalendar is the published production-calendar document: one
// file per year, non-working days listed per month as a comma-separated
// string. Days may carry a "+" (moved holiday) or "*" (shortened day) suffix.
type productionCalendar struct {
	Year   int `json:"year"`
	Months []struct {
		Month int    `json:"month"`
		Days  string `json:"days"`
	} `json:"months"`
}

// ParseProductionCalendar decodes one production-calendar document and
// returns its year with the listed non-working days.
// Shortened working days ("*") are business days and are skipped.
func ParseProductionCalendar(r io.Reader) (int, []time.Time, error) {
	var doc productionCalendar
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return 0, nil, fmt.Errorf("calendar.ParseProductionCalendar: decode: %w", err)
	}
	if doc.Year <= 0 {
		return 0, nil, fmt.Errorf("calendar.ParseProductionCalendar: missing year")
	}

	var days []time.Time
	for _, m := range doc.Months {
		if m.Month < 1 || m.Month > 12 {
			return 0, nil, fmt.Errorf("calendar.ParseProductionCalendar: month %d out of range", m.Month)
		}
		for _, raw := range strings.Split(m.Days, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" || strings.HasSuffix(raw, "*") {
				continue
			}
			raw = strings.TrimSuffix(raw, "+")
			d, err := strconv.Atoi(raw)
			if err != nil {
				return 0, nil, fmt.Errorf("calendar.ParseProductionCalendar: day %q in month %d: %w", raw, m.Month, err)
			}
			day, ok := calendarDate(doc.Year, m.Month, d)
			if !ok {
				return 0, nil, fmt.Errorf("calendar.ParseProductionCalendar: day %d out of range in %04d-%02d", d, doc.Year, m.Month)
			}
			days = append(days, day)
		}
	}
	return doc.Year, days, nil
}

// LoadDir reads every *.json production calendar in dir and returns a copy of
// base with those years replaced. Years not present in dir keep base's lists.
func LoadDir(dir string, base *Calendar) (*Calendar, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("calendar.LoadDir: %w", err)
	}

	cal := base
	for _, path := range files {
		year, days, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		cal = cal.WithYear(year, days)
	}
	return cal, nil
}

func loadFile(path string) (int, []time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("calendar.LoadDir: %w", err)
	}
	defer f.Close()

	year, days, err := ParseProductionCalendar(f)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return year, days, nil
}
