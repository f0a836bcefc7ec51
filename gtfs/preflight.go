package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"strings"
	"time"
)

// The engine loads the schedule itself; these checks only catch archives
// that would make it fail minutes into a run.
var requiredTables = []string{
	"agency.txt",
	"stops.txt",
	"routes.txt",
	"trips.txt",
	"stop_times.txt",
}

// CheckArchive verifies that the archive opens as a zip, carries every
// required GTFS table plus a service calendar, and that each table has a
// readable header row.
func CheckArchive(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open schedule archive %s: %w", path, err)
	}
	defer zr.Close()

	found := map[string]*zip.File{}
	for _, f := range zr.File {
		found[strings.ToLower(f.Name)] = f
	}
	missing := []string{}
	for _, table := range requiredTables {
		if found[table] == nil {
			missing = append(missing, table)
		}
	}
	if found["calendar.txt"] == nil && found["calendar_dates.txt"] == nil {
		missing = append(missing, "calendar.txt|calendar_dates.txt")
	}
	if len(missing) > 0 {
		return fmt.Errorf("schedule archive %s: missing %s", path, strings.Join(missing, ", "))
	}
	for _, table := range requiredTables {
		if _, err := readHeader(found[table]); err != nil {
			return fmt.Errorf("schedule archive %s: %s: %w", path, table, err)
		}
	}
	return nil
}

// ServiceCovers reports whether any service in the archive runs on the
// given day, per calendar.txt weekday flags and date ranges plus
// calendar_dates.txt added-service exceptions.
func ServiceCovers(path string, day time.Time) (bool, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return false, fmt.Errorf("open schedule archive %s: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		switch strings.ToLower(f.Name) {
		case "calendar.txt":
			ok, err := calendarCovers(f, day)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		case "calendar_dates.txt":
			ok, err := calendarDatesAdd(f, day)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}

func readHeader(f *zip.File) ([]string, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	head, err := csv.NewReader(r).Read()
	if err != nil {
		return nil, fmt.Errorf("unreadable header: %w", err)
	}
	return head, nil
}

func readAll(f *zip.File) ([][]string, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return csv.NewReader(r).ReadAll()
}

func columnIndex(head []string, col string) int {
	for i, h := range head {
		if strings.EqualFold(strings.TrimSpace(h), col) {
			return i
		}
	}
	return -1
}

var weekdayColumns = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

func calendarCovers(f *zip.File, day time.Time) (bool, error) {
	rec, err := readAll(f)
	if err != nil || len(rec) == 0 {
		return false, err
	}
	head := rec[0]
	dayCol := columnIndex(head, weekdayColumns[day.Weekday()])
	startCol := columnIndex(head, "start_date")
	endCol := columnIndex(head, "end_date")
	if dayCol < 0 || startCol < 0 || endCol < 0 {
		return false, fmt.Errorf("calendar.txt: missing weekday or date range columns")
	}
	// YYYYMMDD strings order the same way the dates do
	d := day.Format("20060102")
	for _, row := range rec[1:] {
		if strings.TrimSpace(row[dayCol]) != "1" {
			continue
		}
		start := strings.TrimSpace(row[startCol])
		end := strings.TrimSpace(row[endCol])
		if len(start) != 8 || len(end) != 8 {
			continue
		}
		if d >= start && d <= end {
			return true, nil
		}
	}
	return false, nil
}

func calendarDatesAdd(f *zip.File, day time.Time) (bool, error) {
	rec, err := readAll(f)
	if err != nil || len(rec) == 0 {
		return false, err
	}
	head := rec[0]
	dateCol := columnIndex(head, "date")
	typeCol := columnIndex(head, "exception_type")
	if dateCol < 0 || typeCol < 0 {
		return false, nil
	}
	want := day.Format("20060102")
	for _, row := range rec[1:] {
		// exception_type 1 adds service for the date
		if strings.TrimSpace(row[dateCol]) == want && strings.TrimSpace(row[typeCol]) == "1" {
			return true, nil
		}
	}
	return false, nil
}
