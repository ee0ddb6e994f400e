package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Holiday is a fixed non-business date
type Holiday struct {
	Date time.Time
	Note string
}

// HolidayCalendar implements Calendar using a local text file of holidays
type HolidayCalendar struct {
	filePath string
	logger   *zap.Logger
	data     map[string]Holiday // key: "YYYY-MM-DD"
}

// NewHolidayCalendar creates a new HolidayCalendar instance
func NewHolidayCalendar(filePath string, logger *zap.Logger) *HolidayCalendar {
	return &HolidayCalendar{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string]Holiday),
	}
}

// Load loads holidays from the calendar file
func (hc *HolidayCalendar) Load() error {
	file, err := os.Open(hc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	if err := hc.read(file); err != nil {
		return err
	}

	hc.logger.Info("Holiday file loaded",
		zap.String("file", hc.filePath),
		zap.Int("holidays", len(hc.data)))

	return nil
}

// read parses lines of the form: YYYY-MM-DD [note]
// Example: 2025-12-25 Christmas Day
func (hc *HolidayCalendar) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, " ", 2)
		date, err := time.Parse("2006-01-02", parts[0])
		if err != nil {
			hc.logger.Warn("Failed to parse holiday date",
				zap.Int("line", lineNo),
				zap.String("date", parts[0]),
				zap.Error(err))
			continue
		}

		note := ""
		if len(parts) == 2 {
			note = strings.TrimSpace(parts[1])
		}

		hc.data[dateKey(date)] = Holiday{Date: date, Note: note}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	return nil
}

// Lookup returns the holiday on the calendar date of t, if any
func (hc *HolidayCalendar) Lookup(t time.Time) (Holiday, bool) {
	h, ok := hc.data[dateKey(t)]
	return h, ok
}

// Len returns the number of loaded holidays
func (hc *HolidayCalendar) Len() int {
	return len(hc.data)
}

// IsBusinessDay implements Calendar
func (hc *HolidayCalendar) IsBusinessDay(date time.Time) bool {
	_, holiday := hc.data[dateKey(date)]
	return !holiday
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
