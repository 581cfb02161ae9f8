package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultTimeGrid lists the start of every one-hour teaching slot, with a
// lunch break between 12:00 and 14:00. Placement runs on this grid rather
// than on the configured school day window; BuildTimeGrid is the extension
// point for deriving the grid from SchoolCalendar instead.
var DefaultTimeGrid = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"14:00", "15:00", "16:00", "17:00",
}

// BuildTimeGrid derives a slot grid from a day window and session length.
func BuildTimeGrid(start, end string, sessionMinutes int) ([]string, error) {
	if sessionMinutes <= 0 {
		return nil, fmt.Errorf("session duration must be positive, got %d", sessionMinutes)
	}
	startMin, err := ParseClock(start)
	if err != nil {
		return nil, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return nil, err
	}
	if endMin <= startMin {
		return nil, fmt.Errorf("day window %s-%s is empty", start, end)
	}

	var grid []string
	for t := startMin; t+sessionMinutes <= endMin; t += sessionMinutes {
		grid = append(grid, fmt.Sprintf("%02d:%02d", t/60, t%60))
	}
	return grid, nil
}

// ParseClock converts an "HH:mm" wall-clock string to minutes since
// midnight. Anything that does not parse cleanly is rejected.
func ParseClock(raw string) (int, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", raw)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", raw)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value %q out of range", raw)
	}
	return hours*60 + minutes, nil
}
