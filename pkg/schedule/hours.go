package schedule

import (
	"strconv"
	"strings"

	"github.com/capileggi/horarios-api/pkg/models"
)

// TimeToHours converts a wall-clock "HH:MM" string into fractional hours
// (hours + minutes/60). Strings without a separator read as 0; a component
// that fails to parse reads as 0. Time fields are user-editable free text,
// so malformed input must never error.
func TimeToHours(t string) float64 {
	hh, mm, ok := strings.Cut(t, ":")
	if !ok {
		return 0
	}
	hours, _ := strconv.Atoi(strings.TrimSpace(hh))
	minutes, _ := strconv.Atoi(strings.TrimSpace(mm))
	return float64(hours) + float64(minutes)/60
}

// ShiftDuration returns the length of a shift in hours, or 0 when the window
// is inverted, empty or malformed.
func ShiftDuration(shift models.Shift) float64 {
	d := TimeToHours(shift.EndTime) - TimeToHours(shift.StartTime)
	if d <= 0 {
		return 0
	}
	return d
}

// AggregateHours computes per-employee daily and weekly worked hours from
// the schedule's shift windows. Every roster member is present in the result
// even with zero assignments; IDs in the schedule that are not on the roster
// contribute nothing. Shifts with a non-positive duration are skipped.
func AggregateHours(ws models.WeeklySchedule, roster []models.Employee) map[int64]models.EmployeeHours {
	hours := make(map[int64]models.EmployeeHours, len(roster))
	for _, emp := range roster {
		hours[emp.ID] = models.EmployeeHours{Daily: make(map[models.DayOfWeek]float64)}
	}

	for day, daily := range ws {
		for _, shift := range daily {
			duration := ShiftDuration(shift)
			if duration <= 0 {
				continue
			}
			for _, ids := range shift.Employees {
				for _, id := range ids {
					eh, ok := hours[id]
					if !ok {
						continue
					}
					eh.Daily[day] += duration
					eh.Weekly += duration
					hours[id] = eh
				}
			}
		}
	}
	return hours
}
