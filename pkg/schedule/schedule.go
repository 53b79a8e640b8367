// Package schedule holds the pure schedule-editing engine: every operation
// takes a WeeklySchedule, deep-copies it, applies one edit and returns the
// copy. References to employees, days or shifts that do not exist are
// silent no-ops, since drag-and-drop clients can legitimately race against
// roster changes.
package schedule

import "github.com/capileggi/horarios-api/pkg/models"

// MoveAssignment places employeeID into the target shift's list for role,
// first removing it from the source shift when a distinct source is given.
// The ID is appended at the end of the role list, never inserted, so manual
// ordering survives. Moving a cell onto itself is a no-op.
func MoveAssignment(ws models.WeeklySchedule, employeeID int64, role models.Role, targetDay models.DayOfWeek, targetShift models.ShiftType, source *models.Slot) models.WeeklySchedule {
	if ws == nil {
		return ws
	}
	if _, ok := ws[targetDay]; !ok {
		return ws
	}
	if _, ok := ws[targetDay][targetShift]; !ok {
		return ws
	}
	if source != nil && source.Day == targetDay && source.Shift == targetShift {
		return ws
	}

	out := ws.Clone()
	if source != nil {
		if shift, ok := out[source.Day][source.Shift]; ok {
			shift.Employees[role] = removeID(shift.Employees[role], employeeID)
		}
	}

	shift := out[targetDay][targetShift]
	if !containsID(shift.Employees[role], employeeID) {
		shift.Employees[role] = append(shift.Employees[role], employeeID)
	}
	out[targetDay][targetShift] = shift
	return out
}

// RemoveAssignment drops employeeID from whichever role list of the given
// shift contains it. Removing an absent ID is a no-op, so the operation is
// idempotent.
func RemoveAssignment(ws models.WeeklySchedule, day models.DayOfWeek, shiftType models.ShiftType, employeeID int64) models.WeeklySchedule {
	if ws == nil {
		return ws
	}
	if _, ok := ws[day]; !ok {
		return ws
	}
	if _, ok := ws[day][shiftType]; !ok {
		return ws
	}

	out := ws.Clone()
	shift := out[day][shiftType]
	for role, ids := range shift.Employees {
		shift.Employees[role] = removeID(ids, employeeID)
	}
	out[day][shiftType] = shift
	return out
}

// SetShiftWindow overwrites the time window of one shift. No ordering
// validation happens here; hour aggregation treats a non-positive window as
// zero contribution.
func SetShiftWindow(ws models.WeeklySchedule, day models.DayOfWeek, shiftType models.ShiftType, start, end string) models.WeeklySchedule {
	if ws == nil {
		return ws
	}
	if _, ok := ws[day]; !ok {
		return ws
	}
	if _, ok := ws[day][shiftType]; !ok {
		return ws
	}

	out := ws.Clone()
	shift := out[day][shiftType]
	shift.StartTime = start
	shift.EndTime = end
	out[day][shiftType] = shift
	return out
}

// PurgeEmployee removes employeeID from every role list of every shift of
// every day. Call it with the employee's role before discarding the roster
// entry; role is accepted for symmetry with the other operations but the
// sweep covers all role lists so a stale role cannot leave assignments
// behind.
func PurgeEmployee(ws models.WeeklySchedule, employeeID int64, role models.Role) models.WeeklySchedule {
	if ws == nil {
		return ws
	}
	out := ws.Clone()
	for day, daily := range out {
		for shiftType, shift := range daily {
			for r, ids := range shift.Employees {
				shift.Employees[r] = removeID(ids, employeeID)
			}
			daily[shiftType] = shift
		}
		out[day] = daily
	}
	return out
}

// SetWeeklyParticipation reconciles employeeID's membership across all 14
// day/shift cells against the requested booleans: add where true and absent,
// remove where false and present, leave untouched otherwise. The result is
// identical to applying the single-cell operations independently per cell.
func SetWeeklyParticipation(ws models.WeeklySchedule, employeeID int64, role models.Role, assignments map[models.DayOfWeek]models.Participation) models.WeeklySchedule {
	if ws == nil {
		return ws
	}
	out := ws.Clone()
	for _, day := range models.Days() {
		daily, ok := out[day]
		if !ok {
			continue
		}
		want, ok := assignments[day]
		if !ok {
			continue
		}
		setMembership(daily, models.ShiftLunch, role, employeeID, want.Lunch)
		setMembership(daily, models.ShiftDinner, role, employeeID, want.Dinner)
	}
	return out
}

func setMembership(daily models.DailySchedule, shiftType models.ShiftType, role models.Role, employeeID int64, member bool) {
	shift, ok := daily[shiftType]
	if !ok {
		return
	}
	if member {
		if !containsID(shift.Employees[role], employeeID) {
			shift.Employees[role] = append(shift.Employees[role], employeeID)
		}
	} else {
		shift.Employees[role] = removeID(shift.Employees[role], employeeID)
	}
	daily[shiftType] = shift
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
