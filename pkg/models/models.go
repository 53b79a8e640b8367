package models

// Role is a job function in the restaurant, used both as a roster attribute
// and as the grouping key for assignments inside a shift.
type Role string

const (
	RoleChef      Role = "Chef"
	RoleWaiter    Role = "Waiter"
	RoleBartender Role = "Bartender"
	RoleHost      Role = "Host"
)

// Roles returns every role in display order.
func Roles() []Role {
	return []Role{RoleChef, RoleWaiter, RoleBartender, RoleHost}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleChef, RoleWaiter, RoleBartender, RoleHost:
		return true
	}
	return false
}

// DayOfWeek identifies one of the seven days. Iteration order matters for
// display and for the weekly projections, so always range over Days().
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// Days returns the days of the week in fixed Monday-first order.
func Days() []DayOfWeek {
	return []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Valid reports whether d is one of the seven days.
func (d DayOfWeek) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// ShiftType is one of the two fixed daily service periods.
type ShiftType string

const (
	ShiftLunch  ShiftType = "lunch"
	ShiftDinner ShiftType = "dinner"
)

// ShiftTypes returns the two shift types in service order.
func ShiftTypes() []ShiftType {
	return []ShiftType{ShiftLunch, ShiftDinner}
}

// Valid reports whether s is lunch or dinner.
func (s ShiftType) Valid() bool {
	return s == ShiftLunch || s == ShiftDinner
}

// Employee is a roster member. Identity is ID; Availability is free text
// interpreted by the AI planner, never parsed locally.
type Employee struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Availability string `json:"availability"`
}

// Shift is one service period of one day: a wall-clock time window plus the
// assigned employee IDs grouped by role. Within a shift an employee ID
// appears in at most one role list, at most once.
type Shift struct {
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	Employees map[Role][]int64 `json:"employees"`
}

// DailySchedule maps the two shift types to their shifts.
type DailySchedule map[ShiftType]Shift

// WeeklySchedule is the central mutable entity: the full 7-day x 2-shift
// assignment structure. It is always fully populated and is replaced
// wholesale on every mutation rather than patched in place.
type WeeklySchedule map[DayOfWeek]DailySchedule

// RoleDemand is the required headcount per role for one shift.
type RoleDemand map[Role]int

// DailyDemand maps the two shift types to their required headcounts.
type DailyDemand map[ShiftType]RoleDemand

// WeeklyDemand is the full 7-day x 2-shift required-headcount structure,
// parsed once from the free-text requirements and read-only afterwards.
type WeeklyDemand map[DayOfWeek]DailyDemand

// EmployeeHours holds the derived worked-hours totals for one employee.
// Recomputed fully on every schedule or roster change, never patched.
type EmployeeHours struct {
	Daily  map[DayOfWeek]float64 `json:"daily"`
	Weekly float64               `json:"weekly"`
}

// Slot names one shift cell of the week.
type Slot struct {
	Day   DayOfWeek `json:"day"`
	Shift ShiftType `json:"shift"`
}

// DragPayload is the transfer object a drag-and-drop client sends. A nil
// Source means the employee is being assigned from the roster rather than
// moved from another shift.
type DragPayload struct {
	EmployeeID int64 `json:"employee_id"`
	Source     *Slot `json:"source,omitempty"`
}

// Participation is an employee's membership in the two shifts of one day.
type Participation struct {
	Lunch  bool `json:"lunch"`
	Dinner bool `json:"dinner"`
}

// NewWeeklySchedule returns an empty schedule with every day and shift
// present, default time windows set and all role lists allocated.
func NewWeeklySchedule() WeeklySchedule {
	ws := make(WeeklySchedule, len(Days()))
	for _, day := range Days() {
		ws[day] = DailySchedule{
			ShiftLunch:  newShift("12:00", "16:00"),
			ShiftDinner: newShift("19:00", "23:00"),
		}
	}
	return ws
}

func newShift(start, end string) Shift {
	sh := Shift{StartTime: start, EndTime: end, Employees: make(map[Role][]int64, len(Roles()))}
	for _, role := range Roles() {
		sh.Employees[role] = []int64{}
	}
	return sh
}

// Clone returns a deep copy of the schedule. Mutations always operate on a
// clone so the previous value stays valid and unaliased.
func (ws WeeklySchedule) Clone() WeeklySchedule {
	if ws == nil {
		return nil
	}
	out := make(WeeklySchedule, len(ws))
	for day, daily := range ws {
		outDaily := make(DailySchedule, len(daily))
		for shiftType, shift := range daily {
			employees := make(map[Role][]int64, len(shift.Employees))
			for role, ids := range shift.Employees {
				employees[role] = append([]int64{}, ids...)
			}
			outDaily[shiftType] = Shift{
				StartTime: shift.StartTime,
				EndTime:   shift.EndTime,
				Employees: employees,
			}
		}
		out[day] = outDaily
	}
	return out
}

// Normalize fills in any day, shift or role list missing from an externally
// produced schedule so the 7x2 shape invariant holds. The AI contract asks
// for empty arrays rather than absent keys, but the response is not trusted.
func (ws WeeklySchedule) Normalize() {
	for _, day := range Days() {
		daily, ok := ws[day]
		if !ok {
			daily = make(DailySchedule, 2)
			ws[day] = daily
		}
		for _, shiftType := range ShiftTypes() {
			shift, ok := daily[shiftType]
			if !ok {
				if shiftType == ShiftLunch {
					shift = newShift("12:00", "16:00")
				} else {
					shift = newShift("19:00", "23:00")
				}
			}
			if shift.Employees == nil {
				shift.Employees = make(map[Role][]int64, len(Roles()))
			}
			for _, role := range Roles() {
				if shift.Employees[role] == nil {
					shift.Employees[role] = []int64{}
				}
			}
			daily[shiftType] = shift
		}
	}
}

// Normalize fills in missing days, shifts and role entries of an externally
// produced demand table. Missing headcounts default to zero.
func (wd WeeklyDemand) Normalize() {
	for _, day := range Days() {
		daily, ok := wd[day]
		if !ok {
			daily = make(DailyDemand, 2)
			wd[day] = daily
		}
		for _, shiftType := range ShiftTypes() {
			if daily[shiftType] == nil {
				daily[shiftType] = make(RoleDemand, len(Roles()))
			}
		}
	}
}
