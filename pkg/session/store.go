// Package session keeps the transient editing state: rosters, requirements
// text, the current schedule and the parsed demand live only in memory for
// the lifetime of the process. The store is the single writer of schedule
// state; every edit goes through the pure engine in pkg/schedule and the
// result replaces the old value wholesale.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/capileggi/horarios-api/pkg/models"
	"github.com/capileggi/horarios-api/pkg/schedule"
)

var (
	// ErrNotFound means the session ID is unknown (or expired with the process).
	ErrNotFound = errors.New("session not found")
	// ErrNoSchedule means a schedule edit arrived while no schedule exists,
	// typically during or before the first generation.
	ErrNoSchedule = errors.New("no schedule to edit")
	// ErrGenerationInFlight means a generation request is already running
	// for this session.
	ErrGenerationInFlight = errors.New("schedule generation already in progress")
)

// State is a point-in-time snapshot of one session. Schedule and Demand are
// nil until the first successful generation / parse.
type State struct {
	ID           string                `json:"id"`
	Employees    []models.Employee     `json:"employees"`
	Requirements string                `json:"requirements"`
	Schedule     models.WeeklySchedule `json:"schedule,omitempty"`
	Demand       models.WeeklyDemand   `json:"demand,omitempty"`
	Generating   bool                  `json:"generating"`
}

type sessionState struct {
	employees    []models.Employee
	requirements string
	schedule     models.WeeklySchedule
	demand       models.WeeklyDemand
	generating   bool
}

// Store holds every live session behind one mutex. Schedule values are
// immutable once stored, so reads hand out clones and writers swap in a
// freshly built value.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*sessionState)}
}

// SeedEmployees is the sample roster a fresh session starts from.
func SeedEmployees() []models.Employee {
	return []models.Employee{
		{ID: 1, Name: "Ana García", Role: models.RoleChef, Availability: "Not available on weekends"},
		{ID: 2, Name: "Luis Fernández", Role: models.RoleWaiter, Availability: "Available every evening"},
		{ID: 3, Name: "Sofía Martínez", Role: models.RoleWaiter, Availability: "Prefers lunch shifts"},
		{ID: 4, Name: "Carlos Pileggi", Role: models.RoleBartender, Availability: "Available Thursday to Sunday"},
		{ID: 5, Name: "Elena Pérez", Role: models.RoleHost, Availability: "Flexible shifts"},
		{ID: 6, Name: "Miguel Sánchez", Role: models.RoleChef, Availability: "Weekends only"},
		{ID: 7, Name: "Lucía Gómez", Role: models.RoleWaiter, Availability: "Not available on Mondays"},
	}
}

// SeedRequirements is the sample staffing statement a fresh session starts from.
const SeedRequirements = "1 Chef, 2 Waiters and 1 Host are needed for the lunch shift. " +
	"For the dinner shift, 1 Chef, 3 Waiters, 1 Bartender and 1 Host are needed. " +
	"On weekends, an additional chef is needed for each shift."

// Create opens a new session seeded with the sample roster and requirements.
func (s *Store) Create() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.sessions[id] = &sessionState{
		employees:    SeedEmployees(),
		requirements: SeedRequirements,
	}
	return s.snapshotLocked(id)
}

// Get returns a snapshot of the session.
func (s *Store) Get(id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return State{}, ErrNotFound
	}
	return s.snapshotLocked(id), nil
}

// AddEmployee appends a new roster member. The ID is taken from the creation
// time in Unix milliseconds, bumped past any collision.
func (s *Store) AddEmployee(sessionID, name string, role models.Role, availability string) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return models.Employee{}, ErrNotFound
	}

	id := time.Now().UnixMilli()
	for st.findEmployee(id) != nil {
		id++
	}
	emp := models.Employee{ID: id, Name: name, Role: role, Availability: availability}
	st.employees = append(st.employees, emp)
	return emp, nil
}

// UpdateEmployee edits a roster member. A role change purges the employee's
// schedule assignments first, under the old role, so nothing is orphaned in
// the role-keyed shift structure.
func (s *Store) UpdateEmployee(sessionID string, employeeID int64, name string, role models.Role, availability string) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return models.Employee{}, ErrNotFound
	}
	emp := st.findEmployee(employeeID)
	if emp == nil {
		return models.Employee{}, ErrNotFound
	}

	if role != emp.Role && st.schedule != nil {
		st.schedule = schedule.PurgeEmployee(st.schedule, employeeID, emp.Role)
	}
	emp.Name = name
	emp.Role = role
	emp.Availability = availability
	return *emp, nil
}

// RemoveEmployee deletes a roster member and purges every assignment of that
// ID from the schedule in a single pass.
func (s *Store) RemoveEmployee(sessionID string, employeeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}

	for i, emp := range st.employees {
		if emp.ID == employeeID {
			if st.schedule != nil {
				st.schedule = schedule.PurgeEmployee(st.schedule, employeeID, emp.Role)
			}
			st.employees = append(st.employees[:i], st.employees[i+1:]...)
			return nil
		}
	}
	return nil // already gone, nothing to do
}

// SetRequirements stores the new requirements text.
func (s *Store) SetRequirements(sessionID, requirements string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	st.requirements = requirements
	return nil
}

// SetDemand stores a freshly parsed demand table. On parse failure the
// caller simply never calls this, so the previous demand survives.
func (s *Store) SetDemand(sessionID string, demand models.WeeklyDemand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	st.demand = demand
	return nil
}

// BeginGeneration marks the session as loading and clears the prior
// schedule. Only one generation may be in flight per session. It returns the
// roster and requirements the generation should run against.
func (s *Store) BeginGeneration(sessionID string) ([]models.Employee, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, "", ErrNotFound
	}
	if st.generating {
		return nil, "", ErrGenerationInFlight
	}
	st.generating = true
	st.schedule = nil
	return append([]models.Employee{}, st.employees...), st.requirements, nil
}

// FinishGeneration stores the generated schedule (nil on failure) and
// clears the loading flag.
func (s *Store) FinishGeneration(sessionID string, ws models.WeeklySchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	st.generating = false
	st.schedule = ws
}

// Move applies a drag-and-drop placement. An unknown employee ID is a
// silent no-op: the drag may have raced a roster deletion.
func (s *Store) Move(sessionID string, payload models.DragPayload, targetDay models.DayOfWeek, targetShift models.ShiftType) (models.WeeklySchedule, error) {
	return s.edit(sessionID, func(st *sessionState) models.WeeklySchedule {
		emp := st.findEmployee(payload.EmployeeID)
		if emp == nil {
			return st.schedule
		}
		return schedule.MoveAssignment(st.schedule, emp.ID, emp.Role, targetDay, targetShift, payload.Source)
	})
}

// Remove drops one employee from one shift.
func (s *Store) Remove(sessionID string, day models.DayOfWeek, shiftType models.ShiftType, employeeID int64) (models.WeeklySchedule, error) {
	return s.edit(sessionID, func(st *sessionState) models.WeeklySchedule {
		return schedule.RemoveAssignment(st.schedule, day, shiftType, employeeID)
	})
}

// SetWindow overwrites one shift's time window.
func (s *Store) SetWindow(sessionID string, day models.DayOfWeek, shiftType models.ShiftType, start, end string) (models.WeeklySchedule, error) {
	return s.edit(sessionID, func(st *sessionState) models.WeeklySchedule {
		return schedule.SetShiftWindow(st.schedule, day, shiftType, start, end)
	})
}

// SetParticipation reconciles one employee's membership across the whole
// week. Unknown employee IDs are a silent no-op.
func (s *Store) SetParticipation(sessionID string, employeeID int64, assignments map[models.DayOfWeek]models.Participation) (models.WeeklySchedule, error) {
	return s.edit(sessionID, func(st *sessionState) models.WeeklySchedule {
		emp := st.findEmployee(employeeID)
		if emp == nil {
			return st.schedule
		}
		return schedule.SetWeeklyParticipation(st.schedule, emp.ID, emp.Role, assignments)
	})
}

// Hours recomputes the per-employee hours projection from the current state.
func (s *Store) Hours(sessionID string) (map[int64]models.EmployeeHours, []models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, ErrNotFound
	}
	roster := append([]models.Employee{}, st.employees...)
	return schedule.AggregateHours(st.schedule, roster), roster, nil
}

// Staffing recomputes the demand-vs-staffing projection for both shifts.
func (s *Store) Staffing(sessionID string) (map[models.ShiftType]schedule.Coverage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return map[models.ShiftType]schedule.Coverage{
		models.ShiftLunch:  schedule.CompareStaffing(st.schedule, st.demand, models.ShiftLunch),
		models.ShiftDinner: schedule.CompareStaffing(st.schedule, st.demand, models.ShiftDinner),
	}, nil
}

func (s *Store) edit(sessionID string, fn func(*sessionState) models.WeeklySchedule) (models.WeeklySchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	if st.schedule == nil {
		return nil, ErrNoSchedule
	}
	st.schedule = fn(st)
	return st.schedule.Clone(), nil
}

func (st *sessionState) findEmployee(id int64) *models.Employee {
	for i := range st.employees {
		if st.employees[i].ID == id {
			return &st.employees[i]
		}
	}
	return nil
}

func (s *Store) snapshotLocked(id string) State {
	st := s.sessions[id]
	return State{
		ID:           id,
		Employees:    append([]models.Employee{}, st.employees...),
		Requirements: st.requirements,
		Schedule:     st.schedule.Clone(),
		Demand:       st.demand,
		Generating:   st.generating,
	}
}
