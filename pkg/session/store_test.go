package session

import (
	"errors"
	"testing"

	"github.com/capileggi/horarios-api/pkg/models"
)

func TestCreateSeedsSession(t *testing.T) {
	store := NewStore()

	state := store.Create()

	if state.ID == "" {
		t.Error("Expected a session ID")
	}
	if len(state.Employees) != 7 {
		t.Errorf("Expected 7 seed employees, got %d", len(state.Employees))
	}
	if state.Requirements == "" {
		t.Error("Expected seed requirements text")
	}
	if state.Schedule != nil {
		t.Error("Expected no schedule before the first generation")
	}
}

func TestGetUnknownSession(t *testing.T) {
	store := NewStore()

	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAddEmployeeAssignsUniqueIDs(t *testing.T) {
	store := NewStore()
	state := store.Create()

	a, err := store.AddEmployee(state.ID, "Pedro", models.RoleHost, "Weekdays")
	if err != nil {
		t.Fatalf("AddEmployee failed: %v", err)
	}
	b, err := store.AddEmployee(state.ID, "María", models.RoleChef, "")
	if err != nil {
		t.Fatalf("AddEmployee failed: %v", err)
	}

	if a.ID == b.ID {
		t.Errorf("Expected distinct IDs, both got %d", a.ID)
	}
	got, _ := store.Get(state.ID)
	if len(got.Employees) != 9 {
		t.Errorf("Expected 9 employees, got %d", len(got.Employees))
	}
}

func TestRemoveEmployeeCascadesIntoSchedule(t *testing.T) {
	store := NewStore()
	state := store.Create()

	ws := models.NewWeeklySchedule()
	for _, day := range models.Days() {
		lunch := ws[day][models.ShiftLunch]
		lunch.Employees[models.RoleWaiter] = []int64{2, 3}
		ws[day][models.ShiftLunch] = lunch
	}
	if _, _, err := store.BeginGeneration(state.ID); err != nil {
		t.Fatalf("BeginGeneration failed: %v", err)
	}
	store.FinishGeneration(state.ID, ws)

	if err := store.RemoveEmployee(state.ID, 2); err != nil {
		t.Fatalf("RemoveEmployee failed: %v", err)
	}

	got, _ := store.Get(state.ID)
	if len(got.Employees) != 6 {
		t.Errorf("Expected 6 employees after removal, got %d", len(got.Employees))
	}
	for day, daily := range got.Schedule {
		for shiftType, shift := range daily {
			for _, ids := range shift.Employees {
				for _, id := range ids {
					if id == 2 {
						t.Errorf("Employee 2 still assigned in %s/%s", day, shiftType)
					}
				}
			}
		}
	}
}

func TestRoleChangePurgesOldAssignments(t *testing.T) {
	store := NewStore()
	state := store.Create()

	ws := models.NewWeeklySchedule()
	lunch := ws[models.Monday][models.ShiftLunch]
	lunch.Employees[models.RoleWaiter] = []int64{2}
	ws[models.Monday][models.ShiftLunch] = lunch
	if _, _, err := store.BeginGeneration(state.ID); err != nil {
		t.Fatalf("BeginGeneration failed: %v", err)
	}
	store.FinishGeneration(state.ID, ws)

	emp, err := store.UpdateEmployee(state.ID, 2, "Luis Fernández", models.RoleBartender, "Available every evening")
	if err != nil {
		t.Fatalf("UpdateEmployee failed: %v", err)
	}
	if emp.Role != models.RoleBartender {
		t.Errorf("Expected role Bartender, got %s", emp.Role)
	}

	got, _ := store.Get(state.ID)
	if ids := got.Schedule[models.Monday][models.ShiftLunch].Employees[models.RoleWaiter]; len(ids) != 0 {
		t.Errorf("Expected old waiter assignment purged, got %v", ids)
	}
}

func TestGenerationLifecycle(t *testing.T) {
	store := NewStore()
	state := store.Create()

	roster, requirements, err := store.BeginGeneration(state.ID)
	if err != nil {
		t.Fatalf("BeginGeneration failed: %v", err)
	}
	if len(roster) != 7 || requirements == "" {
		t.Errorf("Expected seeded roster and requirements, got %d employees", len(roster))
	}

	// Only one generation may be in flight
	if _, _, err := store.BeginGeneration(state.ID); !errors.Is(err, ErrGenerationInFlight) {
		t.Errorf("Expected ErrGenerationInFlight, got %v", err)
	}

	// While loading there is no schedule to edit
	if _, err := store.Remove(state.ID, models.Monday, models.ShiftLunch, 1); !errors.Is(err, ErrNoSchedule) {
		t.Errorf("Expected ErrNoSchedule, got %v", err)
	}

	store.FinishGeneration(state.ID, models.NewWeeklySchedule())

	got, _ := store.Get(state.ID)
	if got.Generating {
		t.Error("Expected generating flag cleared")
	}
	if got.Schedule == nil {
		t.Error("Expected a schedule after FinishGeneration")
	}

	// A failed generation leaves no schedule but unlocks the session
	if _, _, err := store.BeginGeneration(state.ID); err != nil {
		t.Fatalf("BeginGeneration failed: %v", err)
	}
	store.FinishGeneration(state.ID, nil)
	got, _ = store.Get(state.ID)
	if got.Schedule != nil {
		t.Error("Expected schedule cleared after failed generation")
	}
	if got.Generating {
		t.Error("Expected generating flag cleared after failure")
	}
}

func TestMoveUnknownEmployeeIsSilentNoOp(t *testing.T) {
	store := NewStore()
	state := store.Create()
	if _, _, err := store.BeginGeneration(state.ID); err != nil {
		t.Fatalf("BeginGeneration failed: %v", err)
	}
	store.FinishGeneration(state.ID, models.NewWeeklySchedule())

	before, _ := store.Get(state.ID)
	ws, err := store.Move(state.ID, models.DragPayload{EmployeeID: 404}, models.Monday, models.ShiftLunch)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	for _, role := range models.Roles() {
		got := ws[models.Monday][models.ShiftLunch].Employees[role]
		want := before.Schedule[models.Monday][models.ShiftLunch].Employees[role]
		if len(got) != len(want) {
			t.Errorf("Expected no change for role %s, got %v", role, got)
		}
	}
}

func TestMoveUsesCurrentRosterRole(t *testing.T) {
	store := NewStore()
	state := store.Create()
	if _, _, err := store.BeginGeneration(state.ID); err != nil {
		t.Fatalf("BeginGeneration failed: %v", err)
	}
	store.FinishGeneration(state.ID, models.NewWeeklySchedule())

	// Employee 4 is a bartender on the seed roster
	ws, err := store.Move(state.ID, models.DragPayload{EmployeeID: 4}, models.Thursday, models.ShiftDinner)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	ids := ws[models.Thursday][models.ShiftDinner].Employees[models.RoleBartender]
	if len(ids) != 1 || ids[0] != 4 {
		t.Errorf("Expected bartender list [4], got %v", ids)
	}
}
