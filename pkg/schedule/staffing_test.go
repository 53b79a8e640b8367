package schedule

import (
	"testing"

	"github.com/capileggi/horarios-api/pkg/models"
)

func TestCompareStaffing(t *testing.T) {
	ws := models.NewWeeklySchedule()
	monday := ws[models.Monday]
	lunch := monday[models.ShiftLunch]
	lunch.Employees[models.RoleChef] = []int64{1}
	lunch.Employees[models.RoleWaiter] = []int64{2, 3}
	monday[models.ShiftLunch] = lunch

	demand := models.WeeklyDemand{
		models.Monday: models.DailyDemand{
			models.ShiftLunch: models.RoleDemand{
				models.RoleChef:   1,
				models.RoleWaiter: 2,
			},
		},
	}

	cov := CompareStaffing(ws, demand, models.ShiftLunch)

	if len(cov.Required) != 7 || len(cov.Staffed) != 7 {
		t.Fatalf("Expected 7-element series, got %d/%d", len(cov.Required), len(cov.Staffed))
	}
	if cov.Required[0] != 3 {
		t.Errorf("Expected required[monday] == 3, got %d", cov.Required[0])
	}
	if cov.Staffed[0] != 3 {
		t.Errorf("Expected staffed[monday] == 3, got %d", cov.Staffed[0])
	}
	// Days with no demand entry count as zero
	if cov.Required[1] != 0 || cov.Staffed[1] != 0 {
		t.Errorf("Expected tuesday 0/0, got %d/%d", cov.Required[1], cov.Staffed[1])
	}
}

func TestCompareStaffing_ShiftsIndependent(t *testing.T) {
	ws := models.NewWeeklySchedule()
	friday := ws[models.Friday]
	dinner := friday[models.ShiftDinner]
	dinner.Employees[models.RoleWaiter] = []int64{2, 3, 7}
	friday[models.ShiftDinner] = dinner

	demand := models.WeeklyDemand{
		models.Friday: models.DailyDemand{
			models.ShiftDinner: models.RoleDemand{models.RoleWaiter: 3, models.RoleHost: 1},
		},
	}

	lunchCov := CompareStaffing(ws, demand, models.ShiftLunch)
	dinnerCov := CompareStaffing(ws, demand, models.ShiftDinner)

	if lunchCov.Required[4] != 0 || lunchCov.Staffed[4] != 0 {
		t.Errorf("Expected lunch friday 0/0, got %d/%d", lunchCov.Required[4], lunchCov.Staffed[4])
	}
	if dinnerCov.Required[4] != 4 {
		t.Errorf("Expected dinner required[friday] == 4, got %d", dinnerCov.Required[4])
	}
	if dinnerCov.Staffed[4] != 3 {
		t.Errorf("Expected dinner staffed[friday] == 3, got %d", dinnerCov.Staffed[4])
	}
}

func TestCompareStaffing_NilInputs(t *testing.T) {
	cov := CompareStaffing(nil, nil, models.ShiftLunch)
	for i := range cov.Required {
		if cov.Required[i] != 0 || cov.Staffed[i] != 0 {
			t.Fatalf("Expected all-zero coverage for nil inputs, got %+v", cov)
		}
	}
}
