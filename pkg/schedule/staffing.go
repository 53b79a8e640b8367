package schedule

import "github.com/capileggi/horarios-api/pkg/models"

// Coverage holds two parallel 7-element series in Monday-first day order:
// the summed required headcount and the staffed headcount for one shift
// type. It is a read-side projection, recomputed on request.
type Coverage struct {
	Required []int `json:"required"`
	Staffed  []int `json:"staffed"`
}

// CompareStaffing derives the required-vs-staffed series for one shift type.
// Required sums every role's demanded headcount (missing entries count 0);
// staffed counts every assigned ID across all role lists of that shift.
func CompareStaffing(ws models.WeeklySchedule, demand models.WeeklyDemand, shiftType models.ShiftType) Coverage {
	days := models.Days()
	cov := Coverage{
		Required: make([]int, len(days)),
		Staffed:  make([]int, len(days)),
	}
	for i, day := range days {
		for _, count := range demand[day][shiftType] {
			cov.Required[i] += count
		}
		for _, ids := range ws[day][shiftType].Employees {
			cov.Staffed[i] += len(ids)
		}
	}
	return cov
}
