// Package planner is the boundary to the external generative model. The
// core consumes it as two capability calls; everything the model does
// (interpreting availability text, balancing shifts) stays on the other
// side of this interface.
package planner

import (
	"context"

	"github.com/capileggi/horarios-api/pkg/models"
)

// Planner converts free-text staffing requirements into a structured demand
// table and generates a proposed weekly schedule for a roster. Both calls
// block on a remote model and honor the context deadline.
type Planner interface {
	ParseRequirements(ctx context.Context, requirements string) (models.WeeklyDemand, error)
	GenerateSchedule(ctx context.Context, roster []models.Employee, requirements string) (models.WeeklySchedule, error)
}

// RequirementsParseError wraps any failure to turn requirements text into a
// demand table: transport errors, model errors or an unparseable response.
type RequirementsParseError struct {
	Err error
}

func (e *RequirementsParseError) Error() string {
	return "planner: failed to parse requirements: " + e.Err.Error()
}

func (e *RequirementsParseError) Unwrap() error { return e.Err }

// ScheduleGenerationError wraps any failure to generate a schedule.
type ScheduleGenerationError struct {
	Err error
}

func (e *ScheduleGenerationError) Error() string {
	return "planner: failed to generate schedule: " + e.Err.Error()
}

func (e *ScheduleGenerationError) Unwrap() error { return e.Err }
