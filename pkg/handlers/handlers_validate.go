package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/capileggi/horarios-api/pkg/models"
)

// ValidateInput checks a roster (and optionally a schedule) for structural
// problems before a client imports it into a session: duplicate IDs, unknown
// roles, assignments referencing absent employees, and an employee appearing
// twice within one shift.
func (h *Handler) ValidateInput(c *gin.Context) {
	var input struct {
		Employees []models.Employee     `json:"employees"`
		Schedule  models.WeeklySchedule `json:"schedule,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Employees) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one employee is required",
		})
		return
	}

	// Check for duplicate IDs and unknown roles
	empIDs := make(map[int64]bool)
	for _, emp := range input.Employees {
		if empIDs[emp.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": fmt.Sprintf("Duplicate employee ID: %d", emp.ID)})
			return
		}
		if !emp.Role.Valid() {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": fmt.Sprintf("Unknown role for employee %d: %s", emp.ID, emp.Role)})
			return
		}
		empIDs[emp.ID] = true
	}

	assignmentCount := 0
	if input.Schedule != nil {
		for day, daily := range input.Schedule {
			for shiftType, shift := range daily {
				seen := make(map[int64]bool)
				for _, ids := range shift.Employees {
					for _, id := range ids {
						if !empIDs[id] {
							c.JSON(http.StatusOK, gin.H{
								"valid": false,
								"error": fmt.Sprintf("Shift %s/%s references unknown employee %d", day, shiftType, id),
							})
							return
						}
						if seen[id] {
							c.JSON(http.StatusOK, gin.H{
								"valid": false,
								"error": fmt.Sprintf("Employee %d assigned twice to shift %s/%s", id, day, shiftType),
							})
							return
						}
						seen[id] = true
						assignmentCount++
					}
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"employee_count":   len(input.Employees),
			"assignment_count": assignmentCount,
		},
	})
}
