package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/capileggi/horarios-api/pkg/models"
	"github.com/capileggi/horarios-api/pkg/session"
)

func (h *Handler) scheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, session.ErrNoSchedule):
		c.JSON(http.StatusConflict, gin.H{"error": "No schedule exists yet; generate one first"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// MoveAssignment applies a drag-and-drop placement: the payload carries the
// employee and, when moving an existing assignment, its source cell.
func (h *Handler) MoveAssignment(c *gin.Context) {
	var req struct {
		models.DragPayload
		Target models.Slot `json:"target"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Target.Day.Valid() || !req.Target.Shift.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target day or shift"})
		return
	}

	ws, err := h.Sessions.Move(c.Param("id"), req.DragPayload, req.Target.Day, req.Target.Shift)
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": ws})
}

// RemoveAssignment drops one employee from one shift
func (h *Handler) RemoveAssignment(c *gin.Context) {
	var req struct {
		Day        models.DayOfWeek `json:"day"`
		Shift      models.ShiftType `json:"shift"`
		EmployeeID int64            `json:"employee_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Day.Valid() || !req.Shift.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day or shift"})
		return
	}

	ws, err := h.Sessions.Remove(c.Param("id"), req.Day, req.Shift, req.EmployeeID)
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": ws})
}

// SetShiftWindow overwrites one shift's start and end times. Times are
// user-edited free text; ordering is not validated here, an inverted window
// simply contributes zero hours downstream.
func (h *Handler) SetShiftWindow(c *gin.Context) {
	var req struct {
		Day       models.DayOfWeek `json:"day"`
		Shift     models.ShiftType `json:"shift"`
		StartTime string           `json:"start_time"`
		EndTime   string           `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Day.Valid() || !req.Shift.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day or shift"})
		return
	}

	ws, err := h.Sessions.SetWindow(c.Param("id"), req.Day, req.Shift, req.StartTime, req.EndTime)
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": ws})
}

// SetParticipation bulk-edits one employee's whole week: for every day a
// lunch and dinner boolean decides membership in that shift.
func (h *Handler) SetParticipation(c *gin.Context) {
	var req struct {
		EmployeeID  int64                                     `json:"employee_id"`
		Assignments map[models.DayOfWeek]models.Participation `json:"assignments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for day := range req.Assignments {
		if !day.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day: " + string(day)})
			return
		}
	}

	ws, err := h.Sessions.SetParticipation(c.Param("id"), req.EmployeeID, req.Assignments)
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": ws})
}

// GetHours returns the per-employee daily/weekly hours projection
func (h *Handler) GetHours(c *gin.Context) {
	hours, _, err := h.Sessions.Hours(c.Param("id"))
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hours": hours})
}

// GetHoursCSV exports the hours projection as CSV, one row per employee
func (h *Handler) GetHoursCSV(c *gin.Context) {
	hours, roster, err := h.Sessions.Hours(c.Param("id"))
	if err != nil {
		h.scheduleError(c, err)
		return
	}

	var outCSV strings.Builder
	writer := csv.NewWriter(&outCSV)

	header := []string{"employee_id", "name", "role"}
	for _, day := range models.Days() {
		header = append(header, string(day))
	}
	header = append(header, "weekly_hours")
	writer.Write(header)

	for _, emp := range roster {
		eh := hours[emp.ID]
		row := []string{
			fmt.Sprintf("%d", emp.ID),
			emp.Name,
			string(emp.Role),
		}
		for _, day := range models.Days() {
			row = append(row, fmt.Sprintf("%.2f", eh.Daily[day]))
		}
		row = append(row, fmt.Sprintf("%.2f", eh.Weekly))
		writer.Write(row)
	}
	writer.Flush()

	c.JSON(http.StatusOK, gin.H{"csv": outCSV.String()})
}

// GetStaffing returns the demand-vs-staffing comparison for both shifts
func (h *Handler) GetStaffing(c *gin.Context) {
	coverage, err := h.Sessions.Staffing(c.Param("id"))
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"days":     models.Days(),
		"coverage": coverage,
	})
}
