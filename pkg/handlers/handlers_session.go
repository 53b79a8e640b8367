package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/capileggi/horarios-api/pkg/models"
	"github.com/capileggi/horarios-api/pkg/session"
)

// CreateSession opens a fresh editing session seeded with the sample roster
// and requirements. The seed requirements are parsed into a demand table in
// the background; a parse failure just leaves the demand empty, the session
// is usable either way.
func (h *Handler) CreateSession(c *gin.Context) {
	state := h.Sessions.Create()

	go func(id, requirements string) {
		ctx, cancel := context.WithTimeout(context.Background(), PlannerTimeout())
		defer cancel()
		demand, err := h.Planner.ParseRequirements(ctx, requirements)
		if err != nil {
			return
		}
		_ = h.Sessions.SetDemand(id, demand)
	}(state.ID, state.Requirements)

	h.RecordUsage(c, len(state.Employees), 0)
	c.JSON(http.StatusOK, state)
}

// GetSession returns the full session state
func (h *Handler) GetSession(c *gin.Context) {
	state, err := h.Sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// AddEmployee adds a roster member to a session
func (h *Handler) AddEmployee(c *gin.Context) {
	var req struct {
		Name         string      `json:"name"`
		Role         models.Role `json:"role"`
		Availability string      `json:"availability"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	emp, err := h.Sessions.AddEmployee(c.Param("id"), req.Name, req.Role, req.Availability)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, emp)
}

// UpdateEmployee edits a roster member. Changing the role purges the
// employee's existing shift assignments first, since the schedule groups
// assignments by the roster role.
func (h *Handler) UpdateEmployee(c *gin.Context) {
	employeeID, err := strconv.ParseInt(c.Param("eid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}

	var req struct {
		Name         string      `json:"name"`
		Role         models.Role `json:"role"`
		Availability string      `json:"availability"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	emp, err := h.Sessions.UpdateEmployee(c.Param("id"), employeeID, req.Name, req.Role, req.Availability)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session or employee not found"})
		return
	}
	c.JSON(http.StatusOK, emp)
}

// RemoveEmployee deletes a roster member; the cascade purges every
// assignment of that ID from the schedule.
func (h *Handler) RemoveEmployee(c *gin.Context) {
	employeeID, err := strconv.ParseInt(c.Param("eid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}

	if err := h.Sessions.RemoveEmployee(c.Param("id"), employeeID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee removed"})
}

// UpdateRequirements stores the new requirements text and re-parses the
// demand table. On parse failure the text is kept but the previously parsed
// demand stays in place and the error is surfaced.
func (h *Handler) UpdateRequirements(c *gin.Context) {
	var req struct {
		Requirements string `json:"requirements"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := c.Param("id")
	if err := h.Sessions.SetRequirements(sessionID, req.Requirements); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), PlannerTimeout())
	defer cancel()

	demand, err := h.Planner.ParseRequirements(ctx, req.Requirements)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not analyze the new requirements."})
		return
	}
	_ = h.Sessions.SetDemand(sessionID, demand)

	c.JSON(http.StatusOK, gin.H{"demand": demand})
}

// GenerateSchedule asks the planner for a fresh weekly schedule. The prior
// schedule is cleared while the request is in flight and only one request
// may run per session at a time.
func (h *Handler) GenerateSchedule(c *gin.Context) {
	sessionID := c.Param("id")

	roster, requirements, err := h.Sessions.BeginGeneration(sessionID)
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	case errors.Is(err, session.ErrGenerationInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "A schedule is already being generated for this session"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), PlannerTimeout())
	defer cancel()

	ws, err := h.Planner.GenerateSchedule(ctx, roster, requirements)
	if err != nil {
		h.Sessions.FinishGeneration(sessionID, nil)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not generate the schedule. Check the API key and try again."})
		return
	}
	h.Sessions.FinishGeneration(sessionID, ws)

	h.RecordUsage(c, len(roster), 1)
	c.JSON(http.StatusOK, gin.H{"schedule": ws})
}
