package planner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/capileggi/horarios-api/pkg/models"
)

func modelResponse(t *testing.T, payload string) string {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": payload}}}},
		},
	})
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return string(body)
}

func TestParseRequirements(t *testing.T) {
	payload := `{"monday": {"lunch": {"Chef": 1, "Waiter": 2}, "dinner": {"Chef": 1, "Waiter": 3, "Bartender": 1}}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("Expected API key header, got %q", r.Header.Get("x-goog-api-key"))
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Bad request body: %v", err)
		}
		if req.GenerationConfig.ResponseMIMEType != "application/json" {
			t.Errorf("Expected JSON response mime type, got %s", req.GenerationConfig.ResponseMIMEType)
		}
		w.Write([]byte(modelResponse(t, payload)))
	}))
	defer srv.Close()

	client := NewGeminiClient("test-key", srv.URL, "", nil)
	demand, err := client.ParseRequirements(context.Background(), "1 chef and 2 waiters at lunch")
	if err != nil {
		t.Fatalf("ParseRequirements failed: %v", err)
	}

	if got := demand[models.Monday][models.ShiftLunch][models.RoleWaiter]; got != 2 {
		t.Errorf("Expected 2 waiters at Monday lunch, got %d", got)
	}
	// Normalization fills the days the model omitted
	for _, day := range models.Days() {
		if demand[day] == nil {
			t.Errorf("Expected day %s present after normalization", day)
		}
	}
}

func TestGenerateSchedule(t *testing.T) {
	payload := "```json\n" + `{"thursday": {"dinner": {"start_time": "19:00", "end_time": "23:30", "employees": {"Bartender": [4]}}}}` + "\n```"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(modelResponse(t, payload)))
	}))
	defer srv.Close()

	client := NewGeminiClient("test-key", srv.URL, "", nil)
	roster := []models.Employee{{ID: 4, Name: "Carlos Pileggi", Role: models.RoleBartender}}
	ws, err := client.GenerateSchedule(context.Background(), roster, "one bartender thursday dinner")
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	shift := ws[models.Thursday][models.ShiftDinner]
	if shift.StartTime != "19:00" || shift.EndTime != "23:30" {
		t.Errorf("Expected window 19:00-23:30, got %s-%s", shift.StartTime, shift.EndTime)
	}
	if ids := shift.Employees[models.RoleBartender]; len(ids) != 1 || ids[0] != 4 {
		t.Errorf("Expected bartenders [4], got %v", ids)
	}

	// Normalization guarantees the full 7x2 shape with non-nil role lists
	for _, day := range models.Days() {
		for _, shiftType := range models.ShiftTypes() {
			sh, ok := ws[day][shiftType]
			if !ok {
				t.Fatalf("Expected %s/%s present after normalization", day, shiftType)
			}
			for _, role := range models.Roles() {
				if sh.Employees[role] == nil {
					t.Errorf("Expected non-nil %s list in %s/%s", role, day, shiftType)
				}
			}
		}
	}
}

func TestParseRequirements_ModelError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded"}}`))
	}))
	defer srv.Close()

	client := NewGeminiClient("test-key", srv.URL, "", nil)
	_, err := client.ParseRequirements(context.Background(), "anything")

	var parseErr *RequirementsParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected RequirementsParseError, got %v", err)
	}
}

func TestGenerateSchedule_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(modelResponse(t, "this is not json")))
	}))
	defer srv.Close()

	client := NewGeminiClient("test-key", srv.URL, "", nil)
	_, err := client.GenerateSchedule(context.Background(), nil, "anything")

	var genErr *ScheduleGenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected ScheduleGenerationError, got %v", err)
	}
}

func TestMissingAPIKey(t *testing.T) {
	client := NewGeminiClient("", "http://localhost:0", "", nil)
	if _, err := client.ParseRequirements(context.Background(), "anything"); err == nil {
		t.Error("Expected an error without an API key")
	}
}
