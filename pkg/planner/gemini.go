package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/capileggi/horarios-api/pkg/models"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient calls the Gemini generateContent REST endpoint with a JSON
// response schema, so the model is constrained to return the structures the
// core consumes.
type GeminiClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiClient builds a client for the given API key. Base URL and model
// fall back to the public endpoint and gemini-2.5-flash when empty.
func NewGeminiClient(apiKey, baseURL, model string, httpClient *http.Client) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if httpClient == nil {
		httpClient = DefaultHTTPClient()
	}
	return &GeminiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

// DefaultHTTPClient returns the http.Client used when none is injected.
// Model calls are slow, so the transport timeout is generous; callers bound
// individual requests with a context deadline.
func DefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 90 * time.Second}
}

// ParseRequirements implements Planner.
func (c *GeminiClient) ParseRequirements(ctx context.Context, requirements string) (models.WeeklyDemand, error) {
	prompt := fmt.Sprintf(parseRequirementsPrompt, requirements)

	text, err := c.generate(ctx, prompt, demandResponseSchema())
	if err != nil {
		return nil, &RequirementsParseError{Err: err}
	}

	var demand models.WeeklyDemand
	if err := json.Unmarshal([]byte(cleanJSON(text)), &demand); err != nil {
		return nil, &RequirementsParseError{Err: err}
	}
	if demand == nil {
		return nil, &RequirementsParseError{Err: errors.New("model returned null demand")}
	}
	demand.Normalize()
	return demand, nil
}

// GenerateSchedule implements Planner.
func (c *GeminiClient) GenerateSchedule(ctx context.Context, roster []models.Employee, requirements string) (models.WeeklySchedule, error) {
	rosterJSON, err := json.MarshalIndent(roster, "", "  ")
	if err != nil {
		return nil, &ScheduleGenerationError{Err: err}
	}
	prompt := fmt.Sprintf(generateSchedulePrompt, string(rosterJSON), requirements)

	text, err := c.generate(ctx, prompt, scheduleResponseSchema())
	if err != nil {
		return nil, &ScheduleGenerationError{Err: err}
	}

	var ws models.WeeklySchedule
	if err := json.Unmarshal([]byte(cleanJSON(text)), &ws); err != nil {
		return nil, &ScheduleGenerationError{Err: err}
	}
	if ws == nil {
		return nil, &ScheduleGenerationError{Err: errors.New("model returned null schedule")}
	}
	ws.Normalize()
	return ws, nil
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, schema map[string]any) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("missing API key")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out generateResponse
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&out); err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return "", fmt.Errorf("model error %d: %s", out.Error.Code, out.Error.Message)
		}
		return "", fmt.Errorf("model unexpected status: %d", resp.StatusCode)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("model returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// cleanJSON strips the markdown code fences some model responses wrap
// around the JSON payload.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func roleDemandSchema() map[string]any {
	props := make(map[string]any, len(models.Roles()))
	for _, role := range models.Roles() {
		props[string(role)] = map[string]any{"type": "INTEGER"}
	}
	return map[string]any{"type": "OBJECT", "properties": props}
}

func demandResponseSchema() map[string]any {
	daily := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			string(models.ShiftLunch):  roleDemandSchema(),
			string(models.ShiftDinner): roleDemandSchema(),
		},
	}
	return weekSchema(daily)
}

func shiftAssignmentSchema() map[string]any {
	props := make(map[string]any, len(models.Roles()))
	for _, role := range models.Roles() {
		props[string(role)] = map[string]any{
			"type":  "ARRAY",
			"items": map[string]any{"type": "INTEGER"},
		}
	}
	return map[string]any{"type": "OBJECT", "properties": props}
}

func scheduleResponseSchema() map[string]any {
	shift := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"start_time": map[string]any{"type": "STRING"},
			"end_time":   map[string]any{"type": "STRING"},
			"employees":  shiftAssignmentSchema(),
		},
	}
	daily := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			string(models.ShiftLunch):  shift,
			string(models.ShiftDinner): shift,
		},
	}
	return weekSchema(daily)
}

func weekSchema(daily map[string]any) map[string]any {
	props := make(map[string]any, len(models.Days()))
	required := make([]string, 0, len(models.Days()))
	for _, day := range models.Days() {
		props[string(day)] = daily
		required = append(required, string(day))
	}
	return map[string]any{
		"type":       "OBJECT",
		"properties": props,
		"required":   required,
	}
}
