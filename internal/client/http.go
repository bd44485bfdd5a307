package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient makes REST calls to the IronLog backend. The HTTP API is the
// read side of the product (catalog, plan, history); live-session mutation
// goes over the Channel instead.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient creates a client targeting the given base URL (e.g.
// "http://127.0.0.1:8080").
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// GetExercises fetches /api/exercises, optionally filtered by a search term
// and a muscle group.
func (c *HTTPClient) GetExercises(search string, muscleGroup MuscleGroup) ([]Exercise, error) {
	params := url.Values{}
	if search != "" {
		params.Set("search", search)
	}
	if muscleGroup != "" {
		params.Set("muscleGroup", string(muscleGroup))
	}
	path := "/api/exercises"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out []Exercise
	if err := c.get(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetExercise fetches /api/exercises/{name} with PR metadata.
func (c *HTTPClient) GetExercise(name string) (*ExerciseExtended, error) {
	var out ExerciseExtended
	if err := c.get("/api/exercises/"+url.PathEscape(name), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHistory fetches /api/workouts, a page of completed workouts.
func (c *HTTPClient) GetHistory(page int) ([]HistoryEntry, error) {
	var out []HistoryEntry
	if err := c.get(fmt.Sprintf("/api/workouts?page=%d", page), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSchedule fetches /api/schedule, the weekly plan.
func (c *HTTPClient) GetSchedule() (*Schedule, error) {
	var out Schedule
	if err := c.get("/api/schedule", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveSchedule sends PUT /api/schedule.
func (c *HTTPClient) SaveSchedule(s Schedule) error {
	return c.do(http.MethodPut, "/api/schedule", s, nil)
}

// GetSettings fetches /api/settings.
func (c *HTTPClient) GetSettings() (*Settings, error) {
	var out Settings
	if err := c.get("/api/settings", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveSettings sends PUT /api/settings.
func (c *HTTPClient) SaveSettings(s Settings) error {
	return c.do(http.MethodPut, "/api/settings", s, nil)
}

func (c *HTTPClient) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setAuth(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) do(method, path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *HTTPClient) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
