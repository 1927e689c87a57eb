package clickup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.clickup.com/api/v2"

var (
	// ErrUnauthorized is returned for a 401 (bad personal token).
	ErrUnauthorized = errors.New("clickup: unauthorized")
	// ErrNotFound is returned for a 404 (bad list/team id).
	ErrNotFound = errors.New("clickup: not found")
)

// APIError describes a non-2xx response from the ClickUp API.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clickup API error: %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// Client wraps the ClickUp v2 REST API. The personal token is sent in
// the Authorization header on every call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient creates a new ClickUp client.
func NewClient(apiKey string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimSuffix(u, "/")
}

// Task is a raw ClickUp task record.
type Task struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     Status `json:"status"`
	DueDate    *Epoch `json:"due_date"`
	DateClosed *Epoch `json:"date_closed"`
	Assignees  []User `json:"assignees"`
}

// Status is a ClickUp task status. Type is one of open, custom, done
// or closed.
type Status struct {
	Status string `json:"status"`
	Type   string `json:"type"`
}

// User is a ClickUp member reference.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Completed reports whether the task is in a terminal status.
func (t *Task) Completed() bool {
	return t.Status.Type == "closed" || t.Status.Type == "done" ||
		strings.EqualFold(t.Status.Status, "complete")
}

// AssigneeNames returns the usernames of all assignees.
func (t *Task) AssigneeNames() []string {
	names := make([]string, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		if a.Username != "" {
			names = append(names, a.Username)
		}
	}
	return names
}

// Epoch is a ClickUp timestamp: milliseconds since the Unix epoch,
// serialized as a JSON string or number.
type Epoch struct {
	Millis int64
}

func (e *Epoch) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid clickup timestamp %q: %w", s, err)
	}
	e.Millis = ms
	return nil
}

func (e Epoch) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(e.Millis, 10)), nil
}

// Time converts the timestamp to a time.Time in the local zone.
func (e *Epoch) Time() time.Time {
	return time.UnixMilli(e.Millis)
}

// Space is a ClickUp space reference.
type Space struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Folder is a ClickUp folder reference.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List is a ClickUp list reference.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListTasks retrieves all tasks in a list.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]Task, error) {
	var out struct {
		Tasks []Task `json:"tasks"`
	}
	if err := c.get(ctx, fmt.Sprintf("/list/%s/task", listID), &out); err != nil {
		return nil, fmt.Errorf("failed to list tasks for list %s: %w", listID, err)
	}
	return out.Tasks, nil
}

// Spaces retrieves all spaces for a team.
func (c *Client) Spaces(ctx context.Context, teamID string) ([]Space, error) {
	var out struct {
		Spaces []Space `json:"spaces"`
	}
	if err := c.get(ctx, fmt.Sprintf("/team/%s/space", teamID), &out); err != nil {
		return nil, fmt.Errorf("failed to list spaces for team %s: %w", teamID, err)
	}
	return out.Spaces, nil
}

// Folders retrieves all folders in a space.
func (c *Client) Folders(ctx context.Context, spaceID string) ([]Folder, error) {
	var out struct {
		Folders []Folder `json:"folders"`
	}
	if err := c.get(ctx, fmt.Sprintf("/space/%s/folder", spaceID), &out); err != nil {
		return nil, fmt.Errorf("failed to list folders for space %s: %w", spaceID, err)
	}
	return out.Folders, nil
}

// FolderLists retrieves all lists in a folder.
func (c *Client) FolderLists(ctx context.Context, folderID string) ([]List, error) {
	var out struct {
		Lists []List `json:"lists"`
	}
	if err := c.get(ctx, fmt.Sprintf("/folder/%s/list", folderID), &out); err != nil {
		return nil, fmt.Errorf("failed to list lists for folder %s: %w", folderID, err)
	}
	return out.Lists, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("calling clickup API", zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}
