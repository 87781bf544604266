// Package kimai is a thin client for the Kimai time-tracking HTTP API:
// project and activity lookup plus timesheet creation. Authentication is
// two static headers; a dry-run mode echoes the would-be payload instead of
// posting it.
package kimai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// beginLayout is the timestamp format Kimai expects on timesheet bodies.
const beginLayout = "2006-01-02T15:04:05"

// Project is a Kimai project as returned by GET /api/projects.
type Project struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Activity is a Kimai activity as returned by GET /api/activities.
type Activity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Timesheet is one timesheet creation request.
type Timesheet struct {
	ProjectID   int
	ActivityID  int
	Begin       time.Time
	End         time.Time
	Description string
}

// TimesheetResult is the outcome of a create call. DryRun results carry the
// echoed payload and no id.
type TimesheetResult struct {
	ID     int
	DryRun bool
}

// Client talks to a Kimai instance.
type Client struct {
	baseURL   string
	authUser  string
	authToken string
	dryRun    bool
	http      *http.Client
}

// NewClient creates a Client for the given endpoint and static auth tokens.
// With dryRun set, CreateTimesheet never reaches the network.
func NewClient(baseURL, authUser, authToken string, dryRun bool) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		authUser:  authUser,
		authToken: authToken,
		dryRun:    dryRun,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
			Timeout: 15 * time.Second,
		},
	}
}

// Version fetches the server version, mostly useful as a connectivity check.
func (c *Client) Version(ctx context.Context) (string, error) {
	var out struct {
		Version string `json:"version"`
	}
	if err := c.get(ctx, "version", nil, &out); err != nil {
		return "", err
	}
	return out.Version, nil
}

// Projects lists projects, optionally restricted to visible ones.
func (c *Client) Projects(ctx context.Context, visibleOnly bool) ([]Project, error) {
	params := url.Values{}
	params.Set("visible", visibleParam(visibleOnly))
	var projects []Project
	if err := c.get(ctx, "projects", params, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Activities lists activities, optionally restricted to visible ones.
func (c *Client) Activities(ctx context.Context, visibleOnly bool) ([]Activity, error) {
	params := url.Values{}
	params.Set("visible", visibleParam(visibleOnly))
	var activities []Activity
	if err := c.get(ctx, "activities", params, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// FindProjectsByName searches projects whose name contains the search term
// or any underscore-separated part of it, case-insensitively.
func (c *Client) FindProjectsByName(ctx context.Context, search string) ([]Project, error) {
	projects, err := c.Projects(ctx, true)
	if err != nil {
		return nil, err
	}

	searchLower := strings.ToLower(search)
	parts := strings.Split(searchLower, "_")
	var matches []Project
	for _, p := range projects {
		name := strings.ToLower(p.Name)
		if strings.Contains(name, searchLower) || anyPartIn(parts, name) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// timesheetBody is the JSON body sent to POST /api/timesheets.
type timesheetBody struct {
	Project     int    `json:"project"`
	Activity    int    `json:"activity"`
	Begin       string `json:"begin"`
	End         string `json:"end"`
	Description string `json:"description,omitempty"`
}

// CreateTimesheet posts one timesheet. In dry-run mode it validates and
// echoes the payload without any network call.
func (c *Client) CreateTimesheet(ctx context.Context, ts Timesheet) (*TimesheetResult, error) {
	body := timesheetBody{
		Project:     ts.ProjectID,
		Activity:    ts.ActivityID,
		Begin:       ts.Begin.Format(beginLayout),
		End:         ts.End.Format(beginLayout),
		Description: ts.Description,
	}

	if c.dryRun {
		return &TimesheetResult{DryRun: true}, nil
	}

	var out struct {
		ID int `json:"id"`
	}
	if err := c.post(ctx, "timesheets", body, &out); err != nil {
		return nil, err
	}
	return &TimesheetResult{ID: out.ID}, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + "/api/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/"+endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("X-AUTH-USER", c.authUser)
	req.Header.Set("X-AUTH-TOKEN", c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", ErrAPIFailure, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func visibleParam(visibleOnly bool) string {
	if visibleOnly {
		return "1"
	}
	return "0"
}

func anyPartIn(parts []string, name string) bool {
	for _, p := range parts {
		if p != "" && strings.Contains(name, p) {
			return true
		}
	}
	return false
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
