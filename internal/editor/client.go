package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/insightloop/rules-backend/internal/rules/domain"
)

// Store is the capability set the editor needs from the rule backend.
// Client implements it over HTTP; tests use an in-memory fake.
type Store interface {
	List(ctx context.Context, scope domain.Scope, includeTemplates bool) ([]domain.Rule, error)
	Create(ctx context.Context, scope domain.Scope, name, description, body string) (*domain.Rule, error)
	Update(ctx context.Context, id, name, description, body string) (*domain.Rule, error)
	Delete(ctx context.Context, id string) error
}

// Client talks to the custom-rules HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type listEnvelope struct {
	Success bool          `json:"success"`
	Rules   []domain.Rule `json:"rules"`
	Error   string        `json:"error"`
}

type ruleEnvelope struct {
	Success bool         `json:"success"`
	Rule    *domain.Rule `json:"rule"`
	Error   string       `json:"error"`
}

type statusEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) List(ctx context.Context, scope domain.Scope, includeTemplates bool) ([]domain.Rule, error) {
	q := url.Values{}
	q.Set("area_id", scope.AreaID)
	q.Set("tab_id", scope.TabID)
	q.Set("include_templates", fmt.Sprintf("%t", includeTemplates))

	var env listEnvelope
	if err := c.do(ctx, http.MethodGet, "/custom-rules?"+q.Encode(), nil, &env); err != nil {
		return nil, err
	}
	return env.Rules, nil
}

func (c *Client) Create(ctx context.Context, scope domain.Scope, name, description, body string) (*domain.Rule, error) {
	if err := domain.ValidateBody(body); err != nil {
		// Caught before the request is issued; the server re-validates.
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	payload := map[string]string{
		"areaId":      scope.AreaID,
		"tabId":       scope.TabID,
		"name":        name,
		"description": description,
		"rule":        body,
	}

	var env ruleEnvelope
	if err := c.do(ctx, http.MethodPost, "/custom-rules", payload, &env); err != nil {
		return nil, err
	}
	if env.Rule == nil {
		return nil, fmt.Errorf("%w: create returned no rule", ErrServer)
	}
	return env.Rule, nil
}

func (c *Client) Update(ctx context.Context, id, name, description, body string) (*domain.Rule, error) {
	if err := domain.ValidateBody(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	payload := map[string]string{
		"id":          id,
		"name":        name,
		"description": description,
		"rule":        body,
	}

	var env ruleEnvelope
	if err := c.do(ctx, http.MethodPut, "/custom-rules", payload, &env); err != nil {
		return nil, err
	}
	if env.Rule == nil {
		return nil, fmt.Errorf("%w: update returned no rule", ErrServer)
	}
	return env.Rule, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", id)

	var env statusEnvelope
	return c.do(ctx, http.MethodDelete, "/custom-rules?"+q.Encode(), nil, &env)
}

// do issues a request and decodes the envelope into out, which must
// embed a success flag and error message. Failures map onto the editor's
// error taxonomy: transport errors are ErrNetwork, 400 is ErrValidation,
// 404 is ErrNotFound, 5xx is ErrServer. A success=false body on HTTP 200
// is still a failure.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	var env statusEnvelope
	_ = json.Unmarshal(body, &env)

	if kindErr := classify(resp.StatusCode); kindErr != nil {
		if env.Error != "" {
			return fmt.Errorf("%w: %s", kindErr, env.Error)
		}
		return fmt.Errorf("%w: status %d", kindErr, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrServer, err)
	}

	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "request reported failure"
		}
		return fmt.Errorf("%w: %s", ErrServer, msg)
	}
	return nil
}

func classify(status int) error {
	switch {
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 400 && status < 500:
		return ErrValidation
	case status >= 500:
		return ErrServer
	default:
		return nil
	}
}
