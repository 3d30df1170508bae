// Package client is the Go SDK for the evaldesk REST API. It wraps the
// HTTP surface with typed methods, an optimistic local store, and a
// status poller for in-flight evaluations.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http *resty.Client
}

type Option func(*Client)

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// New builds a client for the given API base URL (e.g.
// "https://api.example.com/api/v1") authenticating with a bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)

	c := &Client{http: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// decode unwraps the standard response envelope into dest. dest may be
// nil for calls whose data payload is irrelevant.
func decode(resp *resty.Response, err error, dest any) error {
	if err != nil {
		return err
	}
	var env envelope
	if unmarshalErr := json.Unmarshal(resp.Body(), &env); unmarshalErr != nil {
		if resp.IsError() {
			return &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
		}
		return fmt.Errorf("decode response: %w", unmarshalErr)
	}
	if resp.IsError() || !env.Success {
		message := env.Message
		if message == "" {
			message = resp.Status()
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: message}
	}
	if dest != nil && len(env.Data) > 0 {
		if unmarshalErr := json.Unmarshal(env.Data, dest); unmarshalErr != nil {
			return fmt.Errorf("decode data: %w", unmarshalErr)
		}
	}
	return nil
}

// --- organizations ---

func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var orgs []Organization
	resp, err := c.http.R().SetContext(ctx).Get("/organizations")
	return orgs, decode(resp, err, &orgs)
}

func (c *Client) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	var org Organization
	resp, err := c.http.R().SetContext(ctx).Get("/organizations/" + id)
	return &org, decode(resp, err, &org)
}

func (c *Client) CreateOrganization(ctx context.Context, name, slug string) (*Organization, error) {
	var org Organization
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"name": name, "slug": slug}).
		Post("/organizations")
	return &org, decode(resp, err, &org)
}

func (c *Client) UpdateOrganization(ctx context.Context, id, name, slug string) (*Organization, error) {
	var org Organization
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"name": name, "slug": slug}).
		Put("/organizations/" + id)
	return &org, decode(resp, err, &org)
}

func (c *Client) DeleteOrganization(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/organizations/" + id)
	return decode(resp, err, nil)
}

// --- projects ---

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	resp, err := c.http.R().SetContext(ctx).Get("/projects")
	return projects, decode(resp, err, &projects)
}

func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var project Project
	resp, err := c.http.R().SetContext(ctx).Get("/projects/" + id)
	return &project, decode(resp, err, &project)
}

func (c *Client) CreateProject(ctx context.Context, name, description string) (*Project, error) {
	var project Project
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"name": name, "description": description}).
		Post("/projects")
	return &project, decode(resp, err, &project)
}

func (c *Client) UpdateProject(ctx context.Context, id, name, description string) (*Project, error) {
	var project Project
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"name": name, "description": description}).
		Put("/projects/" + id)
	return &project, decode(resp, err, &project)
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/projects/" + id)
	return decode(resp, err, nil)
}

// ToggleProjectFavorite flips the favorite mark and returns the new
// state as reported by the server.
func (c *Client) ToggleProjectFavorite(ctx context.Context, id string) (bool, error) {
	var result struct {
		IsFavorited bool `json:"is_favorited"`
	}
	resp, err := c.http.R().SetContext(ctx).Post("/projects/" + id + "/favorite")
	return result.IsFavorited, decode(resp, err, &result)
}

// --- chat sessions ---

func (c *Client) ListChatSessions(ctx context.Context) ([]ChatSession, error) {
	var sessions []ChatSession
	resp, err := c.http.R().SetContext(ctx).Get("/chat/sessions")
	return sessions, decode(resp, err, &sessions)
}

func (c *Client) GetChatSession(ctx context.Context, id string) (*ChatSession, error) {
	var session ChatSession
	resp, err := c.http.R().SetContext(ctx).Get("/chat/sessions/" + id)
	return &session, decode(resp, err, &session)
}

func (c *Client) CreateChatSession(ctx context.Context, title string) (*ChatSession, error) {
	var session ChatSession
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"title": title}).
		Post("/chat/sessions")
	return &session, decode(resp, err, &session)
}

func (c *Client) DeleteChatSession(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/chat/sessions/" + id)
	return decode(resp, err, nil)
}

func (c *Client) ShareChatSession(ctx context.Context, id string) (*ChatSession, error) {
	var session ChatSession
	resp, err := c.http.R().SetContext(ctx).Post("/chat/sessions/" + id + "/share")
	return &session, decode(resp, err, &session)
}

// --- doc types ---

func (c *Client) ListDocTypes(ctx context.Context) ([]DocType, error) {
	var docTypes []DocType
	resp, err := c.http.R().SetContext(ctx).Get("/eval/doc-types")
	return docTypes, decode(resp, err, &docTypes)
}

func (c *Client) CreateDocType(ctx context.Context, name, description string) (*DocType, error) {
	var docType DocType
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"name": name, "description": description}).
		Post("/eval/doc-types")
	return &docType, decode(resp, err, &docType)
}

func (c *Client) GetDocType(ctx context.Context, id string) (*DocType, error) {
	var docType DocType
	resp, err := c.http.R().SetContext(ctx).Get("/eval/doc-types/" + id)
	return &docType, decode(resp, err, &docType)
}

func (c *Client) UpdateDocType(ctx context.Context, id, name, description string) (*DocType, error) {
	var docType DocType
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"name": name, "description": description}).
		Put("/eval/doc-types/" + id)
	return &docType, decode(resp, err, &docType)
}

func (c *Client) DeleteDocType(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/eval/doc-types/" + id)
	return decode(resp, err, nil)
}

// SuggestDocTypes asks the server for the doc types closest to sample
// document text.
func (c *Client) SuggestDocTypes(ctx context.Context, text string, topK int) ([]DocType, error) {
	var docTypes []DocType
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]any{"text": text, "top_k": topK}).
		Post("/eval/doc-types/suggest")
	return docTypes, decode(resp, err, &docTypes)
}

// --- criteria sets ---

func (c *Client) ListCriteriaSets(ctx context.Context, docTypeID string) ([]CriteriaSet, error) {
	var sets []CriteriaSet
	req := c.http.R().SetContext(ctx)
	if docTypeID != "" {
		req.SetQueryParam("doc_type_id", docTypeID)
	}
	resp, err := req.Get("/eval/criteria-sets")
	return sets, decode(resp, err, &sets)
}

func (c *Client) GetCriteriaSet(ctx context.Context, id string) (*CriteriaSet, error) {
	var set CriteriaSet
	resp, err := c.http.R().SetContext(ctx).Get("/eval/criteria-sets/" + id)
	return &set, decode(resp, err, &set)
}

func (c *Client) CreateCriteriaSet(ctx context.Context, docTypeID, name string, version int) (*CriteriaSet, error) {
	var set CriteriaSet
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]any{"doc_type_id": docTypeID, "name": name, "version": version}).
		Post("/eval/criteria-sets")
	return &set, decode(resp, err, &set)
}

func (c *Client) UpdateCriteriaSet(ctx context.Context, id, name string, version int) (*CriteriaSet, error) {
	var set CriteriaSet
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]any{"name": name, "version": version}).
		Put("/eval/criteria-sets/" + id)
	return &set, decode(resp, err, &set)
}

func (c *Client) DeleteCriteriaSet(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/eval/criteria-sets/" + id)
	return decode(resp, err, nil)
}

func (c *Client) CreateCriteriaItem(ctx context.Context, setID string, item CriteriaItem) (*CriteriaItem, error) {
	var created CriteriaItem
	resp, err := c.http.R().SetContext(ctx).
		SetBody(item).
		Post("/eval/criteria-sets/" + setID + "/items")
	return &created, decode(resp, err, &created)
}

func (c *Client) UpdateCriteriaItem(ctx context.Context, setID string, item CriteriaItem) (*CriteriaItem, error) {
	var updated CriteriaItem
	resp, err := c.http.R().SetContext(ctx).
		SetBody(item).
		Put("/eval/criteria-sets/" + setID + "/items/" + item.ID)
	return &updated, decode(resp, err, &updated)
}

func (c *Client) DeleteCriteriaItem(ctx context.Context, setID, itemID string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/eval/criteria-sets/" + setID + "/items/" + itemID)
	return decode(resp, err, nil)
}

// --- status options ---

func (c *Client) ListStatusOptions(ctx context.Context) ([]StatusOption, error) {
	var options []StatusOption
	resp, err := c.http.R().SetContext(ctx).Get("/eval/status-options")
	return options, decode(resp, err, &options)
}

func (c *Client) CreateStatusOption(ctx context.Context, option StatusOption) (*StatusOption, error) {
	var created StatusOption
	resp, err := c.http.R().SetContext(ctx).
		SetBody(option).
		Post("/eval/status-options")
	return &created, decode(resp, err, &created)
}

func (c *Client) UpdateStatusOption(ctx context.Context, option StatusOption) (*StatusOption, error) {
	var updated StatusOption
	resp, err := c.http.R().SetContext(ctx).
		SetBody(option).
		Put("/eval/status-options/" + option.ID)
	return &updated, decode(resp, err, &updated)
}

func (c *Client) DeleteStatusOption(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/eval/status-options/" + id)
	return decode(resp, err, nil)
}

// --- evaluations ---

// SubmitEvaluation uploads a PDF for grading and returns the new
// evaluation ID. Grading runs asynchronously; poll the status endpoint
// for progress.
func (c *Client) SubmitEvaluation(ctx context.Context, documentPath, docTypeID, criteriaSetID, projectID string) (string, error) {
	var result struct {
		ID string `json:"id"`
	}
	req := c.http.R().SetContext(ctx).
		SetFile("document", documentPath).
		SetFormData(map[string]string{
			"doc_type_id":     docTypeID,
			"criteria_set_id": criteriaSetID,
		})
	if projectID != "" {
		req.SetFormData(map[string]string{"project_id": projectID})
	}
	resp, err := req.Post("/eval/evaluations")
	return result.ID, decode(resp, err, &result)
}

func (c *Client) GetEvaluation(ctx context.Context, id string) (*Evaluation, error) {
	var evaluation Evaluation
	resp, err := c.http.R().SetContext(ctx).Get("/eval/evaluations/" + id)
	return &evaluation, decode(resp, err, &evaluation)
}

func (c *Client) ListEvaluations(ctx context.Context, opts EvaluationListOptions) ([]Evaluation, error) {
	req := c.http.R().SetContext(ctx)
	if opts.Status != "" {
		req.SetQueryParam("status", opts.Status)
	}
	if opts.DocTypeID != "" {
		req.SetQueryParam("doc_type_id", opts.DocTypeID)
	}
	if opts.ProjectID != "" {
		req.SetQueryParam("project_id", opts.ProjectID)
	}
	if opts.Sort != "" {
		req.SetQueryParam("sort", opts.Sort)
	}
	if opts.Order != "" {
		req.SetQueryParam("order", opts.Order)
	}
	if opts.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		req.SetQueryParam("page_size", strconv.Itoa(opts.PageSize))
	}

	var evaluations []Evaluation
	resp, err := req.Get("/eval/evaluations")
	return evaluations, decode(resp, err, &evaluations)
}

func (c *Client) GetEvaluationStatus(ctx context.Context, id string) (EvaluationStatus, error) {
	var status EvaluationStatus
	resp, err := c.http.R().SetContext(ctx).Get("/eval/evaluations/" + id + "/status")
	return status, decode(resp, err, &status)
}

func (c *Client) DeleteEvaluation(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/eval/evaluations/" + id)
	return decode(resp, err, nil)
}

// ExportEvaluation downloads a completed evaluation as "pdf" or "xlsx"
// and returns the raw document bytes.
func (c *Client) ExportEvaluation(ctx context.Context, id, format string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("format", format).
		Get("/eval/evaluations/" + id + "/export")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		var env envelope
		message := resp.Status()
		if json.Unmarshal(resp.Body(), &env) == nil && env.Message != "" {
			message = env.Message
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: message}
	}
	return resp.Body(), nil
}
