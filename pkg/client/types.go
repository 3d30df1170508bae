package client

import (
	"encoding/json"
	"time"
)

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsFavorited bool      `json:"is_favorited"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChatSession struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	ShareToken *string   `json:"share_token,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type DocType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CriteriaItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	MaxScore    float64 `json:"max_score"`
	Position    int     `json:"position"`
}

type CriteriaSet struct {
	ID        string         `json:"id"`
	DocTypeID string         `json:"doc_type_id"`
	Name      string         `json:"name"`
	Version   int            `json:"version"`
	IsActive  bool           `json:"is_active"`
	Items     []CriteriaItem `json:"items,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type StatusOption struct {
	ID       string  `json:"id"`
	Scope    string  `json:"scope"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
	Score    float64 `json:"score"`
	Position int     `json:"position"`
}

type Evaluation struct {
	ID           string          `json:"id"`
	ProjectID    *string         `json:"project_id,omitempty"`
	DocTypeID    string          `json:"doc_type_id"`
	CriteriaSetID string         `json:"criteria_set_id"`
	DocumentName string          `json:"document_name"`
	Status       string          `json:"status"`
	Progress     int             `json:"progress"`
	Scores       json.RawMessage `json:"scores"`
	OverallScore float64         `json:"overall_score"`
	Summary      string          `json:"summary"`
	SummaryHTML  string          `json:"summary_html"`
	ErrorMessage string          `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// EvaluationStatus is the slim polling payload.
type EvaluationStatus struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	Progress     int       `json:"progress"`
	OverallScore float64   `json:"overall_score"`
	ErrorMessage string    `json:"error_message,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Terminal reports whether the status will never change again.
func (s EvaluationStatus) Terminal() bool {
	return s.Status == "completed" || s.Status == "failed"
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
}

// EvaluationListOptions map to the list endpoint's query parameters.
type EvaluationListOptions struct {
	Status    string
	DocTypeID string
	ProjectID string
	Sort      string
	Order     string
	Page      int
	PageSize  int
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
}
