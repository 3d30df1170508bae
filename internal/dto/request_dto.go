package dto

type OrganizationRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Plan string `json:"plan"`
}

type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ChatSessionRequest struct {
	Title string `json:"title"`
}

type DocTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type CriteriaSetRequest struct {
	DocTypeID string `json:"doc_type_id"`
	Name      string `json:"name"`
	Version   int    `json:"version"`
	IsActive  *bool  `json:"is_active"`
}

type CriteriaItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	MaxScore    float64 `json:"max_score"`
	Position    int     `json:"position"`
}

type StatusOptionRequest struct {
	Label    string  `json:"label"`
	Color    string  `json:"color"`
	Score    float64 `json:"score"`
	Position int     `json:"position"`
}
