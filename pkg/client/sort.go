package client

import "sort"

// SortField selects the comparator for SortEvaluations.
type SortField string

const (
	SortByScore     SortField = "score"
	SortByStatus    SortField = "status"
	SortByCreatedAt SortField = "created_at"
	SortByDocument  SortField = "document"
)

// SortEvaluations orders an already-fetched slice in place. The server
// list endpoint sorts too; this covers client-side re-sorting without
// another round trip.
func SortEvaluations(evaluations []Evaluation, field SortField, ascending bool) {
	less := func(i, j int) bool { return evaluations[i].CreatedAt.Before(evaluations[j].CreatedAt) }
	switch field {
	case SortByScore:
		less = func(i, j int) bool { return evaluations[i].OverallScore < evaluations[j].OverallScore }
	case SortByStatus:
		less = func(i, j int) bool { return evaluations[i].Status < evaluations[j].Status }
	case SortByDocument:
		less = func(i, j int) bool { return evaluations[i].DocumentName < evaluations[j].DocumentName }
	}
	if !ascending {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(evaluations, less)
}

// FilterEvaluationsByStatus returns the evaluations matching status,
// preserving order. An empty status returns the input unchanged.
func FilterEvaluationsByStatus(evaluations []Evaluation, status string) []Evaluation {
	if status == "" {
		return evaluations
	}
	out := make([]Evaluation, 0, len(evaluations))
	for _, e := range evaluations {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}
