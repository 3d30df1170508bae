package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/tidwall/gjson"
)

// Grader is a text-in, text-out LLM provider. The reply is expected to
// be the strict JSON requested by BuildGradingPrompt.
type Grader interface {
	Name() string
	GradeDocument(ctx context.Context, prompt string) (string, error)
}

// Embedder produces document embeddings for pgvector similarity.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ItemScore is the graded outcome for one criteria item.
type ItemScore struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Weight   float64 `json:"weight"`
	Status   string  `json:"status"`
	Feedback string  `json:"feedback"`
}

// GradeResult is the parsed, normalized grading reply.
type GradeResult struct {
	ItemScores   map[string]ItemScore
	OverallScore float64
	Summary      string
}

// ScoresJSON serializes the per-item scores for the jsonb column.
func (r *GradeResult) ScoresJSON() (string, error) {
	raw, err := json.Marshal(r.ItemScores)
	if err != nil {
		return "", fmt.Errorf("marshal scores: %w", err)
	}
	return string(raw), nil
}

// BuildGradingPrompt renders the grading instructions for one document
// against a criteria set. Item IDs key the reply so parsing never
// depends on the model echoing names verbatim.
func BuildGradingPrompt(docType *model.DocType, items []model.CriteriaItem, statusLabels []string, documentText string) string {
	var criteria strings.Builder
	for i, item := range items {
		fmt.Fprintf(&criteria, "%d. id: %s\n   name: %s\n   description: %s\n   max score: %.0f\n",
			i+1, item.ID, item.Name, item.Description, item.MaxScore)
	}

	labels := "Compliant, Partially Compliant, Non-Compliant"
	if len(statusLabels) > 0 {
		labels = strings.Join(statusLabels, ", ")
	}

	return fmt.Sprintf(`You are an experienced compliance auditor. Evaluate the following document of type "%s" (%s) against each criterion below.

Criteria:
%s
For the status field, pick exactly one of: %s.

Return your answer STRICTLY in JSON format with this schema:
{
  "criteria": {
    "<criterion id>": {
      "score": <number between 0 and the criterion's max score>,
      "status": "<one of the allowed status labels>",
      "feedback": "<one or two sentences of specific feedback>"
    }
  },
  "overall_summary": "<markdown summary of strengths, gaps, and recommended fixes>"
}

Document:
%s
`, docType.Name, docType.Description, criteria.String(), labels, documentText)
}

// ParseGradeResult extracts per-item scores from the model reply and
// computes the weighted overall score on a 0-100 scale. Arithmetic is
// never delegated to the model.
func ParseGradeResult(raw string, items []model.CriteriaItem) (*GradeResult, error) {
	text := stripCodeFence(raw)
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("model reply is not valid JSON")
	}

	result := &GradeResult{
		ItemScores: make(map[string]ItemScore, len(items)),
		Summary:    gjson.Get(text, "overall_summary").String(),
	}

	var weightedSum, weightTotal float64
	for _, item := range items {
		entry := gjson.Get(text, "criteria").Get(item.ID.String())
		if !entry.Exists() {
			return nil, fmt.Errorf("model reply missing criterion %s (%s)", item.ID, item.Name)
		}
		score := entry.Get("score").Float()
		if score < 0 {
			score = 0
		}
		if item.MaxScore > 0 && score > item.MaxScore {
			score = item.MaxScore
		}

		result.ItemScores[item.ID.String()] = ItemScore{
			Name:     item.Name,
			Score:    score,
			MaxScore: item.MaxScore,
			Weight:   item.Weight,
			Status:   entry.Get("status").String(),
			Feedback: entry.Get("feedback").String(),
		}

		if item.MaxScore > 0 {
			weightedSum += item.Weight * (score / item.MaxScore)
			weightTotal += item.Weight
		}
	}

	if weightTotal > 0 {
		result.OverallScore = roundTo(weightedSum/weightTotal*100, 2)
	}
	return result, nil
}

// stripCodeFence unwraps replies the model insists on fencing as
// ```json ... ``` despite the strict-JSON instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func roundTo(v float64, places int) float64 {
	shift := 1.0
	for i := 0; i < places; i++ {
		shift *= 10
	}
	if v >= 0 {
		return float64(int64(v*shift+0.5)) / shift
	}
	return float64(int64(v*shift-0.5)) / shift
}
