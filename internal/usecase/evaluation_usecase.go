package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evaldesk/evaldesk/internal/cache"
	"github.com/evaldesk/evaldesk/internal/dto"
	"github.com/evaldesk/evaldesk/internal/export"
	"github.com/evaldesk/evaldesk/internal/metrics"
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/evaldesk/evaldesk/internal/repository"
	"github.com/evaldesk/evaldesk/internal/service"
	"github.com/evaldesk/evaldesk/internal/util"
	"github.com/evaldesk/evaldesk/pkg/logger"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// gradingTimeout bounds one full background grading run.
const gradingTimeout = 10 * time.Minute

var ErrCriteriaSetMismatch = errors.New("criteria set does not belong to the evaluation's doc type")

type EvaluationUsecase struct {
	evaluationRepo   *repository.EvaluationRepository
	docTypeRepo      *repository.DocTypeRepository
	criteriaRepo     *repository.CriteriaRepository
	statusOptionRepo *repository.StatusOptionRepository
	grader           service.Grader
	embedder         service.Embedder
	statusCache      *cache.StatusCache
}

func NewEvaluationUsecase(
	evaluationRepo *repository.EvaluationRepository,
	docTypeRepo *repository.DocTypeRepository,
	criteriaRepo *repository.CriteriaRepository,
	statusOptionRepo *repository.StatusOptionRepository,
	grader service.Grader,
	embedder service.Embedder,
	statusCache *cache.StatusCache,
) *EvaluationUsecase {
	return &EvaluationUsecase{
		evaluationRepo:   evaluationRepo,
		docTypeRepo:      docTypeRepo,
		criteriaRepo:     criteriaRepo,
		statusOptionRepo: statusOptionRepo,
		grader:           grader,
		embedder:         embedder,
		statusCache:      statusCache,
	}
}

// Submit persists the evaluation and kicks off grading in the
// background. The caller gets the ID back immediately and follows
// progress through the status endpoint.
func (uc *EvaluationUsecase) Submit(evaluation *model.Evaluation) (string, error) {
	set, err := uc.criteriaRepo.FindSetByID(evaluation.OrganizationID, evaluation.CriteriaSetID.String())
	if err != nil {
		return "", fmt.Errorf("criteria set: %w", err)
	}
	if set.DocTypeID != evaluation.DocTypeID {
		return "", ErrCriteriaSetMismatch
	}
	if len(set.Items) == 0 {
		return "", fmt.Errorf("criteria set %s has no items", set.ID)
	}

	evaluation.Status = model.EvaluationStatusProcessing
	evaluation.Progress = 0
	evaluation.Scores = "{}"
	evaluation.CreatedAt = time.Now()
	evaluation.UpdatedAt = time.Now()
	if err := uc.evaluationRepo.Create(evaluation); err != nil {
		return "", err
	}

	metrics.EvaluationsSubmitted.Inc()
	go uc.EvaluateDocument(evaluation)

	return evaluation.ID.String(), nil
}

// EvaluateDocument runs the grading pipeline for one evaluation. It is
// called on its own goroutine; all failures land in the row's status
// and error_message instead of an error return to the caller.
func (uc *EvaluationUsecase) EvaluateDocument(evaluation *model.Evaluation) {
	ctx, cancel := context.WithTimeout(context.Background(), gradingTimeout)
	defer cancel()

	started := time.Now()
	fail := func(stage string, err error) {
		logger.Error("grading failed",
			zap.String("evaluation_id", evaluation.ID.String()),
			zap.String("stage", stage),
			zap.Error(err),
		)
		evaluation.Status = model.EvaluationStatusFailed
		evaluation.ErrorMessage = fmt.Sprintf("%s: %v", stage, err)
		if updateErr := uc.evaluationRepo.Update(evaluation); updateErr != nil {
			logger.Error("failed to persist failure status", zap.Error(updateErr))
		}
		_ = uc.statusCache.Invalidate(ctx, evaluation.OrganizationID.String(), evaluation.ID.String())
		metrics.EvaluationsCompleted.WithLabelValues(model.EvaluationStatusFailed).Inc()
	}
	progress := func(pct int) {
		_ = uc.evaluationRepo.UpdateProgress(evaluation.ID, model.EvaluationStatusProcessing, pct)
		_ = uc.statusCache.Invalidate(ctx, evaluation.OrganizationID.String(), evaluation.ID.String())
	}

	set, err := uc.criteriaRepo.FindSetByID(evaluation.OrganizationID, evaluation.CriteriaSetID.String())
	if err != nil {
		fail("load criteria", err)
		return
	}
	docType, err := uc.docTypeRepo.FindByID(evaluation.OrganizationID, evaluation.DocTypeID.String())
	if err != nil {
		fail("load doc type", err)
		return
	}

	if uc.embedder != nil {
		emb, err := uc.embedder.GenerateEmbedding(ctx, evaluation.DocumentText)
		if err != nil {
			// Embeddings only power similarity search; grading can
			// proceed without them.
			logger.Warn("document embedding failed",
				zap.String("evaluation_id", evaluation.ID.String()),
				zap.Error(err),
			)
		} else {
			evaluation.Embedding = pgvector.NewVector(emb)
		}
	}
	progress(20)

	statusLabels := []string{}
	if options, err := uc.statusOptionRepo.List(evaluation.OrganizationID); err == nil {
		for _, opt := range options {
			statusLabels = append(statusLabels, opt.Label)
		}
	}

	prompt := service.BuildGradingPrompt(docType, set.Items, statusLabels, evaluation.DocumentText)
	progress(40)

	reply, err := uc.grader.GradeDocument(ctx, prompt)
	if err != nil {
		fail("grade document", err)
		return
	}
	progress(70)

	result, err := service.ParseGradeResult(reply, set.Items)
	if err != nil {
		fail("parse grade", err)
		return
	}
	scoresJSON, err := result.ScoresJSON()
	if err != nil {
		fail("serialize scores", err)
		return
	}
	summaryHTML, err := util.RenderMarkdown(result.Summary)
	if err != nil {
		fail("render summary", err)
		return
	}
	progress(90)

	evaluation.Scores = scoresJSON
	evaluation.OverallScore = result.OverallScore
	evaluation.Summary = result.Summary
	evaluation.SummaryHTML = summaryHTML
	evaluation.Status = model.EvaluationStatusCompleted
	evaluation.Progress = 100
	evaluation.ErrorMessage = ""
	if err := uc.evaluationRepo.Update(evaluation); err != nil {
		fail("persist result", err)
		return
	}
	_ = uc.statusCache.Invalidate(ctx, evaluation.OrganizationID.String(), evaluation.ID.String())

	metrics.EvaluationsCompleted.WithLabelValues(model.EvaluationStatusCompleted).Inc()
	metrics.GradingDuration.Observe(time.Since(started).Seconds())
	logger.Info("grading completed",
		zap.String("evaluation_id", evaluation.ID.String()),
		zap.Float64("overall_score", result.OverallScore),
		zap.Duration("elapsed", time.Since(started)),
	)
}

func (uc *EvaluationUsecase) Get(orgID uuid.UUID, id string) (*model.Evaluation, error) {
	return uc.evaluationRepo.FindByID(orgID, id)
}

func (uc *EvaluationUsecase) List(orgID uuid.UUID, params repository.EvaluationListParams) ([]model.Evaluation, int64, error) {
	return uc.evaluationRepo.List(orgID, params)
}

func (uc *EvaluationUsecase) Delete(orgID uuid.UUID, id string) error {
	return uc.evaluationRepo.Delete(orgID, id)
}

// GetStatus serves the polling endpoint, going through the short-TTL
// cache when redis is configured.
func (uc *EvaluationUsecase) GetStatus(ctx context.Context, orgID uuid.UUID, id string) (dto.EvaluationStatusDTO, error) {
	var cached dto.EvaluationStatusDTO
	hit, err := uc.statusCache.Get(ctx, orgID.String(), id, &cached)
	if err != nil {
		logger.Warn("status cache read failed", zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	evaluation, err := uc.evaluationRepo.FindByID(orgID, id)
	if err != nil {
		return dto.EvaluationStatusDTO{}, err
	}
	status := dto.NewEvaluationStatusDTO(evaluation)
	if !model.IsTerminalStatus(status.Status) {
		if err := uc.statusCache.Set(ctx, orgID.String(), id, status); err != nil {
			logger.Warn("status cache write failed", zap.Error(err))
		}
	}
	return status, nil
}

// Export renders a completed evaluation in the requested format.
func (uc *EvaluationUsecase) Export(orgID uuid.UUID, id, format string) ([]byte, string, error) {
	evaluation, err := uc.evaluationRepo.FindByID(orgID, id)
	if err != nil {
		return nil, "", err
	}
	contentType, err := export.ContentType(format)
	if err != nil {
		return nil, "", err
	}
	data, err := export.Render(format, evaluation)
	if err != nil {
		return nil, "", err
	}
	metrics.ExportsGenerated.WithLabelValues(format).Inc()
	return data, contentType, nil
}

// SuggestDocTypes embeds sample text and returns the organization's
// closest active doc types.
func (uc *EvaluationUsecase) SuggestDocTypes(ctx context.Context, orgID uuid.UUID, text string, topK int) ([]model.DocType, error) {
	if uc.embedder == nil {
		return nil, fmt.Errorf("embedding provider not configured")
	}
	if topK <= 0 {
		topK = 3
	}
	emb, err := uc.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, err
	}
	return uc.docTypeRepo.NearestByEmbedding(orgID, pgvector.NewVector(emb), topK)
}

// RefreshDocTypeEmbedding recomputes a doc type's embedding after a
// create or update. Failures are logged, not surfaced: the doc type is
// usable without similarity search.
func (uc *EvaluationUsecase) RefreshDocTypeEmbedding(ctx context.Context, docType *model.DocType) {
	if uc.embedder == nil {
		return
	}
	text := docType.Name + "\n" + docType.Description
	emb, err := uc.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		logger.Warn("doc type embedding failed",
			zap.String("doc_type_id", docType.ID.String()),
			zap.Error(err),
		)
		return
	}
	docType.Embedding = pgvector.NewVector(emb)
	if err := uc.docTypeRepo.Update(docType); err != nil {
		logger.Warn("doc type embedding update failed", zap.Error(err))
	}
}
