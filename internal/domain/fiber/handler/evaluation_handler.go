package handler

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/evaldesk/evaldesk/internal/dto"
	"github.com/evaldesk/evaldesk/internal/middleware"
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/evaldesk/evaldesk/internal/repository"
	"github.com/evaldesk/evaldesk/internal/response"
	"github.com/evaldesk/evaldesk/internal/usecase"
	"github.com/evaldesk/evaldesk/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxDocumentSize = 10 * 1024 * 1024

type EvaluationHandler struct {
	uc        *usecase.EvaluationUsecase
	uploadDir string
}

func NewEvaluationHandler(uc *usecase.EvaluationUsecase, uploadDir string) *EvaluationHandler {
	if uploadDir == "" {
		uploadDir = "./uploads/documents"
	}
	return &EvaluationHandler{uc: uc, uploadDir: uploadDir}
}

func (h *EvaluationHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/eval/evaluations")
	group.Get("/", h.List)
	group.Post("/", middleware.RateLimiter(10, time.Minute), h.Submit)
	group.Get("/:id", h.Get)
	group.Delete("/:id", h.Delete)
	group.Get("/:id/status", h.Status)
	group.Get("/:id/export", h.Export)
}

// Submit accepts a multipart document upload plus doc_type_id and
// criteria_set_id form fields and queues the grading pipeline.
func (h *EvaluationHandler) Submit(c *fiber.Ctx) error {
	docTypeID, err := uuid.Parse(c.FormValue("doc_type_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "doc_type_id is required",
		}, err)
	}
	criteriaSetID, err := uuid.Parse(c.FormValue("criteria_set_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "criteria_set_id is required",
		}, err)
	}
	var projectID *uuid.UUID
	if raw := c.FormValue("project_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "project_id is not a valid id",
			}, err)
		}
		projectID = &parsed
	}

	documentName, content, err := h.processDocument(c)
	if err != nil {
		return err
	}

	evaluation := model.Evaluation{
		OrganizationID: middleware.CurrentOrgID(c),
		ProjectID:      projectID,
		DocTypeID:      docTypeID,
		CriteriaSetID:  criteriaSetID,
		DocumentName:   documentName,
		DocumentText:   content,
		CreatedBy:      middleware.CurrentUserID(c),
	}
	id, err := h.uc.Submit(&evaluation)
	if err != nil {
		code := fiber.StatusInternalServerError
		if errors.Is(err, usecase.ErrCriteriaSetMismatch) {
			code = fiber.StatusBadRequest
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: "failed to submit evaluation",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Success submit evaluation",
		Data:    fiber.Map{"id": id, "status": model.EvaluationStatusProcessing},
	})
}

func (h *EvaluationHandler) processDocument(c *fiber.Ctx) (string, string, error) {
	file, err := c.FormFile("document")
	if err != nil {
		return "", "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "document file is required",
		}, err)
	}
	if file.Size > maxDocumentSize {
		return "", "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusRequestEntityTooLarge,
			Message: "document file size is too large (max 10MB)",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return "", "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnsupportedMediaType,
			Message: fmt.Sprintf("unsupported document type %s", ext),
		})
	}

	// Saved under a fresh name so concurrent uploads never collide.
	savePath := filepath.Join(h.uploadDir, uuid.NewString()+ext)
	if err := c.SaveFile(file, savePath); err != nil {
		return "", "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot save document file",
		}, err)
	}

	content, err := util.ExtractPDFText(savePath)
	if err != nil {
		return "", "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "failed to extract document text",
		}, err)
	}
	return file.Filename, content, nil
}

func (h *EvaluationHandler) List(c *fiber.Ctx) error {
	params := repository.EvaluationListParams{
		Status:    c.Query("status"),
		DocTypeID: c.Query("doc_type_id"),
		ProjectID: c.Query("project_id"),
		SortField: c.Query("sort"),
		SortOrder: c.Query("order"),
		Page:      c.QueryInt("page", 1),
		PageSize:  c.QueryInt("page_size", 20),
	}
	evaluations, total, err := h.uc.List(middleware.CurrentOrgID(c), params)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list evaluations",
		}, err)
	}

	data := make([]dto.EvaluationDTO, 0, len(evaluations))
	for i := range evaluations {
		data = append(data, dto.NewEvaluationDTO(&evaluations[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get evaluations",
		Data:       data,
		Pagination: response.New(params.Page, params.PageSize, len(data), total),
	})
}

func (h *EvaluationHandler) Get(c *fiber.Ctx) error {
	evaluation, err := h.uc.Get(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "evaluation not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluation",
		Data:    dto.NewEvaluationDTO(evaluation),
	})
}

func (h *EvaluationHandler) Status(c *fiber.Ctx) error {
	status, err := h.uc.GetStatus(c.UserContext(), middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "evaluation not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluation status",
		Data:    status,
	})
}

// exportErrorStatus separates "no such evaluation" from rendering
// failures like a non-terminal status or an unknown format.
func exportErrorStatus(err error) int {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusUnprocessableEntity
}

func (h *EvaluationHandler) Export(c *fiber.Ctx) error {
	format := c.Query("format", "pdf")
	data, contentType, err := h.uc.Export(middleware.CurrentOrgID(c), c.Params("id"), format)
	if err != nil {
		message := "failed to export evaluation"
		if errors.Is(err, gorm.ErrRecordNotFound) {
			message = "evaluation not found"
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    exportErrorStatus(err),
			Message: message,
		}, err)
	}

	filename := fmt.Sprintf("evaluation-%s.%s", c.Params("id"), format)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

func (h *EvaluationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(middleware.CurrentOrgID(c), c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete evaluation",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete evaluation",
	})
}
