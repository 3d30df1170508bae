package handler

import (
	"context"

	"github.com/evaldesk/evaldesk/internal/dto"
	"github.com/evaldesk/evaldesk/internal/middleware"
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/evaldesk/evaldesk/internal/repository"
	"github.com/evaldesk/evaldesk/internal/response"
	"github.com/evaldesk/evaldesk/internal/usecase"
	"github.com/evaldesk/evaldesk/internal/util"
	"github.com/gofiber/fiber/v2"
)

type DocTypeHandler struct {
	repo *repository.DocTypeRepository
	uc   *usecase.EvaluationUsecase
}

func NewDocTypeHandler(repo *repository.DocTypeRepository, uc *usecase.EvaluationUsecase) *DocTypeHandler {
	return &DocTypeHandler{repo: repo, uc: uc}
}

func (h *DocTypeHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/eval/doc-types")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Post("/suggest", h.Suggest)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}

func (h *DocTypeHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 50)
	docTypes, total, err := h.repo.List(middleware.CurrentOrgID(c), page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list doc types",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get doc types",
		Data:       docTypes,
		Pagination: response.New(page, pageSize, len(docTypes), total),
	})
}

func (h *DocTypeHandler) Get(c *fiber.Ctx) error {
	docType, err := h.repo.FindByID(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "doc type not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get doc type",
		Data:    docType,
	})
}

func (h *DocTypeHandler) Create(c *fiber.Ctx) error {
	var req dto.DocTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Name == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "name is required",
		})
	}

	docType := model.DocType{
		OrganizationID: middleware.CurrentOrgID(c),
		Name:           req.Name,
		Description:    req.Description,
		IsActive:       true,
	}
	if req.IsActive != nil {
		docType.IsActive = *req.IsActive
	}
	if err := h.repo.Create(&docType); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create doc type",
		}, err)
	}

	// Request contexts are recycled once the handler returns, so the
	// background refresh gets its own.
	go h.uc.RefreshDocTypeEmbedding(context.Background(), &docType)

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create doc type",
		Data:    docType,
	})
}

func (h *DocTypeHandler) Update(c *fiber.Ctx) error {
	docType, err := h.repo.FindByID(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "doc type not found",
		}, err)
	}

	var req dto.DocTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Name != "" {
		docType.Name = req.Name
	}
	docType.Description = req.Description
	if req.IsActive != nil {
		docType.IsActive = *req.IsActive
	}
	if err := h.repo.Update(docType); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update doc type",
		}, err)
	}

	go h.uc.RefreshDocTypeEmbedding(context.Background(), docType)

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update doc type",
		Data:    docType,
	})
}

func (h *DocTypeHandler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(middleware.CurrentOrgID(c), c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete doc type",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete doc type",
	})
}

// Suggest ranks the organization's doc types by similarity to sample
// text from an uploaded document.
func (h *DocTypeHandler) Suggest(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
		TopK int    `json:"top_k"`
	}
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Text == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "text is required",
		})
	}

	docTypes, err := h.uc.SuggestDocTypes(c.UserContext(), middleware.CurrentOrgID(c), req.Text, req.TopK)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to suggest doc types",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success suggest doc types",
		Data:    docTypes,
	})
}
