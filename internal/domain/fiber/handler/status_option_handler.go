package handler

import (
	"github.com/evaldesk/evaldesk/internal/dto"
	"github.com/evaldesk/evaldesk/internal/middleware"
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/evaldesk/evaldesk/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// StatusOptionStore is the persistence surface the handler needs,
// satisfied by repository.StatusOptionRepository.
type StatusOptionStore interface {
	List(orgID uuid.UUID) ([]model.StatusOption, error)
	Create(option *model.StatusOption) error
	Update(option *model.StatusOption) error
	Delete(orgID uuid.UUID, id string) error
	FindByID(orgID uuid.UUID, id string) (*model.StatusOption, error)
}

type StatusOptionHandler struct {
	repo StatusOptionStore
}

func NewStatusOptionHandler(repo StatusOptionStore) *StatusOptionHandler {
	return &StatusOptionHandler{repo: repo}
}

func (h *StatusOptionHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/eval/status-options")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}

func (h *StatusOptionHandler) List(c *fiber.Ctx) error {
	options, err := h.repo.List(middleware.CurrentOrgID(c))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list status options",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get status options",
		Data:    options,
	})
}

func (h *StatusOptionHandler) Create(c *fiber.Ctx) error {
	var req dto.StatusOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Label == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "label is required",
		})
	}

	orgID := middleware.CurrentOrgID(c)
	option := model.StatusOption{
		OrganizationID: &orgID,
		Scope:          model.StatusOptionScopeOrganization,
		Label:          req.Label,
		Color:          req.Color,
		Score:          req.Score,
		Position:       req.Position,
	}
	if err := h.repo.Create(&option); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create status option",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create status option",
		Data:    option,
	})
}

func (h *StatusOptionHandler) Update(c *fiber.Ctx) error {
	option, err := h.repo.FindByID(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "status option not found",
		}, err)
	}
	if option.Scope == model.StatusOptionScopeSystem {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: "system status options are read-only",
		})
	}

	var req dto.StatusOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Label != "" {
		option.Label = req.Label
	}
	if req.Color != "" {
		option.Color = req.Color
	}
	option.Score = req.Score
	if req.Position > 0 {
		option.Position = req.Position
	}
	if err := h.repo.Update(option); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update status option",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update status option",
		Data:    option,
	})
}

func (h *StatusOptionHandler) Delete(c *fiber.Ctx) error {
	option, err := h.repo.FindByID(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "status option not found",
		}, err)
	}
	if option.Scope == model.StatusOptionScopeSystem {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: "system status options are read-only",
		})
	}

	if err := h.repo.Delete(middleware.CurrentOrgID(c), c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete status option",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete status option",
	})
}
