package handler

import (
	"github.com/evaldesk/evaldesk/internal/dto"
	"github.com/evaldesk/evaldesk/internal/middleware"
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/evaldesk/evaldesk/internal/repository"
	"github.com/evaldesk/evaldesk/internal/response"
	"github.com/evaldesk/evaldesk/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CriteriaHandler struct {
	repo *repository.CriteriaRepository
}

func NewCriteriaHandler(repo *repository.CriteriaRepository) *CriteriaHandler {
	return &CriteriaHandler{repo: repo}
}

func (h *CriteriaHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/eval/criteria-sets")
	group.Get("/", h.ListSets)
	group.Post("/", h.CreateSet)
	group.Get("/:id", h.GetSet)
	group.Put("/:id", h.UpdateSet)
	group.Delete("/:id", h.DeleteSet)
	group.Post("/:id/items", h.CreateItem)
	group.Put("/:id/items/:itemID", h.UpdateItem)
	group.Delete("/:id/items/:itemID", h.DeleteItem)
}

func (h *CriteriaHandler) ListSets(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	sets, total, err := h.repo.ListSets(middleware.CurrentOrgID(c), c.Query("doc_type_id"), page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list criteria sets",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get criteria sets",
		Data:       sets,
		Pagination: response.New(page, pageSize, len(sets), total),
	})
}

func (h *CriteriaHandler) GetSet(c *fiber.Ctx) error {
	set, err := h.repo.FindSetByID(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "criteria set not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get criteria set",
		Data:    set,
	})
}

func (h *CriteriaHandler) CreateSet(c *fiber.Ctx) error {
	var req dto.CriteriaSetRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	docTypeID, err := uuid.Parse(req.DocTypeID)
	if err != nil || req.Name == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "name and doc_type_id are required",
		}, err)
	}

	version := req.Version
	if version <= 0 {
		version = 1
	}
	set := model.CriteriaSet{
		OrganizationID: middleware.CurrentOrgID(c),
		DocTypeID:      docTypeID,
		Name:           req.Name,
		Version:        version,
	}
	if req.IsActive != nil {
		set.IsActive = *req.IsActive
	}
	if err := h.repo.CreateSet(&set); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create criteria set",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create criteria set",
		Data:    set,
	})
}

func (h *CriteriaHandler) UpdateSet(c *fiber.Ctx) error {
	set, err := h.repo.FindSetByID(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "criteria set not found",
		}, err)
	}

	var req dto.CriteriaSetRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Name != "" {
		set.Name = req.Name
	}
	if req.Version > 0 {
		set.Version = req.Version
	}
	if req.IsActive != nil {
		set.IsActive = *req.IsActive
	}
	if err := h.repo.UpdateSet(set); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update criteria set",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update criteria set",
		Data:    set,
	})
}

func (h *CriteriaHandler) DeleteSet(c *fiber.Ctx) error {
	if err := h.repo.DeleteSet(middleware.CurrentOrgID(c), c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete criteria set",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete criteria set",
	})
}

func (h *CriteriaHandler) CreateItem(c *fiber.Ctx) error {
	set, err := h.repo.FindSetByID(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "criteria set not found",
		}, err)
	}

	var req dto.CriteriaItemRequest
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

	weight := req.Weight
	if weight <= 0 {
		weight = 1
	}
	maxScore := req.MaxScore
	if maxScore <= 0 {
		maxScore = 5
	}
	item := model.CriteriaItem{
		CriteriaSetID: set.ID,
		Name:          req.Name,
		Description:   req.Description,
		Weight:        weight,
		MaxScore:      maxScore,
		Position:      req.Position,
	}
	if err := h.repo.CreateItem(&item); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create criteria item",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create criteria item",
		Data:    item,
	})
}

func (h *CriteriaHandler) UpdateItem(c *fiber.Ctx) error {
	set, err := h.repo.FindSetByID(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "criteria set not found",
		}, err)
	}
	item, err := h.repo.FindItemByID(set.ID, c.Params("itemID"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "criteria item not found",
		}, err)
	}

	var req dto.CriteriaItemRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	item.Description = req.Description
	if req.Weight > 0 {
		item.Weight = req.Weight
	}
	if req.MaxScore > 0 {
		item.MaxScore = req.MaxScore
	}
	if req.Position > 0 {
		item.Position = req.Position
	}
	if err := h.repo.UpdateItem(item); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update criteria item",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update criteria item",
		Data:    item,
	})
}

func (h *CriteriaHandler) DeleteItem(c *fiber.Ctx) error {
	set, err := h.repo.FindSetByID(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "criteria set not found",
		}, err)
	}
	if err := h.repo.DeleteItem(set.ID, c.Params("itemID")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete criteria item",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete criteria item",
	})
}
