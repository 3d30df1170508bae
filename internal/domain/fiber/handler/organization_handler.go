package handler

import (
	"github.com/evaldesk/evaldesk/internal/dto"
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/evaldesk/evaldesk/internal/repository"
	"github.com/evaldesk/evaldesk/internal/response"
	"github.com/evaldesk/evaldesk/internal/util"
	"github.com/gofiber/fiber/v2"
)

type OrganizationHandler struct {
	repo *repository.OrganizationRepository
}

func NewOrganizationHandler(repo *repository.OrganizationRepository) *OrganizationHandler {
	return &OrganizationHandler{repo: repo}
}

func (h *OrganizationHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/organizations")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}

func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	orgs, total, err := h.repo.List(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list organizations",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get organizations",
		Data:       orgs,
		Pagination: response.New(page, pageSize, len(orgs), total),
	})
}

func (h *OrganizationHandler) Get(c *fiber.Ctx) error {
	org, err := h.repo.FindByID(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "organization not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get organization",
		Data:    org,
	})
}

func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var req dto.OrganizationRequest
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

	org := model.Organization{
		Name: req.Name,
		Slug: req.Slug,
		Plan: req.Plan,
	}
	if err := h.repo.Create(&org); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create organization",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create organization",
		Data:    org,
	})
}

func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	org, err := h.repo.FindByID(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "organization not found",
		}, err)
	}

	var req dto.OrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Name != "" {
		org.Name = req.Name
	}
	if req.Slug != "" {
		org.Slug = req.Slug
	}
	if req.Plan != "" {
		org.Plan = req.Plan
	}
	if err := h.repo.Update(org); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update organization",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update organization",
		Data:    org,
	})
}

func (h *OrganizationHandler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete organization",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete organization",
	})
}
