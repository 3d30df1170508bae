package handler

import (
	"github.com/evaldesk/evaldesk/internal/dto"
	"github.com/evaldesk/evaldesk/internal/middleware"
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/evaldesk/evaldesk/internal/repository"
	"github.com/evaldesk/evaldesk/internal/response"
	"github.com/evaldesk/evaldesk/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct {
	repo *repository.ProjectRepository
}

func NewProjectHandler(repo *repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{repo: repo}
}

func (h *ProjectHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/projects")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
	group.Post("/:id/favorite", h.ToggleFavorite)
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	projects, total, err := h.repo.List(middleware.CurrentOrgID(c), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list projects",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get projects",
		Data:       projects,
		Pagination: response.New(page, pageSize, len(projects), total),
	})
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	project, err := h.repo.FindByID(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "project not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get project",
		Data:    project,
	})
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectRequest
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

	project := model.Project{
		OrganizationID: middleware.CurrentOrgID(c),
		Name:           req.Name,
		Description:    req.Description,
		CreatedBy:      middleware.CurrentUserID(c),
	}
	if err := h.repo.Create(&project); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create project",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create project",
		Data:    project,
	})
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	project, err := h.repo.FindByID(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "project not found",
		}, err)
	}

	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Name != "" {
		project.Name = req.Name
	}
	project.Description = req.Description
	if err := h.repo.Update(project); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update project",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update project",
		Data:    project,
	})
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(middleware.CurrentOrgID(c), c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete project",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete project",
	})
}

func (h *ProjectHandler) ToggleFavorite(c *fiber.Ctx) error {
	favorited, err := h.repo.ToggleFavorite(middleware.CurrentOrgID(c), c.Params("id"), middleware.CurrentUserID(c))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "project not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success toggle favorite",
		Data:    fiber.Map{"id": c.Params("id"), "is_favorited": favorited},
	})
}
