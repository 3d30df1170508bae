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

type ChatHandler struct {
	repo *repository.ChatSessionRepository
}

func NewChatHandler(repo *repository.ChatSessionRepository) *ChatHandler {
	return &ChatHandler{repo: repo}
}

func (h *ChatHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/chat/sessions")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id", h.Get)
	group.Delete("/:id", h.Delete)
	group.Post("/:id/share", h.Share)
}

func (h *ChatHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	sessions, total, err := h.repo.List(middleware.CurrentOrgID(c), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list chat sessions",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get chat sessions",
		Data:       sessions,
		Pagination: response.New(page, pageSize, len(sessions), total),
	})
}

func (h *ChatHandler) Get(c *fiber.Ctx) error {
	session, err := h.repo.FindByID(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "chat session not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get chat session",
		Data:    session,
	})
}

func (h *ChatHandler) Create(c *fiber.Ctx) error {
	var req dto.ChatSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	session := model.ChatSession{
		OrganizationID: middleware.CurrentOrgID(c),
		UserID:         middleware.CurrentUserID(c),
		Title:          req.Title,
	}
	if err := h.repo.Create(&session); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create chat session",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create chat session",
		Data:    session,
	})
}

func (h *ChatHandler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(middleware.CurrentOrgID(c), c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete chat session",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete chat session",
	})
}

func (h *ChatHandler) Share(c *fiber.Ctx) error {
	session, err := h.repo.Share(middleware.CurrentOrgID(c), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "chat session not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success share chat session",
		Data:    session,
	})
}
