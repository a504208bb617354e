package controller

import (
	"campus-chatbot-be/internal/apperror"
	"campus-chatbot-be/internal/dto"
	"campus-chatbot-be/internal/pkg/logger"
	"campus-chatbot-be/internal/pkg/serverutils"
	"campus-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router, guard fiber.Handler)
	CreateSession(ctx *fiber.Ctx) error
	GetSessions(ctx *fiber.Ctx) error
	GetSessionMessages(ctx *fiber.Ctx) error
	SaveMessage(ctx *fiber.Ctx) error
	UpdateSessionTitle(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	GetProfile(ctx *fiber.Ctx) error
}

type historyController struct {
	service service.IHistoryService
	logger  logger.ILogger
}

func NewHistoryController(service service.IHistoryService, sysLogger logger.ILogger) IHistoryController {
	return &historyController{service: service, logger: sysLogger}
}

func (c *historyController) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	h := r.Group("/history")
	h.Use(guard)
	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions", c.GetSessions)
	h.Get("/sessions/:id/messages", c.GetSessionMessages)
	h.Post("/messages", c.SaveMessage)
	h.Put("/sessions/:id", c.UpdateSessionTitle)
	h.Delete("/sessions/:id", c.DeleteSession)
	h.Get("/profile", c.GetProfile)
}

func (c *historyController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.Context(), req.UserId, req.Title)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

// GetSessions never fails the sidebar: any store trouble degrades to an
// empty list with a 200.
func (c *historyController) GetSessions(ctx *fiber.Ctx) error {
	userId := ctx.Query("userId")

	sessions, err := c.service.GetRecentSessions(ctx.Context(), userId)
	if err != nil {
		c.logger.Error("history", "failed to fetch sessions", map[string]interface{}{"user_id": userId, "error": err.Error()})
		return ctx.JSON([]*dto.SessionResponse{})
	}
	return ctx.JSON(sessions)
}

func (c *historyController) GetSessionMessages(ctx *fiber.Ctx) error {
	userId := ctx.Query("userId")

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.JSON([]*dto.MessageResponse{})
	}

	messages, err := c.service.GetSessionMessages(ctx.Context(), sessionId, userId)
	if err != nil {
		c.logger.Error("history", "failed to fetch messages", map[string]interface{}{"user_id": userId, "error": err.Error()})
		return ctx.JSON([]*dto.MessageResponse{})
	}
	return ctx.JSON(messages)
}

// SaveMessage is best-effort relative to the live conversation: a
// persistence failure answers {success:true} so the chat never stalls
// on history.
func (c *historyController) SaveMessage(ctx *fiber.Ctx) error {
	var req dto.SaveMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SaveMessage(ctx.Context(), &req)
	if err != nil {
		c.logger.Error("history", "failed to save message", map[string]interface{}{"user_id": req.UserId, "error": err.Error()})
		return ctx.JSON(fiber.Map{"success": true})
	}
	return ctx.JSON(res)
}

func (c *historyController) UpdateSessionTitle(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid session id"))
	}

	var req dto.UpdateSessionTitleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateSessionTitle(ctx.Context(), sessionId, req.UserId, req.Title)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *historyController) DeleteSession(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid session id"))
	}
	userId := ctx.Query("userId")

	if err := c.service.DeleteSession(ctx.Context(), sessionId, userId); err != nil {
		// Deleting something already gone (or never owned) is still a
		// successful delete from the caller's point of view.
		if apperror.IsNotOwned(err) {
			return ctx.JSON(fiber.Map{"success": true, "message": "Session deleted successfully"})
		}
		return err
	}
	return ctx.JSON(fiber.Map{"success": true, "message": "Session deleted successfully"})
}

func (c *historyController) GetProfile(ctx *fiber.Ctx) error {
	userId := ctx.Query("userId")

	profile, err := c.service.GetUserProfile(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if profile == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "Profile not found"))
	}
	return ctx.JSON(profile)
}
