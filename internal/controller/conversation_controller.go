package controller

import (
	"strings"

	"campus-chatbot-be/internal/apperror"
	"campus-chatbot-be/internal/dto"
	"campus-chatbot-be/internal/pkg/serverutils"
	"campus-chatbot-be/internal/service"
	"campus-chatbot-be/pkg/nlu"

	"github.com/gofiber/fiber/v2"
)

// FallbackReply is what the user sees when the NLU engine is
// unreachable. A failed engine call never surfaces as an error status;
// the chat always answers.
const FallbackReply = "Sorry, I'm having trouble connecting. Please try again later."

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Message(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	Session(ctx *fiber.Ctx) error
}

type conversationController struct {
	service service.IConversationService
}

func NewConversationController(service service.IConversationService) IConversationController {
	return &conversationController{service: service}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversation")
	h.Post("/message", c.Message)
	h.Post("/reset", c.Reset)
	h.Get("/session", c.Session)
}

func (c *conversationController) Message(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userId := effectiveUserId(ctx, req.UserId)

	res, err := c.service.SendMessage(ctx.Context(), userId, req.Message)
	if err != nil {
		if apperror.IsInvalidInput(err) {
			return err
		}
		if apperror.IsUpstream(err) {
			return ctx.JSON(c.fallbackResponse(ctx, userId))
		}
		return err
	}

	return ctx.JSON(res)
}

func (c *conversationController) Reset(ctx *fiber.Ctx) error {
	var req dto.ResetConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}

	userId := effectiveUserId(ctx, req.UserId)
	if err := c.service.ResetConversation(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Session reset successfully"})
}

func (c *conversationController) Session(ctx *fiber.Ctx) error {
	userId := effectiveUserId(ctx, ctx.Query("userId"))

	info, err := c.service.SessionStatus(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(info)
}

// fallbackResponse degrades an upstream failure into a normal-looking
// bot reply, keeping whatever session token is still live.
func (c *conversationController) fallbackResponse(ctx *fiber.Ctx, userId string) *dto.SendMessageResponse {
	res := &dto.SendMessageResponse{
		Success: true,
		Messages: []nlu.Part{
			{Type: nlu.PartTypeText, Text: FallbackReply},
		},
		Intent:     "fallback",
		Confidence: 0,
	}
	if info, err := c.service.SessionStatus(ctx.Context(), userId); err == nil && info.Active {
		res.SessionToken = info.SessionToken
	}
	return res
}

// effectiveUserId falls back to a stable pseudo-identity derived from
// the client IP when the request carries no user id.
func effectiveUserId(ctx *fiber.Ctx, userId string) string {
	if userId != "" {
		return userId
	}
	replacer := strings.NewReplacer(":", "-", ".", "-")
	return "user-" + replacer.Replace(ctx.IP())
}
