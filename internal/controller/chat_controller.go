package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kk7188048/Rag-NewsArticles/internal/dto"
	"github.com/kk7188048/Rag-NewsArticles/internal/handler"
	"github.com/kk7188048/Rag-NewsArticles/internal/pkg/serverutils"
	"github.com/kk7188048/Rag-NewsArticles/internal/service"
	"github.com/kk7188048/Rag-NewsArticles/pkg/rag"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetSessionInfo(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
	GetStats(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	wsHandler   *handler.ChatWSHandler
}

func NewChatController(chatService service.IChatService, wsHandler *handler.ChatWSHandler) IChatController {
	return &chatController{
		chatService: chatService,
		wsHandler:   wsHandler,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("/session", c.CreateSession)
	h.Post("/message", c.SendMessage)
	h.Get("/history/:sessionId", c.GetHistory)
	h.Get("/session/:sessionId", c.GetSessionInfo)
	h.Delete("/session/:sessionId", c.ClearSession)
	h.Get("/stats", c.GetStats)

	// WebSocket
	r.Get("/ws", c.wsHandler.ServeWs)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.chatService.SendMessage(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		if errors.Is(err, rag.ErrNotInitialized) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, "Knowledge base is still initializing, try again shortly"))
		}
		if errors.Is(err, service.ErrSessionStorage) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")
	res, err := c.chatService.GetHistory(ctx.Context(), sessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session history", res))
}

func (c *chatController) GetSessionInfo(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")
	res, err := c.chatService.GetSessionInfo(ctx.Context(), sessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session info", res))
}

func (c *chatController) ClearSession(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")
	if err := c.chatService.ClearSession(ctx.Context(), sessionID); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session cleared", nil))
}

func (c *chatController) GetStats(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetStats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Store stats", res))
}
