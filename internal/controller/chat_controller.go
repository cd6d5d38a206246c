package controller

import (
	"case-governance-be/internal/dto"
	"case-governance-be/internal/pkg/serverutils"
	"case-governance-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IChatController is the public trust tier. No auth: anyone can talk to the
// intake assistant, and every message passes the safety screen.
type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/public/v1")
	h.Post("chat", c.Chat)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.PublicChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
