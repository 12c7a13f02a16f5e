package controller

import (
	"time"

	"the-family-be/internal/dto"
	"the-family-be/internal/pkg/serverutils"
	"the-family-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	GetTimeline(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
}

type messageController struct {
	service service.IMessageService
}

func NewMessageController(service service.IMessageService) IMessageController {
	return &messageController{service: service}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/message/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get(":sitDownId", c.GetTimeline)
	h.Post(":sitDownId", c.Send)
}

func (c *messageController) GetTimeline(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	sitDownId, _ := uuid.Parse(ctx.Params("sitDownId"))

	var after *time.Time
	if raw := ctx.Query("after"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return serverutils.NewBadRequest("after must be an RFC3339 timestamp")
		}
		after = &parsed
	}

	res, err := c.service.GetTimeline(ctx.Context(), userId, sitDownId, after)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get timeline", res))
}

func (c *messageController) Send(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	sitDownId, _ := uuid.Parse(ctx.Params("sitDownId"))

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.SitDownId = sitDownId

	res, err := c.service.SendMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}
