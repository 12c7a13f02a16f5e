package controller

import (
	"the-family-be/internal/dto"
	"the-family-be/internal/pkg/serverutils"
	"the-family-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISitDownController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddParticipant(ctx *fiber.Ctx) error
	RemoveParticipant(ctx *fiber.Ctx) error
}

type sitDownController struct {
	service service.ISitDownService
}

func NewSitDownController(service service.ISitDownService) ISitDownController {
	return &sitDownController{service: service}
}

func (c *sitDownController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sitdown/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Post(":id/participants", c.AddParticipant)
	h.Delete(":id/participants/:participantId", c.RemoveParticipant)
}

func (c *sitDownController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all sit-downs", res))
}

func (c *sitDownController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.service.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show sit-down", res))
}

func (c *sitDownController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateSitDownRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create sit-down", res))
}

func (c *sitDownController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete sit-down", nil))
}

func (c *sitDownController) AddParticipant(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.AddParticipantRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SitDownId = id

	res, err := c.service.AddParticipant(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add participant", res))
}

func (c *sitDownController) RemoveParticipant(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))
	participantId, _ := uuid.Parse(ctx.Params("participantId"))

	if err := c.service.RemoveParticipant(ctx.Context(), userId, id, participantId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove participant", nil))
}
