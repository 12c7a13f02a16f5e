package controller

import (
	"the-family-be/internal/dto"
	"the-family-be/internal/pkg/serverutils"
	"the-family-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICommissionController interface {
	RegisterRoutes(r fiber.Router)
	GetContacts(ctx *fiber.Ctx) error
	SendRequest(ctx *fiber.Ctx) error
	Respond(ctx *fiber.Ctx) error
}

type commissionController struct {
	service service.ICommissionService
}

func NewCommissionController(service service.ICommissionService) ICommissionController {
	return &commissionController{service: service}
}

func (c *commissionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/commission/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/contacts", c.GetContacts)
	h.Post("/contacts", c.SendRequest)
	h.Post("/contacts/:id/respond", c.Respond)
}

func (c *commissionController) GetContacts(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetContacts(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get contacts", res))
}

func (c *commissionController) SendRequest(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SendContactRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendRequest(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send contact request", res))
}

func (c *commissionController) Respond(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.RespondContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := c.service.Respond(ctx.Context(), userId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success respond to contact request", nil))
}
