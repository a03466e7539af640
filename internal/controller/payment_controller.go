package controller

import (
	"spa-registry-be/internal/dto"
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/pkg/serverutils"
	"spa-registry-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	GetPlans(ctx *fiber.Ctx) error
	Initiate(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	PendingReview(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payments")
	h.Get("/plans", c.GetPlans)

	// Protected Routes
	h.Post("/", serverutils.JwtMiddleware, c.Initiate)
	h.Get("/", serverutils.JwtMiddleware, c.History)

	// Association-admin review queue
	admin := h.Group("/", serverutils.JwtMiddleware, serverutils.RequireRole(entity.RoleAssociationAdmin))
	admin.Get("/pending", c.PendingReview)
	admin.Post("/:id/resolve", c.Resolve)
}

func (c *paymentController) GetPlans(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success fetching plans", c.service.ListPlans()))
}

func (c *paymentController) Initiate(ctx *fiber.Ctx) error {
	var req dto.InitiatePaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Initiate(ctx.UserContext(), localUint(ctx, "spa_id"), &req, actorFromCtx(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Payment initiated", res))
}

func (c *paymentController) Resolve(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.ResolveBankTransferRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ResolveBankTransfer(ctx.UserContext(), id, &req, actorFromCtx(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Bank transfer resolved", res))
}

func (c *paymentController) History(ctx *fiber.Ctx) error {
	res, err := c.service.History(ctx.UserContext(), localUint(ctx, "spa_id"), ctx.QueryInt("page", 1), ctx.QueryInt("page_size", 20))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment history", res))
}

func (c *paymentController) PendingReview(ctx *fiber.Ctx) error {
	res, err := c.service.PendingBankTransfers(ctx.UserContext(), ctx.QueryInt("page", 1), ctx.QueryInt("page_size", 20))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Pending bank transfers", res))
}
