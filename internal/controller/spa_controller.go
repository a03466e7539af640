package controller

import (
	"spa-registry-be/internal/dto"
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/pkg/serverutils"
	"spa-registry-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISpaController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Verify(ctx *fiber.Ctx) error
	Blacklist(ctx *fiber.Ctx) error
	ClearBlacklist(ctx *fiber.Ctx) error
	ActivityLog(ctx *fiber.Ctx) error
}

type spaController struct {
	service service.ISpaService
}

func NewSpaController(service service.ISpaService) ISpaController {
	return &spaController{service: service}
}

func (c *spaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/spas")
	h.Post("/", c.Register)

	// Protected Routes
	h.Get("/:id", serverutils.JwtMiddleware, c.Get)
	h.Get("/:id/activity", serverutils.JwtMiddleware, c.ActivityLog)

	// Association-admin decisions
	admin := h.Group("/:id", serverutils.JwtMiddleware, serverutils.RequireRole(entity.RoleAssociationAdmin))
	admin.Post("/verify", c.Verify)
	admin.Post("/blacklist", c.Blacklist)
	admin.Delete("/blacklist", c.ClearBlacklist)
}

func (c *spaController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterSpaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.UserContext(), &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Spa registered", res))
}

func (c *spaController) Get(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetById(ctx.UserContext(), id)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Spa", res))
}

func (c *spaController) Verify(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.VerifySpaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Verify(ctx.UserContext(), id, &req, actorFromCtx(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Verification recorded", res))
}

func (c *spaController) Blacklist(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.BlacklistSpaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Blacklist(ctx.UserContext(), id, req.Reason, actorFromCtx(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Spa blacklisted", res))
}

func (c *spaController) ClearBlacklist(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.ClearBlacklist(ctx.UserContext(), id, actorFromCtx(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Blacklist cleared", res))
}

func (c *spaController) ActivityLog(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	items, total, err := c.service.ActivityLog(ctx.UserContext(), "spa", id, ctx.QueryInt("page", 1), ctx.QueryInt("page_size", 20))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Activity log", fiber.Map{
		"items": items,
		"total": total,
	}))
}
