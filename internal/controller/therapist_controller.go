package controller

import (
	"spa-registry-be/internal/dto"
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/pkg/serverutils"
	"spa-registry-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITherapistController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	Resign(ctx *fiber.Ctx) error
	Terminate(ctx *fiber.Ctx) error
}

type therapistController struct {
	service service.ITherapistService
}

func NewTherapistController(service service.ITherapistService) ITherapistController {
	return &therapistController{service: service}
}

func (c *therapistController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/therapists", serverutils.JwtMiddleware)
	h.Post("/", c.Submit)
	h.Get("/", c.List)
	h.Post("/:id/resign", c.Resign)

	// Association-admin decisions
	admin := h.Group("/:id", serverutils.RequireRole(entity.RoleAssociationAdmin))
	admin.Post("/approve", c.Approve)
	admin.Post("/reject", c.Reject)
	admin.Post("/terminate", c.Terminate)
}

func (c *therapistController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitTherapistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.UserContext(), localUint(ctx, "spa_id"), &req, actorFromCtx(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Therapist submitted", res))
}

func (c *therapistController) List(ctx *fiber.Ctx) error {
	spaId := localUint(ctx, "spa_id")
	if queried := ctx.QueryInt("spa_id", 0); queried > 0 && localString(ctx, "role") == entity.RoleAssociationAdmin {
		spaId = uint(queried)
	}

	items, total, err := c.service.ListBySpa(ctx.UserContext(), spaId, ctx.QueryInt("page", 1), ctx.QueryInt("page_size", 20))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Therapists", fiber.Map{
		"items": items,
		"total": total,
	}))
}

func (c *therapistController) Approve(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Approve(ctx.UserContext(), id, actorFromCtx(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Therapist approved", res))
}

func (c *therapistController) Reject(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.RejectTherapistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Reject(ctx.UserContext(), id, req.Reason, actorFromCtx(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Therapist rejected", res))
}

func (c *therapistController) Resign(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Resign(ctx.UserContext(), id, actorFromCtx(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Resignation recorded", res))
}

func (c *therapistController) Terminate(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.TerminateTherapistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Terminate(ctx.UserContext(), id, &req, actorFromCtx(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Therapist terminated", res))
}
