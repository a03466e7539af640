package controller

import (
	"spa-registry-be/internal/dto"
	"spa-registry-be/internal/pkg/serverutils"
	"spa-registry-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// directoryController is the public, unauthenticated surface.
type IDirectoryController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Regions(ctx *fiber.Ctx) error
}

type directoryController struct {
	service service.IDirectoryService
}

func NewDirectoryController(service service.IDirectoryService) IDirectoryController {
	return &directoryController{service: service}
}

func (c *directoryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/directory")
	h.Get("/spas", c.List)
	h.Get("/regions", c.Regions)
}

func (c *directoryController) List(ctx *fiber.Ctx) error {
	query := dto.DirectoryQuery{
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
		Region:   ctx.Query("region"),
		Page:     ctx.QueryInt("page", 1),
		PageSize: ctx.QueryInt("page_size", 20),
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), &query)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Directory", res))
}

func (c *directoryController) Regions(ctx *fiber.Ctx) error {
	res, err := c.service.Regions(ctx.UserContext())
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Regions", res))
}
