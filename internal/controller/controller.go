package controller

import (
	"strconv"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/lifecycle"
	"spa-registry-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

func localUint(ctx *fiber.Ctx, key string) uint {
	if v, ok := ctx.Locals(key).(uint); ok {
		return v
	}
	return 0
}

func localString(ctx *fiber.Ctx, key string) string {
	if v, ok := ctx.Locals(key).(string); ok {
		return v
	}
	return ""
}

// actorFromCtx builds the command actor from the authenticated principal.
func actorFromCtx(ctx *fiber.Ctx) lifecycle.Actor {
	actorType := entity.ActorTypeSpaAdmin
	if localString(ctx, "role") == entity.RoleAssociationAdmin {
		actorType = entity.ActorTypeAssociationAdmin
	}
	return lifecycle.Actor{
		Type: actorType,
		Id:   localUint(ctx, "user_id"),
		Name: localString(ctx, "name"),
	}
}

func principalFromCtx(ctx *fiber.Ctx) service.Principal {
	return service.Principal{
		UserId: localUint(ctx, "user_id"),
		SpaId:  localUint(ctx, "spa_id"),
		Role:   localString(ctx, "role"),
	}
}

func paramId(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
