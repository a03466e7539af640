package serverutils

import (
	"errors"

	"spa-registry-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Code    int         `json:"code,omitempty"`
	Field   string      `json:"field,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

func ErrorResponse(code int, message string) Response {
	return Response{Success: false, Code: code, Message: message}
}

// ValidateRequest runs struct-tag validation and reports the first failing
// field as a 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "validation failed on field "+verrs[0].Field())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// HandleError maps a service error onto the HTTP envelope. Typed lifecycle
// rejections carry their own status; anything else is a 500.
func HandleError(ctx *fiber.Ctx, err error) error {
	appErr := apperror.AsAppError(err)
	status := apperror.HTTPStatus(appErr.Kind)
	resp := ErrorResponse(status, appErr.Message)
	resp.Field = appErr.Field
	return ctx.Status(status).JSON(resp)
}
