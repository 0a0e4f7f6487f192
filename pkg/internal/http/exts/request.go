package exts

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

// Process-wide validator, compiled once and shared read-only across handlers.
var validation = validator.New(validator.WithRequiredStructEnabled())

// Editor payload schemas are closed: a field the target struct does not
// declare fails the decode.
var strictJSON = jsoniter.Config{
	DisallowUnknownFields:  true,
	ValidateJsonRawMessage: true,
}.Froze()

// BindAndValidate decodes the request body into payload and checks it
// against the schema the struct tags describe. Missing required fields,
// mismatched types and unknown fields all end up as a 400.
func BindAndValidate(c *fiber.Ctx, payload any) error {
	if err := strictJSON.Unmarshal(c.Body(), payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "the payload is invalid: "+err.Error())
	}
	if err := validation.Struct(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "the payload is invalid: "+err.Error())
	}

	return nil
}
