package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/techstore-pos/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			tag = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// validationError convierte los errores del validador en un ErrorResponse con detalle por campo.
func validationError(err error) dto.ErrorResponse {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		details := make(map[string]string, len(errs))
		for _, fe := range errs {
			details[fieldPath(fe)] = validationMessage(fe)
		}
		return dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Details: details}
	}
	return dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
}

// fieldPath quita el nombre del struct raíz: "RegisterSaleRequest.items[0].quantity" → "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max":
		return fmt.Sprintf("debe ser como máximo %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor a %s", fe.Param())
	case "email":
		return "debe ser un email válido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "datetime":
		return "debe tener formato YYYY-MM-DD"
	}
	return "es inválido"
}

// parseBody decodifica el JSON y valida las etiquetas `validate`. Devuelve false si ya respondió con error.
func parseBody(c *fiber.Ctx, dest any) bool {
	if err := c.BodyParser(dest); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return false
	}
	if err := validate.Struct(dest); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(validationError(err))
		return false
	}
	return true
}

// parseQuery decodifica y valida los parámetros de query.
func parseQuery(c *fiber.Ctx, dest any) bool {
	if err := c.QueryParser(dest); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
		return false
	}
	if err := validate.Struct(dest); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(validationError(err))
		return false
	}
	return true
}
