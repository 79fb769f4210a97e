package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator usa el nombre JSON (o query) del campo en los mensajes.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	return v
}

// bindJSON parsea el cuerpo y valida las etiquetas `validate`.
// Si falla, ya escribió la respuesta 400 y devuelve false.
func bindJSON(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	return validateStruct(c, out)
}

func validateStruct(c *fiber.Ctx, in any) (bool, error) {
	if err := validate.Struct(in); err != nil {
		return false, badRequest(c, "VALIDATION", "%s", validationMessage(err))
	}
	return true, nil
}

// validationMessage "campo: motivo; campo: motivo".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldPath(e)+": "+tagMessage(e))
	}
	return strings.Join(msgs, "; ")
}

// fieldPath quita el nombre del struct raíz: "movements[1].quantity".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func tagMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "requerido"
	case "min":
		if e.Kind() == reflect.String {
			return "mínimo " + e.Param() + " caracteres"
		}
		if e.Kind() == reflect.Slice {
			return "mínimo " + e.Param() + " elementos"
		}
		return "debe ser mayor o igual a " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "máximo " + e.Param() + " caracteres"
		}
		if e.Kind() == reflect.Slice {
			return "máximo " + e.Param() + " elementos"
		}
		return "debe ser menor o igual a " + e.Param()
	case "gt":
		return "debe ser mayor que " + e.Param()
	case "oneof":
		return "debe ser uno de: " + e.Param()
	default:
		return "valor inválido"
	}
}
