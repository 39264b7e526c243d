package http

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// bindBody decodifica el cuerpo JSON en dest y aplica las reglas de las
// etiquetas `validate`. El error devuelto tiene un mensaje apto para el
// cliente.
func bindBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return errors.New("cuerpo inválido")
	}
	return validateStruct(dest)
}

// bindQuery decodifica los query params en dest y valida.
func bindQuery(c *fiber.Ctx, dest interface{}) error {
	if err := c.QueryParser(dest); err != nil {
		return errors.New("parámetros inválidos")
	}
	return validateStruct(dest)
}

func validateStruct(dest interface{}) error {
	if err := validate.Struct(dest); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("campo %s no cumple la regla %s", first.Field(), first.Tag())
		}
		return errors.New("entrada inválida")
	}
	return nil
}
