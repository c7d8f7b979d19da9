package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	petDomain "github.com/huellitas-app/service-adoption/internal/domain/pet"
	reportDomain "github.com/huellitas-app/service-adoption/internal/domain/report"
)

var registerOnce sync.Once

// RegisterValidators installs the enum validators used by request binding tags
// and reports field names by their json key.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		validators := map[string]validator.Func{
			"pet_species":   enumValidator(func(s string) bool { return petDomain.Species(s).IsValid() }),
			"pet_size":      enumValidator(func(s string) bool { return petDomain.Size(s).IsValid() }),
			"pet_sex":       enumValidator(func(s string) bool { return petDomain.Sex(s).IsValid() }),
			"report_type":   enumValidator(func(s string) bool { return reportDomain.Type(s).IsValid() }),
			"report_status": enumValidator(func(s string) bool { return reportDomain.Status(s).IsValid() }),
		}
		for tag, fn := range validators {
			if err = v.RegisterValidation(tag, fn); err != nil {
				err = fmt.Errorf("failed to register %s validator: %w", tag, err)
				return
			}
		}
	})
	return err
}

func enumValidator(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return valid(field.String())
	}
}

// bindingMessage turns a binding error into a readable message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Cuerpo de la solicitud inválido"
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo '%s' es obligatorio", field)
	case "email":
		return fmt.Sprintf("El campo '%s' debe ser un email válido", field)
	case "url":
		return fmt.Sprintf("El campo '%s' debe contener URLs válidas", field)
	case "min":
		return fmt.Sprintf("El campo '%s' debe tener al menos %s caracteres", field, fe.Param())
	case "gte":
		return fmt.Sprintf("El campo '%s' debe ser mayor o igual a %s", field, fe.Param())
	case "pet_species", "pet_size", "pet_sex", "report_type", "report_status":
		return fmt.Sprintf("Valor no permitido para el campo '%s'", field)
	default:
		return fmt.Sprintf("El campo '%s' no es válido", field)
	}
}
