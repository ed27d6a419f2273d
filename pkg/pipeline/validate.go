package pipeline

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/sparsestress/pkg/errors"
)

// validate is a singleton validator instance. Field names in messages
// use the json tag, matching config files and API requests.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct checks the struct tags of o and reports the first
// failure as an INVALID_CONFIG error.
func validateStruct(o *Options) error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}

	e := verrs[0]
	field, param := e.Field(), e.Param()
	switch e.Tag() {
	case "required":
		return errors.New(errors.ErrCodeInvalidConfig, "%s is required", field)
	case "required_if":
		return errors.New(errors.ErrCodeInvalidConfig, "%s is required when %s", field, strings.Replace(param, " ", " is ", 1))
	case "gt":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must be greater than %s", field, param)
	case "gte":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must be at least %s", field, param)
	case "oneof":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: %v is not one of: %s", field, e.Value(), strings.ReplaceAll(param, " ", ", "))
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
	}
}
