package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dhis2/approval-backend/utils"
)

// RegisterValidators adds the project specific validation tags to the gin binding engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validation engine")
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	err := v.RegisterValidation("uid", func(fl validator.FieldLevel) bool {
		return utils.IsValidUid(fl.Field().String())
	})
	return errors.Wrap(err, "could not register uid validator")
}

func adaptFieldValidationError(fe validator.FieldError) string {
	message := func() string {
		switch fe.ActualTag() {
		case "required":
			return "is required"
		case "oneof":
			return fmt.Sprintf("must be one of %s", strings.Join(strings.Split(fe.Param(), " "), ", "))
		case "max":
			if fe.Kind() == reflect.String {
				return fmt.Sprintf("must have at most %s characters", fe.Param())
			}
			return fmt.Sprintf("must be at most %s", fe.Param())
		case "gt":
			return fmt.Sprintf("must be greater than %s", fe.Param())
		case "uid":
			return "should be an 11 characters uid starting with a letter"
		}
		return "is invalid"
	}()

	return fmt.Sprintf("field `%s` %s", fe.Field(), message)
}
