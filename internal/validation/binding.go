package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UseJSONFieldNames makes v report fields by their json tag, so binding
// errors name the same keys the client sent.
func UseJSONFieldNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// FromBinding converts struct tag violations into field errors. It returns
// false for errors that are not validation failures, such as malformed JSON.
func FromBinding(err error) (Errors, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	errs := Errors{}
	for _, fe := range verrs {
		field, msg := bindingMessage(fe)
		errs.Add(field, msg)
	}
	return errs, true
}

func bindingMessage(fe validator.FieldError) (string, string) {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field, fmt.Sprintf("The %s field is required.", label(field))
	case "email":
		return field, fmt.Sprintf("The %s field must be a valid email address.", label(field))
	case "min":
		return field, fmt.Sprintf("The %s field must be at least %s characters.", label(field), fe.Param())
	case "max":
		return field, fmt.Sprintf("The %s field must not be greater than %s characters.", label(field), fe.Param())
	case "eqfield":
		// password_confirmation mismatches are reported on the confirmed field.
		target := strings.TrimSuffix(field, "_confirmation")
		return target, fmt.Sprintf("The %s field confirmation does not match.", label(target))
	}

	return field, fmt.Sprintf("The %s field is invalid.", label(field))
}
