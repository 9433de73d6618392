package checkout

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/order"
)

// Input is the checkout form as submitted by the client.
type Input struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,mindigits=10"`
	Address string `json:"address" validate:"required,min=5"`
	ZipCode string `json:"zipCode" validate:"required,min=5"`
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`

	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=e-money cash"`
	EMoneyNumber  string `json:"eMoneyNumber" validate:"required_if=PaymentMethod e-money,omitempty,min=9"`
	EMoneyPin     string `json:"eMoneyPin" validate:"required_if=PaymentMethod e-money,omitempty,min=4"`
}

// Normalize drops the e-money fields for cash payments so they are
// neither validated nor stored.
func (in *Input) Normalize() {
	if in.PaymentMethod == string(order.PaymentCash) {
		in.EMoneyNumber = ""
		in.EMoneyPin = ""
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the JSON field names the client submitted.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Phone numbers are validated on digit count, so separators and
	// country-code prefixes do not inflate the length.
	_ = v.RegisterValidation("mindigits", func(fl validator.FieldLevel) bool {
		want, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		digits := 0
		for _, r := range fl.Field().String() {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		return digits >= want
	})
	return v
}

// Validate checks the input and returns field-scoped messages on
// failure. Callers must Normalize first.
func (in *Input) Validate() ValidationErrors {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{"_": err.Error()}
	}

	out := make(ValidationErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "mindigits":
		return fmt.Sprintf("must contain at least %s digits", fe.Param())
	case "oneof":
		return "must be either e-money or cash"
	default:
		return "is invalid"
	}
}
