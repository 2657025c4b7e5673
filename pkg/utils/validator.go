package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var mobileRegexp = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("mobile", validateMobile)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateMobile(fl validator.FieldLevel) bool {
	return mobileRegexp.MatchString(fl.Field().String())
}
