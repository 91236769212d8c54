package handler

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/stayfront/hotel-console/internal/application"
)

// RegisterValidators installs the custom binding rules used by the console
// forms. Must be called once before the router starts serving.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dateonly", validDate)
	}
}

// validDate accepts date-only form values like "2024-01-15".
func validDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(application.DateLayout, fl.Field().String())
	return err == nil
}
