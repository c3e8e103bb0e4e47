package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"epias-settlement/internal/contract"
)

// RegisterValidations installs custom binding validations on gin's validator
// engine. Call once at startup, before serving.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("contract", func(fl validator.FieldLevel) bool {
		_, err := contract.Parse(fl.Field().String())
		return err == nil
	})
}
