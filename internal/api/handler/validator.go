package handler

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mlcinall/mentor-service/internal/slot"
)

// RegisterValidators installs the custom binding tags on gin's validator:
//
//	clock  "HH:MM" or "HH:MM:SS" within one day
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("clock", validateClock)
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := slot.ParseClock(fl.Field().String())
	return err == nil
}
