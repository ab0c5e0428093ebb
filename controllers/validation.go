package controllers

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"hotel-tracker/models"
)

var registerOnce sync.Once

// RegisterValidators adds the "isodate" tag (YYYY-MM-DD) to gin's validator.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		err = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, perr := models.ParseDate(fl.Field().String())
			return perr == nil
		})
	})
	return err
}
