package dentallabserver

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
)

var registerOnce sync.Once

// registerValidators installs the custom binding tags on gin's validator.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("orderstatus", validateOrderStatus)
	})
}

// validateOrderStatus accepts what domain.ParseStatus accepts, so letter
// case is not significant.
func validateOrderStatus(fl validator.FieldLevel) bool {
	_, err := domain.ParseStatus(fl.Field().String())
	return err == nil
}
