package router

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/shopsync/backend/internal/domain/identity"
)

var registerOnce sync.Once

// registerValidations installs custom binding validations on gin's shared
// validator engine. Registered once; the engine is process-global.
func registerValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("shop_domain", func(fl validator.FieldLevel) bool {
			domain := identity.NormalizeShopDomain(fl.Field().String())
			return identity.ValidateShopDomain(domain) == nil
		})
	})
}
