package router

import (
	"fmt"
	"sync"

	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators 向 gin 的 validator 引擎注册自定义绑定规则
func RegisterValidators() error {
	var err error
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		rules := map[string]validator.Func{
			"fg_username": func(fl validator.FieldLevel) bool {
				return service.IsValidUsername(fl.Field().String())
			},
			"fg_slug": func(fl validator.FieldLevel) bool {
				return service.IsValidTagSlug(fl.Field().String())
			},
		}
		for tag, fn := range rules {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}
