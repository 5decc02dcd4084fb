package handler

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jakkusu1/planma-app/internal/model"
)

// RegisterValidators 在 gin 的校验引擎上注册自定义 binding 标签
//
//	date     "YYYY-MM-DD"
//	clock    "HH:MM" 或 "HH:MM:SS"
//	category 日程条目类型
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("gin 校验引擎不是 validator/v10")
	}
	rules := map[string]validator.Func{
		"date":     validateDate,
		"clock":    validateClock,
		"category": validateCategory,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("注册校验规则 %s 失败: %w", tag, err)
		}
	}
	return nil
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := model.ParseDate(fl.Field().String())
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := model.ParseClock(fl.Field().String())
	return err == nil
}

func validateCategory(fl validator.FieldLevel) bool {
	_, ok := model.ParseCategory(fl.Field().String())
	return ok
}
