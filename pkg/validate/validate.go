// Package validate 封装go-playground/validator,统一字段名和错误提示
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/moongift/pkg/errors"
)

// phonePattern 允许数字、空格、连字符、括号,可选前导+
var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// Register 在validator实例上注册自定义规则和字段名规则
// gin的binding校验器也需要调用一次,保证phone规则和json字段名一致
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// Default 包级共享的validator实例
func Default() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		Register(instance)
	})
	return instance
}

// Struct 校验结构体,失败时返回带字段详情的参数错误
func Struct(s interface{}) error {
	err := Default().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Wrap(err, "参数校验异常")
	}
	return apperrors.Validation(Fields(verrs))
}

// Fields ValidationErrors → field → message
func Fields(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = Message(fe)
	}
	return fields
}

// IsPhone 校验电话号码格式
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// Message 单个校验失败的提示语
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "不能为空"
	case "email":
		return "邮箱格式不正确"
	case "phone":
		return "电话号码格式不正确"
	case "min", "gte":
		return "不能小于" + fe.Param()
	case "max", "lte":
		return "不能大于" + fe.Param()
	case "oneof":
		return "取值必须是: " + fe.Param()
	default:
		return "校验失败: " + fe.Tag()
	}
}

// fieldName 优先使用json tag作为字段名
func fieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	default:
		return name
	}
}
