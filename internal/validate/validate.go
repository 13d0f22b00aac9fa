package validate

import (
	"errors"
	"net/mail"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// 自定义校验标签与提示文案
	notBlankTag  = "notblank"
	notBlankText = "this field may not be blank"

	emailListTag  = "email_list"
	emailListText = "{0} must be a comma separated list of valid email addresses"

	requiredTag  = "required"
	requiredText = "this field is required"
)

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// 错误信息使用 json/form 标签名而不是结构体字段名
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(notBlankTag, notBlankText)

	_ = Validate.RegisterValidation(emailListTag, emailListValidation)
	RegisterCustomTranslation(emailListTag, emailListText)

	RegisterCustomTranslation(requiredTag, requiredText, true)
}

// RegisterCustomTranslation 为指定校验标签注册自定义翻译。
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct 校验 s，原样返回 validator 的错误。
func Struct(s interface{}) error {
	return Validate.Struct(s)
}

// FieldErrors 将校验错误转换为 {字段: [消息]} 结构，非校验错误返回 nil。
func FieldErrors(err error) map[string][]string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return nil
	}
	fldErrs := make(map[string][]string, len(vErrs))
	for _, vErr := range vErrs {
		fldErrs[vErr.Field()] = append(fldErrs[vErr.Field()], vErr.Translate(Translator))
	}
	return fldErrs
}

// IsEmail 判断 value 是否为单个裸邮箱地址。
func IsEmail(value string) bool {
	return Validate.Var(value, "required,email") == nil
}

// 自定义校验器

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// emailListValidation 接受逗号分隔且至少包含一个地址的列表。
func emailListValidation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	count := 0
	for _, part := range strings.Split(str, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		addr, err := mail.ParseAddress(part)
		if err != nil || addr.Address != part {
			return false
		}
		count++
	}
	return count > 0
}
