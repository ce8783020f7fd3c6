// Package validation turns go-playground/validator failures into the {msg, param} items of the API error body.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// FieldError is a single entry of an error response.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// Errors is a list of field errors usable as an error value.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Msg)
	}
	return strings.Join(msgs, "; ")
}

// Messenger is implemented by payloads that supply their own message per json field name.
type Messenger interface {
	ValidationMessages() map[string]string
}

// Validator validates tagged structs.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator reporting json field names, with English fallback messages.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, trans)

	return &Validator{
		validate: validate,
		trans:    trans,
	}
}

// Struct validates s and returns nil or a non-empty Errors list in field order.
func (v *Validator) Struct(s any) Errors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return Errors{{Msg: err.Error()}}
	}

	var messages map[string]string
	if m, ok := s.(Messenger); ok {
		messages = m.ValidationMessages()
	}

	out := make(Errors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fe.Translate(v.trans)
		}
		out = append(out, FieldError{Msg: msg, Param: fe.Field()})
	}

	return out
}
