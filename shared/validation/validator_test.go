package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (signupRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"name":  "Name is required",
		"email": "Email is invalid",
	}
}

type plainRequest struct {
	Title string `json:"title" validate:"required"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()

	errs := v.Struct(signupRequest{Name: "Jane", Email: "jane@example.com", Password: "12345678"})
	assert.Nil(t, errs)
}

func TestStruct_CustomMessagesInFieldOrder(t *testing.T) {
	v := New()

	errs := v.Struct(&signupRequest{Email: "nope", Password: "short"})
	require.Len(t, errs, 3)

	assert.Equal(t, FieldError{Msg: "Name is required", Param: "name"}, errs[0])
	assert.Equal(t, FieldError{Msg: "Email is invalid", Param: "email"}, errs[1])
	assert.Equal(t, "password", errs[2].Param)
	assert.NotEmpty(t, errs[2].Msg)
}

func TestStruct_FallbackTranslation(t *testing.T) {
	v := New()

	errs := v.Struct(plainRequest{})
	require.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Param)
	assert.Equal(t, "title is a required field", errs[0].Msg)
	assert.Equal(t, "title is a required field", errs.Error())
}
