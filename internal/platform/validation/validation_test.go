package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string  `json:"name" validate:"required,notblank"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone" validate:"required,phone"`
	Size    string  `json:"size" validate:"required,oneofci=small medium large"`
	Photo   string  `json:"photoUrl" validate:"omitempty,photourl"`
	Message string  `json:"message" validate:"required,min=10,max=500"`
	Nick    *string `json:"nick" validate:"omitempty,notblank"`
}

func valid() sample {
	return sample{
		Name:    "Ana",
		Email:   "ana@example.com",
		Phone:   "+5491122334455",
		Size:    "LARGE",
		Photo:   "https://img.example.com/a.jpg",
		Message: "Quiero adoptar",
	}
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(valid()))
}

func TestStruct_FieldErrorsUseJSONNames(t *testing.T) {
	blank := "   "
	s := valid()
	s.Name = "  "
	s.Email = "not-an-email"
	s.Phone = "0123"
	s.Size = "huge"
	s.Photo = "ftp://x"
	s.Message = "corto"
	s.Nick = &blank

	err := Struct(s)
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))

	got := map[string]string{}
	for _, f := range verr.Fields {
		got[f.Field] = f.Message
	}

	assert.Equal(t, map[string]string{
		"name":     "is required",
		"email":    "must be a valid email",
		"phone":    "must be a valid phone number",
		"size":     "must be one of: small, medium, large",
		"photoUrl": "must be an http(s) url",
		"message":  "must be at least 10 characters",
		"nick":     "is required",
	}, got)
	assert.Contains(t, err.Error(), "validation failed: ")
}

func TestStruct_Phone(t *testing.T) {
	for _, p := range []string{"+14155552671", "5491122334455", "12"} {
		s := valid()
		s.Phone = p
		assert.NoError(t, Struct(s), p)
	}
	for _, p := range []string{"+0123", "1", "+1 415 555", "abc", "+1234567890123456"} {
		s := valid()
		s.Phone = p
		assert.Error(t, Struct(s), p)
	}
}
