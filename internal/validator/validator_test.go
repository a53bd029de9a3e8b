package validator

import (
	"testing"

	"microblog/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username  string `form:"username" validate:"required,max=64,username"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
}

func TestValidate_FieldNamesFromFormTags(t *testing.T) {
	v, err := New(nil)
	require.NoError(t, err)

	err = v.Validate(&signup{Username: "bad name!", Email: "nope", Password: "a", Password2: "b"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	assert.Contains(t, vErr.Errors, "username")
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password2")
	assert.NotContains(t, vErr.Errors, "password")
}

func TestValidate_Valid(t *testing.T) {
	v, err := New(nil)
	require.NoError(t, err)

	assert.NoError(t, v.Validate(&signup{Username: "john.doe", Email: "j@example.com", Password: "x", Password2: "x"}))
}

func TestValidateLocalized(t *testing.T) {
	bundle, err := i18n.New([]string{"en", "es"})
	require.NoError(t, err)
	v, err := New(bundle)
	require.NoError(t, err)

	err = v.ValidateLocalized(&signup{Username: "bad name!"}, bundle.Translator("es"))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors["username"], "sólo puede contener")
	assert.Contains(t, vErr.Errors["email"], "email")

	err = v.ValidateLocalized(&signup{Username: "bad name!"}, bundle.Translator("en"))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username may only contain letters, digits, dots, dashes and underscores", vErr.Errors["username"])
	assert.Equal(t, "email is a required field", vErr.Errors["email"])
}
