package validation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzhanyilmaz/reviewdb/internal/apperr"
)

type titlePayload struct {
	Name string `validate:"required,max=300"`
	Year *int   `validate:"omitempty,notfutureyear"`
}

func TestNotFutureYear(t *testing.T) {
	thisYear := time.Now().Year()
	next := thisYear + 1

	assert.NoError(t, Struct(titlePayload{Name: "Solaris", Year: &thisYear}))
	assert.NoError(t, Struct(titlePayload{Name: "Solaris"}))

	err := Struct(titlePayload{Name: "Solaris", Year: &next})
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields["year"], "must not be in the future")
}

func TestRequiredFieldMessages(t *testing.T) {
	err := Struct(titlePayload{})
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "name is required", appErr.Fields["name"])
}

func TestSlugTag(t *testing.T) {
	type payload struct {
		Slug string `validate:"required,slug,max=50"`
	}

	assert.NoError(t, Struct(payload{Slug: "science-fiction"}))
	assert.NoError(t, Struct(payload{Slug: "rock_2020"}))

	for _, bad := range []string{"has space", "ünïcode", "a/b", ""} {
		t.Run(fmt.Sprintf("rejects %q", bad), func(t *testing.T) {
			assert.Error(t, Struct(payload{Slug: bad}))
		})
	}
}

func TestVarEmail(t *testing.T) {
	assert.NoError(t, Var("email", "foo@bar.com", "required,email"))

	err := Var("email", "not-an-address", "required,email")
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}
