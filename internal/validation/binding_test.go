package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name      string   `validate:"required,max=100"`
	Email     string   `validate:"required,email"`
	SportType string   `validate:"omitempty,oneof=soccer tennis"`
	Venues    []string `validate:"min=1"`
	Capacity  int      `validate:"omitempty,gt=0"`
}

func TestMessageListsEachField(t *testing.T) {
	v := validator.New()
	err := v.Struct(sample{Email: "not-an-email", SportType: "chess"})
	require.Error(t, err)

	msg := Message(err)
	require.Contains(t, msg, "name is required")
	require.Contains(t, msg, "email must be a valid email address")
	require.Contains(t, msg, "sport_type must be one of: soccer, tennis")
}

func TestMessageSliceMin(t *testing.T) {
	v := validator.New()
	err := v.Struct(sample{Name: "x", Email: "a@b.com", Venues: []string{}})
	require.Error(t, err)
	require.Contains(t, Message(err), "venues must contain at least 1 item(s)")
}

func TestMessageNonValidatorError(t *testing.T) {
	require.Equal(t, "invalid request body", Message(errors.New("unexpected EOF")))
}
