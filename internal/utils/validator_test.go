package utils

import (
	"errors"
	"testing"

	"Recipe-Share-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"tarta de espinaca": "Tarta De Espinaca",
		"POSTRE":            "Postre",
		"desayuno":          "Desayuno",
		"":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, TitleCase(in), in)
	}
}

func TestValidateStructReportsJSONNames(t *testing.T) {
	category := "Merienda"
	req := domain.CreateRecipeRequest{
		Title:       "ab",
		Ingredients: "",
		Category:    &category,
		ImageURLs:   []string{"not a url"},
	}

	err := ValidateStruct(NewValidator(), req)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "ingredients")
	assert.Contains(t, verr.Fields, "category")
	assert.Contains(t, verr.Fields, "image_urls[0]")
	assert.Equal(t, "is required", verr.Fields["ingredients"])
}

func TestValidateStructOK(t *testing.T) {
	req := domain.CreateUserRequest{Username: "alice", Email: "alice@example.com", Password: "x"}
	assert.NoError(t, ValidateStruct(NewValidator(), req))
}

func TestToValidationErrorPassesOtherErrors(t *testing.T) {
	other := errors.New("boom")
	assert.Same(t, other, ToValidationError(other))
}
