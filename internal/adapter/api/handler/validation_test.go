package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dentmarket/internal/adapter/api"
)

func TestRequestFieldLengthLimits(t *testing.T) {
	v := api.NewValidator()

	valid := createProductRequest{
		Name:     "Autoclave 18L",
		Category: "Hygiène & Stérilisation",
		Price:    12000,
	}
	assert.NoError(t, v.Validate(valid))

	tooLongName := valid
	tooLongName.Name = strings.Repeat("a", 201)
	assert.Error(t, v.Validate(tooLongName))

	tooLongDescription := valid
	tooLongDescription.Description = strings.Repeat("a", 2001)
	assert.Error(t, v.Validate(tooLongDescription))

	assert.NoError(t, v.Validate(sendMessageRequest{RecipientID: "user-2", Body: "Bonjour"}))
	assert.Error(t, v.Validate(sendMessageRequest{RecipientID: "user-2", Body: strings.Repeat("a", 1001)}))

	assert.NoError(t, v.Validate(createReviewRequest{Rating: 4, Comment: "Très bon produit"}))
	assert.Error(t, v.Validate(createReviewRequest{Rating: 4, Comment: strings.Repeat("a", 501)}))
}
