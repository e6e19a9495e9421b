package request_test

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"

	"github.com/wakostech/blog-backend/internal/rest/request"
)

func TestCategoryRuleAvailableToImporters(t *testing.T) {
	assert.Error(t, binding.Validator.ValidateStruct(&request.BlogUpdate{Category: "cooking"}))
	assert.NoError(t, binding.Validator.ValidateStruct(&request.BlogUpdate{Category: "science"}))
	assert.NoError(t, binding.Validator.ValidateStruct(&request.BlogUpdate{}))
}
