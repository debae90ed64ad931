package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("Product", nil).Status)
	assert.Equal(t, "Product not found", NotFound("Product", nil).Message)
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad", nil).Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("no", nil).Status)
	assert.Equal(t, http.StatusForbidden, Forbidden("no", nil).Status)
	assert.Equal(t, http.StatusConflict, Conflict("dup").Status)
	assert.Equal(t, http.StatusInternalServerError, Internal("boom", nil).Status)
}

func TestIs(t *testing.T) {
	err := NotFound("Order", nil)
	assert.True(t, Is(err, "NOT_FOUND"))
	assert.False(t, Is(err, "BAD_REQUEST"))

	wrapped := fmt.Errorf("context: %w", err)
	assert.True(t, Is(wrapped, "NOT_FOUND"))

	assert.False(t, Is(fmt.Errorf("plain"), "NOT_FOUND"))
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Internal("failed", cause)
	assert.Equal(t, cause, err.Unwrap())
}
