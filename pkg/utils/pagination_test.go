package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paramsFor(target string) PaginationParams {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return GetPaginationParams(e.NewContext(req, rec))
}

func TestGetPaginationParams(t *testing.T) {
	p := paramsFor("/api/produits?page=3&limite=10")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 20, p.Offset)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	p := paramsFor("/api/produits")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 0, p.Offset)
}

func TestGetPaginationParamsClampsOversized(t *testing.T) {
	p := paramsFor("/api/produits?page=-1&limite=500")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
}
