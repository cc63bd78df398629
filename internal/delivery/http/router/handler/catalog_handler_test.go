package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowseFilterFrom_InStock(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "defaults to in stock", query: "", want: true},
		{name: "explicitly in stock", query: "?inStock=true", want: true},
		{name: "include out of stock", query: "?inStock=false", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/catalog/products"+tt.query, nil)
			c := echo.New().NewContext(req, httptest.NewRecorder())

			filter, err := browseFilterFrom(c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, filter.InStockOnly)
		})
	}
}
